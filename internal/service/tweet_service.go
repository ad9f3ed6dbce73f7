package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// tweetService is the concrete implementation of TweetService
type tweetService struct {
	tweets   repository.TweetRepository
	creators repository.CreatorRepository
	stickers repository.StickerRepository
	now      func() time.Time
	log      zerolog.Logger
}

func newTweetService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *tweetService {
	return &tweetService{
		tweets:   repos.Tweet,
		creators: repos.Creator,
		stickers: repos.Sticker,
		now:      now,
		log:      log.With().Str("service", "tweet").Logger(),
	}
}

// Create resolves the creator, then checks the title, then the stickers.
// Nothing is written unless all three pass.
func (s *tweetService) Create(ctx context.Context, dto *models.TweetDTO) (*models.TweetDTO, error) {
	creator, err := s.creator(ctx, dto.CreatorID)
	if err != nil {
		return nil, err
	}

	taken, err := s.tweets.TitleExists(ctx, dto.Title)
	if err != nil {
		return nil, s.fail("check title", err)
	}
	if taken {
		return nil, apperr.Conflict(models.EntityTweet, "title")
	}

	stickers, err := s.resolveStickers(ctx, dto.StickerIDs)
	if err != nil {
		return nil, err
	}

	tweet := mapper.TweetToEntity(dto)
	tweet.ID = 0
	tweet.Creator = creator
	tweet.Stickers = stickers
	tweet.CreatedAt = s.now().UTC()
	if err := s.tweets.Save(ctx, tweet); err != nil {
		return nil, s.fail("create", err)
	}
	if tweet.Stickers == nil {
		tweet.Stickers = make([]*models.Sticker, 0)
	}

	s.log.Info().Int64("tweet_id", tweet.ID).Int64("creator_id", creator.ID).Msg("Tweet created")
	return mapper.TweetToDTO(tweet), nil
}

func (s *tweetService) GetOne(ctx context.Context, id int64) (*models.TweetDTO, error) {
	tweet, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.TweetToDTO(tweet), nil
}

func (s *tweetService) GetAll(ctx context.Context) ([]*models.TweetDTO, error) {
	tweets, err := s.tweets.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	dtos := make([]*models.TweetDTO, 0, len(tweets))
	for _, t := range tweets {
		dtos = append(dtos, mapper.TweetToDTO(t))
	}
	return dtos, nil
}

// Update re-resolves the creator only when it changes and re-checks the
// title only when it changes. A nil stickerIds keeps the current stickers.
func (s *tweetService) Update(ctx context.Context, dto *models.TweetDTO) (*models.TweetDTO, error) {
	tweet, err := s.find(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	creator := tweet.Creator
	if dto.CreatorID != tweet.CreatorID() {
		if creator, err = s.creator(ctx, dto.CreatorID); err != nil {
			return nil, err
		}
	}

	if dto.Title != tweet.Title {
		holder, err := s.tweets.GetByTitle(ctx, dto.Title)
		if err != nil {
			return nil, s.fail("check title", err)
		}
		if holder != nil && holder.ID != tweet.ID {
			return nil, apperr.Conflict(models.EntityTweet, "title")
		}
	}

	stickers := tweet.Stickers
	if dto.StickerIDs != nil {
		if stickers, err = s.resolveStickers(ctx, dto.StickerIDs); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	update := &models.Tweet{
		ID:        tweet.ID,
		Title:     dto.Title,
		Content:   dto.Content,
		Creator:   creator,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: &now,
	}
	// Only touch the join table when the request named stickers
	if dto.StickerIDs != nil {
		update.Stickers = stickers
	}
	if err := s.tweets.Save(ctx, update); err != nil {
		return nil, s.fail("update", err)
	}

	update.Stickers = stickers
	return mapper.TweetToDTO(update), nil
}

func (s *tweetService) Delete(ctx context.Context, id int64) error {
	exists, err := s.tweets.Exists(ctx, id)
	if err != nil {
		return s.fail("check", err)
	}
	if !exists {
		return apperr.NotFound(models.EntityTweet)
	}
	if err := s.tweets.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	s.log.Info().Int64("tweet_id", id).Msg("Tweet deleted")
	return nil
}

func (s *tweetService) find(ctx context.Context, id int64) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	if tweet == nil {
		return nil, apperr.NotFound(models.EntityTweet)
	}
	return tweet, nil
}

func (s *tweetService) creator(ctx context.Context, id int64) (*models.Creator, error) {
	creator, err := s.creators.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(s.log, "get", models.EntityCreator, "", err)
	}
	if creator == nil {
		return nil, apperr.NotFound(models.EntityCreator)
	}
	return creator, nil
}

// resolveStickers looks up every id once, preserving first-seen order.
// nil in, nil out.
func (s *tweetService) resolveStickers(ctx context.Context, ids []int64) ([]*models.Sticker, error) {
	if ids == nil {
		return nil, nil
	}
	seen := make(map[int64]bool, len(ids))
	stickers := make([]*models.Sticker, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		sticker, err := s.stickers.GetByID(ctx, id)
		if err != nil {
			return nil, storageError(s.log, "get", models.EntitySticker, "", err)
		}
		if sticker == nil {
			return nil, apperr.NotFound(models.EntitySticker)
		}
		stickers = append(stickers, sticker)
	}
	return stickers, nil
}

func (s *tweetService) fail(op string, err error) error {
	return storageError(s.log, op, models.EntityTweet, "title", err)
}
