package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// discussionService is the concrete implementation of DiscussionService
type discussionService struct {
	comments repository.DiscussionCommentRepository
	ids      repository.IDCounterRepository
	log      zerolog.Logger
}

// NewDiscussionService creates the discussion service's comment use cases
func NewDiscussionService(repos *repository.DiscussionRepositories, log zerolog.Logger) DiscussionService {
	return &discussionService{
		comments: repos.Comment,
		ids:      repos.IDs,
		log:      log.With().Str("service", "discussion").Logger(),
	}
}

// Create mints the id from the comment_id counter and stores the row under
// (country, tweetId, id)
func (s *discussionService) Create(ctx context.Context, dto *models.DiscussionCommentDTO) (*models.DiscussionCommentDTO, error) {
	id, err := s.ids.Next(ctx, models.CommentIDCounter)
	if err != nil {
		return nil, s.fail("mint id", err)
	}

	comment := mapper.DiscussionCommentToEntity(dto)
	comment.Key.ID = id
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, s.fail("create", err)
	}

	s.log.Debug().
		Int64("comment_id", id).
		Int64("tweet_id", comment.Key.TweetID).
		Str("country", comment.Key.Country).
		Msg("Comment created")
	return mapper.DiscussionCommentToDTO(comment), nil
}

func (s *discussionService) GetOne(ctx context.Context, id int64) (*models.DiscussionCommentDTO, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.DiscussionCommentToDTO(comment), nil
}

func (s *discussionService) GetAll(ctx context.Context) ([]*models.DiscussionCommentDTO, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	dtos := make([]*models.DiscussionCommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, mapper.DiscussionCommentToDTO(c))
	}
	return dtos, nil
}

// Update changes content and may move the comment to another tweet. tweet_id
// is part of the primary key, so a move writes the new row before deleting the
// old one. Country and id are kept as stored.
func (s *discussionService) Update(ctx context.Context, dto *models.DiscussionCommentDTO) (*models.DiscussionCommentDTO, error) {
	comment, err := s.find(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	old := comment.Key
	comment.Content = dto.Content
	if dto.TweetID != 0 {
		comment.Key.TweetID = dto.TweetID
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, s.fail("update", err)
	}

	if comment.Key != old {
		if err := s.comments.DeleteByKey(ctx, old); err != nil {
			return nil, s.fail("move", err)
		}
		s.log.Debug().
			Int64("comment_id", old.ID).
			Int64("from_tweet_id", old.TweetID).
			Int64("to_tweet_id", comment.Key.TweetID).
			Msg("Comment moved")
	}
	return mapper.DiscussionCommentToDTO(comment), nil
}

// Delete resolves the composite key with the scanning finder, then deletes by it
func (s *discussionService) Delete(ctx context.Context, id int64) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteByKey(ctx, comment.Key); err != nil {
		return s.fail("delete", err)
	}
	return nil
}

func (s *discussionService) find(ctx context.Context, id int64) (*models.DiscussionComment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	if comment == nil {
		return nil, apperr.NotFound(models.EntityComment)
	}
	return comment, nil
}

func (s *discussionService) fail(op string, err error) error {
	return storageError(s.log, op, models.EntityComment, "", err)
}
