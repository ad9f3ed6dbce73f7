package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/mapper"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// commentService is the publisher's CommentService. It does not know whether
// comments live locally or in the discussion service.
type commentService struct {
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, tweets repository.TweetRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		tweets:   tweets,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

func (s *commentService) Create(ctx context.Context, dto *models.CommentDTO) (*models.CommentDTO, error) {
	tweet, err := s.tweet(ctx, dto.TweetID)
	if err != nil {
		return nil, err
	}

	comment := mapper.CommentToEntity(dto)
	comment.ID = 0
	comment.Tweet = tweet
	saved, err := s.comments.Save(ctx, comment)
	if err != nil {
		return nil, s.fail("create", err)
	}
	return mapper.CommentToDTO(saved), nil
}

func (s *commentService) GetOne(ctx context.Context, id int64) (*models.CommentDTO, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.CommentToDTO(comment), nil
}

func (s *commentService) GetAll(ctx context.Context) ([]*models.CommentDTO, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	dtos := make([]*models.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, mapper.CommentToDTO(c))
	}
	return dtos, nil
}

// Update moves the comment to another tweet only if that tweet exists
func (s *commentService) Update(ctx context.Context, dto *models.CommentDTO) (*models.CommentDTO, error) {
	comment, err := s.find(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	tweet := comment.Tweet
	if dto.TweetID != comment.TweetID() {
		if tweet, err = s.tweet(ctx, dto.TweetID); err != nil {
			return nil, err
		}
	}

	saved, err := s.comments.Save(ctx, &models.Comment{
		ID:      comment.ID,
		Content: dto.Content,
		Tweet:   tweet,
	})
	if err != nil {
		return nil, s.fail("update", err)
	}
	return mapper.CommentToDTO(saved), nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	exists, err := s.comments.Exists(ctx, id)
	if err != nil {
		return s.fail("check", err)
	}
	if !exists {
		return apperr.NotFound(models.EntityComment)
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	return nil
}

func (s *commentService) find(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	if comment == nil {
		return nil, apperr.NotFound(models.EntityComment)
	}
	return comment, nil
}

func (s *commentService) tweet(ctx context.Context, id int64) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(s.log, "get", models.EntityTweet, "", err)
	}
	if tweet == nil {
		return nil, apperr.NotFound(models.EntityTweet)
	}
	return tweet, nil
}

func (s *commentService) fail(op string, err error) error {
	return storageError(s.log, op, models.EntityComment, "", err)
}
