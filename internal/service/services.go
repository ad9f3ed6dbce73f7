package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// CreatorService defines the use cases for creators
type CreatorService interface {
	Create(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error)
	GetOne(ctx context.Context, id int64) (*models.CreatorDTO, error)
	GetAll(ctx context.Context) ([]*models.CreatorDTO, error)
	Update(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error)
	Delete(ctx context.Context, id int64) error
}

// TweetService defines the use cases for tweets
type TweetService interface {
	Create(ctx context.Context, dto *models.TweetDTO) (*models.TweetDTO, error)
	GetOne(ctx context.Context, id int64) (*models.TweetDTO, error)
	GetAll(ctx context.Context) ([]*models.TweetDTO, error)
	Update(ctx context.Context, dto *models.TweetDTO) (*models.TweetDTO, error)
	Delete(ctx context.Context, id int64) error
}

// StickerService defines the use cases for stickers
type StickerService interface {
	Create(ctx context.Context, dto *models.StickerDTO) (*models.StickerDTO, error)
	GetOne(ctx context.Context, id int64) (*models.StickerDTO, error)
	GetAll(ctx context.Context) ([]*models.StickerDTO, error)
	Update(ctx context.Context, dto *models.StickerDTO) (*models.StickerDTO, error)
	Delete(ctx context.Context, id int64) error
}

// CommentService defines the publisher's use cases for comments
type CommentService interface {
	Create(ctx context.Context, dto *models.CommentDTO) (*models.CommentDTO, error)
	GetOne(ctx context.Context, id int64) (*models.CommentDTO, error)
	GetAll(ctx context.Context) ([]*models.CommentDTO, error)
	Update(ctx context.Context, dto *models.CommentDTO) (*models.CommentDTO, error)
	Delete(ctx context.Context, id int64) error
}

// DiscussionService defines the discussion service's use cases for comments
type DiscussionService interface {
	Create(ctx context.Context, dto *models.DiscussionCommentDTO) (*models.DiscussionCommentDTO, error)
	GetOne(ctx context.Context, id int64) (*models.DiscussionCommentDTO, error)
	GetAll(ctx context.Context) ([]*models.DiscussionCommentDTO, error)
	Update(ctx context.Context, dto *models.DiscussionCommentDTO) (*models.DiscussionCommentDTO, error)
	Delete(ctx context.Context, id int64) error
}

// Services holds the publisher's services
type Services struct {
	Creator CreatorService
	Tweet   TweetService
	Sticker StickerService
	Comment CommentService
}

// Option customises service construction
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamping
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewServices creates the publisher services
func NewServices(repos *repository.Repositories, log zerolog.Logger, opts ...Option) *Services {
	o := newOptions(opts)
	return &Services{
		Creator: newCreatorService(repos.Creator, log),
		Tweet:   newTweetService(repos, o.now, log),
		Sticker: newStickerService(repos.Sticker, log),
		Comment: newCommentService(repos.Comment, repos.Tweet, log),
	}
}

// storageError classifies a repository failure. Unique violations become a
// Conflict on field and vanished rows a NotFound; anything else is logged and
// wrapped for the unexpected-error response.
func storageError(log zerolog.Logger, op, entity, field string, err error) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrDuplicateKey) && field != "":
		return apperr.Conflict(entity, field)
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound(entity)
	}
	log.Error().Err(err).Str("op", op).Str("entity", entity).Msg("Storage operation failed")
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
