package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/lib/pq"

	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/models"
)

var (
	// ErrDuplicateKey is returned when a write violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrCounterContention is returned when a counter could not be advanced
	// within the retry budget
	ErrCounterContention = errors.New("counter contention")
)

// CreatorRepository defines the interface for creator data operations
type CreatorRepository interface {
	Save(ctx context.Context, creator *models.Creator) error
	GetByID(ctx context.Context, id int64) (*models.Creator, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Creator, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	GetByLogin(ctx context.Context, login string) (*models.Creator, error)
}

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Save(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id int64) (*models.Tweet, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Tweet, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	GetByTitle(ctx context.Context, title string) (*models.Tweet, error)
}

// StickerRepository defines the interface for sticker data operations
type StickerRepository interface {
	Save(ctx context.Context, sticker *models.Sticker) error
	GetByID(ctx context.Context, id int64) (*models.Sticker, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Sticker, error)
	NameExists(ctx context.Context, name string) (bool, error)
	GetByName(ctx context.Context, name string) (*models.Sticker, error)
}

// CommentRepository defines the interface for comment data operations as
// seen by the publisher. Implementations may store comments locally or in
// the discussion service; callers cannot tell which.
type CommentRepository interface {
	// Save inserts when comment.ID is zero and updates otherwise. The
	// returned comment carries the stored id and a hydrated tweet.
	Save(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Comment, error)
}

// DiscussionCommentRepository defines wide-column comment storage
type DiscussionCommentRepository interface {
	Save(ctx context.Context, comment *models.DiscussionComment) error
	// FindByID scans every partition; acceptable only at small scale
	FindByID(ctx context.Context, id int64) (*models.DiscussionComment, error)
	List(ctx context.Context) ([]*models.DiscussionComment, error)
	DeleteByKey(ctx context.Context, key models.CommentKey) error
}

// IDCounterRepository mints identifiers from named counter rows
type IDCounterRepository interface {
	// Next atomically advances the named counter and returns the new value
	Next(ctx context.Context, name string) (int64, error)
}

// Repositories holds the publisher's repository interfaces
type Repositories struct {
	Creator CreatorRepository
	Tweet   TweetRepository
	Sticker StickerRepository
	Comment CommentRepository
}

// New creates the publisher repositories with the given database connection.
// Comments are stored locally; swap Comment for a RemoteCommentRepo to keep
// them in the discussion service.
func New(db *database.DB) *Repositories {
	tweets := NewTweetRepo(db)
	return &Repositories{
		Creator: NewCreatorRepo(db),
		Tweet:   tweets,
		Sticker: NewStickerRepo(db),
		Comment: NewCommentRepo(db, tweets),
	}
}

// DiscussionRepositories holds the discussion service's repositories
type DiscussionRepositories struct {
	Comment DiscussionCommentRepository
	IDs     IDCounterRepository
}

// NewDiscussion creates the discussion repositories over a keyspace session
func NewDiscussion(session *gocql.Session) *DiscussionRepositories {
	return &DiscussionRepositories{
		Comment: NewDiscussionCommentRepo(session),
		IDs:     NewIDCounterRepo(session, DefaultCounterAttempts),
	}
}

// wrapWriteError maps unique violations to ErrDuplicateKey
func wrapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Constraint)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
