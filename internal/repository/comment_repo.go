package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/models"
)

// commentRepo stores comments in the publisher's own database
type commentRepo struct {
	db     *database.DB
	tweets TweetRepository
}

// NewCommentRepo creates a new local comment repository
func NewCommentRepo(db *database.DB, tweets TweetRepository) CommentRepository {
	return &commentRepo{db: db, tweets: tweets}
}

// Save inserts a new comment or updates an existing one
func (r *commentRepo) Save(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.ID == 0 {
		query := `
			INSERT INTO tbl_comment (content, tweet_id)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := r.db.QueryRowContext(ctx, query, comment.Content, comment.TweetID()).Scan(&comment.ID); err != nil {
			return nil, err
		}
		return comment, nil
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE tbl_comment SET content = $1, tweet_id = $2 WHERE id = $3",
		comment.Content, comment.TweetID(), comment.ID,
	)
	if err != nil {
		return nil, err
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetByID retrieves a comment by ID with its tweet
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	var tweetID int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id, content, tweet_id FROM tbl_comment WHERE id = $1", id,
	).Scan(&comment.ID, &comment.Content, &tweetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, []*models.Comment{&comment}, []int64{tweetID}); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Exists checks if a comment with the given ID exists
func (r *commentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_comment WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tbl_comment WHERE id = $1", id)
	return err
}

// List retrieves all comments with their tweets
func (r *commentRepo) List(ctx context.Context) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, content, tweet_id FROM tbl_comment ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	tweetIDs := make([]int64, 0)
	for rows.Next() {
		var comment models.Comment
		var tweetID int64
		if err := rows.Scan(&comment.ID, &comment.Content, &tweetID); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
		tweetIDs = append(tweetIDs, tweetID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, comments, tweetIDs); err != nil {
		return nil, err
	}
	return comments, nil
}

// hydrate attaches the tweet behind tweetIDs[i] to comments[i], fetching
// each distinct tweet once
func (r *commentRepo) hydrate(ctx context.Context, comments []*models.Comment, tweetIDs []int64) error {
	seen := make(map[int64]*models.Tweet)
	for i, comment := range comments {
		id := tweetIDs[i]
		tweet, ok := seen[id]
		if !ok {
			var err error
			if tweet, err = r.tweets.GetByID(ctx, id); err != nil {
				return err
			}
			if tweet == nil {
				tweet = &models.Tweet{ID: id}
			}
			seen[id] = tweet
		}
		comment.Tweet = tweet
	}
	return nil
}
