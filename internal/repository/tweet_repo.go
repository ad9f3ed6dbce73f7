package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/models"
)

const tweetSelect = `
	SELECT t.id, t.title, t.content, t.created_at, t.updated_at,
	       c.id, c.login, c.password, c.firstname, c.lastname
	FROM tbl_tweet t
	JOIN tbl_creator c ON c.id = t.creator_id
`

// tweetRepo is the concrete implementation of TweetRepository
type tweetRepo struct {
	db *database.DB
}

// NewTweetRepo creates a new tweet repository
func NewTweetRepo(db *database.DB) TweetRepository {
	return &tweetRepo{db: db}
}

// Save inserts or updates a tweet. created_at is written only on insert.
// When tweet.Stickers is non-nil the join table is replaced in the same
// transaction.
func (r *tweetRepo) Save(ctx context.Context, tweet *models.Tweet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if tweet.ID == 0 {
		query := `
			INSERT INTO tbl_tweet (title, content, creator_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query,
			tweet.Title, tweet.Content, tweet.CreatorID(), tweet.CreatedAt, tweet.UpdatedAt,
		).Scan(&tweet.ID)
		if err != nil {
			return wrapWriteError(err)
		}
	} else {
		query := `
			UPDATE tbl_tweet
			SET title = $1, content = $2, creator_id = $3, updated_at = $4
			WHERE id = $5
		`
		res, err := tx.ExecContext(ctx, query,
			tweet.Title, tweet.Content, tweet.CreatorID(), tweet.UpdatedAt, tweet.ID,
		)
		if err != nil {
			return wrapWriteError(err)
		}
		if err := expectAffected(res); err != nil {
			return err
		}
	}

	if tweet.Stickers != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM tbl_tweet_sticker WHERE tweet_id = $1", tweet.ID); err != nil {
			return err
		}
		if ids := tweet.StickerIDs(); len(ids) > 0 {
			query := `
				INSERT INTO tbl_tweet_sticker (tweet_id, sticker_id)
				SELECT $1, unnest($2::bigint[])
				ON CONFLICT DO NOTHING
			`
			if _, err := tx.ExecContext(ctx, query, tweet.ID, pq.Array(ids)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetByID retrieves a tweet with its creator and stickers
func (r *tweetRepo) GetByID(ctx context.Context, id int64) (*models.Tweet, error) {
	return r.getOne(ctx, tweetSelect+" WHERE t.id = $1", id)
}

// Exists checks if a tweet with the given ID exists
func (r *tweetRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_tweet WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Delete removes a tweet with its sticker links and local comments
func (r *tweetRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tbl_tweet WHERE id = $1", id)
	return err
}

// List retrieves all tweets, fetching stickers in one extra query
func (r *tweetRepo) List(ctx context.Context) ([]*models.Tweet, error) {
	rows, err := r.db.QueryContext(ctx, tweetSelect+" ORDER BY t.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := make([]*models.Tweet, 0)
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadStickers(ctx, tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// TitleExists checks if a tweet with the given title exists
func (r *tweetRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_tweet WHERE title = $1)", title).Scan(&exists)
	return exists, err
}

// GetByTitle retrieves a tweet by title
func (r *tweetRepo) GetByTitle(ctx context.Context, title string) (*models.Tweet, error) {
	return r.getOne(ctx, tweetSelect+" WHERE t.title = $1", title)
}

func (r *tweetRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.Tweet, error) {
	tweet, err := scanTweet(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadStickers(ctx, []*models.Tweet{tweet}); err != nil {
		return nil, err
	}
	return tweet, nil
}

// loadStickers fills Stickers for every tweet through the join table
func (r *tweetRepo) loadStickers(ctx context.Context, tweets []*models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Tweet, len(tweets))
	ids := make([]int64, 0, len(tweets))
	for _, t := range tweets {
		t.Stickers = make([]*models.Sticker, 0)
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query := `
		SELECT ts.tweet_id, s.id, s.name
		FROM tbl_tweet_sticker ts
		JOIN tbl_sticker s ON s.id = ts.sticker_id
		WHERE ts.tweet_id = ANY($1)
		ORDER BY s.id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tweetID int64
		var sticker models.Sticker
		if err := rows.Scan(&tweetID, &sticker.ID, &sticker.Name); err != nil {
			return err
		}
		if t, ok := byID[tweetID]; ok {
			t.Stickers = append(t.Stickers, &sticker)
		}
	}
	return rows.Err()
}

func scanTweet(row rowScanner) (*models.Tweet, error) {
	var tweet models.Tweet
	var creator models.Creator
	var updatedAt sql.NullTime

	err := row.Scan(
		&tweet.ID, &tweet.Title, &tweet.Content, &tweet.CreatedAt, &updatedAt,
		&creator.ID, &creator.Login, &creator.Password, &creator.Firstname, &creator.Lastname,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		tweet.UpdatedAt = &updatedAt.Time
	}
	tweet.Creator = &creator
	return &tweet, nil
}
