package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/models"
)

// stickerRepo is the concrete implementation of StickerRepository
type stickerRepo struct {
	db *database.DB
}

// NewStickerRepo creates a new sticker repository
func NewStickerRepo(db *database.DB) StickerRepository {
	return &stickerRepo{db: db}
}

// Save inserts a new sticker or renames an existing one
func (r *stickerRepo) Save(ctx context.Context, sticker *models.Sticker) error {
	if sticker.ID == 0 {
		err := r.db.QueryRowContext(ctx,
			"INSERT INTO tbl_sticker (name) VALUES ($1) RETURNING id", sticker.Name,
		).Scan(&sticker.ID)
		return wrapWriteError(err)
	}

	res, err := r.db.ExecContext(ctx, "UPDATE tbl_sticker SET name = $1 WHERE id = $2", sticker.Name, sticker.ID)
	if err != nil {
		return wrapWriteError(err)
	}
	return expectAffected(res)
}

// GetByID retrieves a sticker by ID
func (r *stickerRepo) GetByID(ctx context.Context, id int64) (*models.Sticker, error) {
	return scanSticker(r.db.QueryRowContext(ctx, "SELECT id, name FROM tbl_sticker WHERE id = $1", id))
}

// Exists checks if a sticker with the given ID exists
func (r *stickerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_sticker WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Delete removes a sticker and detaches it from every tweet
func (r *stickerRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tbl_sticker WHERE id = $1", id)
	return err
}

// List retrieves all stickers
func (r *stickerRepo) List(ctx context.Context) ([]*models.Sticker, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM tbl_sticker ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stickers := make([]*models.Sticker, 0)
	for rows.Next() {
		sticker, err := scanSticker(rows)
		if err != nil {
			return nil, err
		}
		stickers = append(stickers, sticker)
	}
	return stickers, rows.Err()
}

// NameExists checks if a sticker with the given name exists
func (r *stickerRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_sticker WHERE name = $1)", name).Scan(&exists)
	return exists, err
}

// GetByName retrieves a sticker by name
func (r *stickerRepo) GetByName(ctx context.Context, name string) (*models.Sticker, error) {
	return scanSticker(r.db.QueryRowContext(ctx, "SELECT id, name FROM tbl_sticker WHERE name = $1", name))
}

func scanSticker(row rowScanner) (*models.Sticker, error) {
	var sticker models.Sticker
	err := row.Scan(&sticker.ID, &sticker.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sticker, nil
}
