package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/models"
)

const creatorColumns = `id, login, password, firstname, lastname`

// creatorRepo is the concrete implementation of CreatorRepository
type creatorRepo struct {
	db *database.DB
}

// NewCreatorRepo creates a new creator repository
func NewCreatorRepo(db *database.DB) CreatorRepository {
	return &creatorRepo{db: db}
}

// Save inserts a new creator or replaces the mutable fields of an existing one
func (r *creatorRepo) Save(ctx context.Context, creator *models.Creator) error {
	if creator.ID == 0 {
		query := `
			INSERT INTO tbl_creator (login, password, firstname, lastname)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query,
			creator.Login, creator.Password, creator.Firstname, creator.Lastname,
		).Scan(&creator.ID)
		return wrapWriteError(err)
	}

	query := `
		UPDATE tbl_creator
		SET login = $1, password = $2, firstname = $3, lastname = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		creator.Login, creator.Password, creator.Firstname, creator.Lastname, creator.ID,
	)
	if err != nil {
		return wrapWriteError(err)
	}
	return expectAffected(res)
}

// GetByID retrieves a creator by ID
func (r *creatorRepo) GetByID(ctx context.Context, id int64) (*models.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM tbl_creator WHERE id = $1`
	return scanCreator(r.db.QueryRowContext(ctx, query, id))
}

// Exists checks if a creator with the given ID exists
func (r *creatorRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_creator WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Delete removes a creator; their tweets go with them
func (r *creatorRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tbl_creator WHERE id = $1", id)
	return err
}

// List retrieves all creators
func (r *creatorRepo) List(ctx context.Context) ([]*models.Creator, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+creatorColumns+` FROM tbl_creator ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := make([]*models.Creator, 0)
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, creator)
	}
	return creators, rows.Err()
}

// LoginExists checks if a creator with the given login exists
func (r *creatorRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tbl_creator WHERE login = $1)", login).Scan(&exists)
	return exists, err
}

// GetByLogin retrieves a creator by login
func (r *creatorRepo) GetByLogin(ctx context.Context, login string) (*models.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM tbl_creator WHERE login = $1`
	return scanCreator(r.db.QueryRowContext(ctx, query, login))
}

func scanCreator(row rowScanner) (*models.Creator, error) {
	var creator models.Creator
	err := row.Scan(&creator.ID, &creator.Login, &creator.Password, &creator.Firstname, &creator.Lastname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// expectAffected turns an update that matched nothing into sql.ErrNoRows
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
