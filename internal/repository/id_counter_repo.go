package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
)

// DefaultCounterAttempts bounds the compare-and-set loop in Next
const DefaultCounterAttempts = 16

// idCounterRepo mints ids from rows of the ids table using lightweight
// transactions. last_id holds the most recently issued value.
type idCounterRepo struct {
	session     *gocql.Session
	maxAttempts int
}

// NewIDCounterRepo creates a counter repository; maxAttempts <= 0 uses the default
func NewIDCounterRepo(session *gocql.Session, maxAttempts int) IDCounterRepository {
	if maxAttempts <= 0 {
		maxAttempts = DefaultCounterAttempts
	}
	return &idCounterRepo{session: session, maxAttempts: maxAttempts}
}

// Next reads the counter and advances it with a conditional write. A lost
// race re-reads and tries again, so concurrent callers in any number of
// processes never receive the same value.
func (r *idCounterRepo) Next(ctx context.Context, name string) (int64, error) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		var last int64
		err := r.session.Query(`SELECT last_id FROM ids WHERE name = ?`, name).
			WithContext(ctx).
			Consistency(gocql.Consistency(gocql.LocalSerial)).
			Scan(&last)

		var applied bool
		switch {
		case errors.Is(err, gocql.ErrNotFound):
			applied, err = r.session.Query(
				`INSERT INTO ids (name, last_id) VALUES (?, ?) IF NOT EXISTS`, name, int64(1),
			).WithContext(ctx).MapScanCAS(make(map[string]interface{}))
			if err != nil {
				return 0, fmt.Errorf("failed to initialise counter %s: %w", name, err)
			}
			if applied {
				return 1, nil
			}
		case err != nil:
			return 0, fmt.Errorf("failed to read counter %s: %w", name, err)
		default:
			applied, err = r.session.Query(
				`UPDATE ids SET last_id = ? WHERE name = ? IF last_id = ?`, last+1, name, last,
			).WithContext(ctx).MapScanCAS(make(map[string]interface{}))
			if err != nil {
				return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
			}
			if applied {
				return last + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s after %d attempts", ErrCounterContention, name, r.maxAttempts)
}
