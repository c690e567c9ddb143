package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const LuckyNumberCounter = "lucky_number"

// CounterRepository issues values from named counters that wrap within
// [1, max].
type CounterRepository interface {
	NextLuckyNumber(ctx context.Context) (int, error)
	SyncLuckyNumber(ctx context.Context, postID int64, value int) (bool, error)
	ResetLuckyNumber(ctx context.Context, tx *sqlx.Tx, value int) error
}

type counterRepository struct {
	db *sqlx.DB
}

func NewCounterRepository(db *sqlx.DB) CounterRepository {
	return &counterRepository{db: db}
}

// The first call seeds the row from the most recent post so the sequence
// carries on from existing data.
const nextLuckyNumberQuery = `
	INSERT INTO counters (name, value)
	VALUES ($1, (
		SELECT COALESCE(
			(SELECT CASE WHEN lucky_number ~ '^[0-9]+$' THEN lucky_number::int ELSE 0 END
			 FROM posts ORDER BY created_at DESC, id DESC LIMIT 1), 0) % 999 + 1
	))
	ON CONFLICT (name) DO UPDATE SET value = counters.value % 999 + 1
	RETURNING value
`

func (r *counterRepository) NextLuckyNumber(ctx context.Context) (int, error) {
	var value int
	if err := r.db.QueryRowxContext(ctx, nextLuckyNumberQuery, LuckyNumberCounter).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

const syncLuckyNumberQuery = `
	UPDATE counters SET value = $2
	WHERE name = $1
	  AND $3 = (SELECT id FROM posts ORDER BY created_at DESC, id DESC LIMIT 1)
`

// SyncLuckyNumber moves the counter to value when postID is the most
// recently created post. It reports whether the counter moved.
func (r *counterRepository) SyncLuckyNumber(ctx context.Context, postID int64, value int) (bool, error) {
	res, err := r.db.ExecContext(ctx, syncLuckyNumberQuery, LuckyNumberCounter, value, postID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const resetLuckyNumberQuery = `
	INSERT INTO counters (name, value) VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
`

func (r *counterRepository) ResetLuckyNumber(ctx context.Context, tx *sqlx.Tx, value int) error {
	_, err := pick(r.db, tx).ExecContext(ctx, resetLuckyNumberQuery, LuckyNumberCounter, value)
	return err
}
