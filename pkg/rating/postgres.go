package rating

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresStore keeps ratings in the `ratings` table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the database
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the rating for the player
func (p *PostgresStore) Get(ctx context.Context, playerID int64) (int, bool, error) {
	const query = `
SELECT rating
FROM ratings
WHERE player_id = $1`

	var rating int
	if err := p.db.QueryRowContext(ctx, query, playerID).Scan(&rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}

		return 0, false, err
	}

	return rating, true, nil
}

// Save upserts the ratings in a single transaction
func (p *PostgresStore) Save(ctx context.Context, ratings map[int64]int) error {
	const query = `
INSERT INTO ratings (player_id, rating)
VALUES ($1, $2)
ON CONFLICT (player_id) DO UPDATE
SET rating = EXCLUDED.rating,
    updated = (NOW() AT TIME ZONE 'utc')`

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for playerID, rating := range ratings {
		if _, err := tx.ExecContext(ctx, query, playerID, rating); err != nil {
			return err
		}
	}

	return tx.Commit()
}
