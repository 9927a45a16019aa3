package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// PGExpertStore persists the expert roster in Postgres.
type PGExpertStore struct {
	pool *pgxpool.Pool
}

// NewPGExpertStore instantiates the store.
func NewPGExpertStore(pool *pgxpool.Pool) *PGExpertStore {
	return &PGExpertStore{pool: pool}
}

// LoadExperts returns the full roster.
func (s *PGExpertStore) LoadExperts(ctx context.Context) ([]domain.Expert, error) {
	const query = `
        SELECT id, name, contact, expertise, availability, current_load
        FROM experts ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Expert
	for rows.Next() {
		var e domain.Expert
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Contact,
			&e.Expertise,
			&e.Availability,
			&e.CurrentLoad,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// IncrementLoad bumps current_load inside a row-locking transaction so two
// concurrent assignments cannot both observe the same stale value. A missing
// expert row is a no-op.
func (s *PGExpertStore) IncrementLoad(ctx context.Context, expertID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var load int
	err = tx.QueryRow(ctx, `SELECT current_load FROM experts WHERE id=$1 FOR UPDATE`, expertID).Scan(&load)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE experts SET current_load=$1 WHERE id=$2`, load+1, expertID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
