package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// PGTicketStore persists tickets in Postgres.
type PGTicketStore struct {
	pool *pgxpool.Pool
}

// NewPGTicketStore instantiates the store.
func NewPGTicketStore(pool *pgxpool.Pool) *PGTicketStore {
	return &PGTicketStore{pool: pool}
}

// LoadTickets returns all tickets in creation order.
func (s *PGTicketStore) LoadTickets(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT issue_id, employee_id, description, category, subcategory, priority,
               status, assigned_expert_id, ai_solution, created_at, updated_at
        FROM tickets ORDER BY created_at, issue_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// SaveTickets replaces the whole ticket set in a single transaction, keeping
// the full-overwrite semantics of the flat-file backend without exposing a
// partially written sweep.
func (s *PGTicketStore) SaveTickets(ctx context.Context, tickets []domain.Ticket) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM tickets`); err != nil {
		return err
	}
	const insert = `
        INSERT INTO tickets (issue_id, employee_id, description, category, subcategory, priority,
                             status, assigned_expert_id, ai_solution, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	for _, t := range tickets {
		if _, err := tx.Exec(ctx, insert,
			t.IssueID,
			t.EmployeeID,
			t.Description,
			t.Category,
			t.Subcategory,
			t.Priority,
			t.Status,
			t.AssignedExpertID,
			t.AISolution,
			normalizeTime(t.CreatedAt),
			normalizeTime(t.UpdatedAt),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// AppendTicket inserts a single ticket.
func (s *PGTicketStore) AppendTicket(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (issue_id, employee_id, description, category, subcategory, priority,
                             status, assigned_expert_id, ai_solution, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := s.pool.Exec(ctx, query,
		ticket.IssueID,
		ticket.EmployeeID,
		ticket.Description,
		ticket.Category,
		ticket.Subcategory,
		ticket.Priority,
		ticket.Status,
		ticket.AssignedExpertID,
		ticket.AISolution,
		normalizeTime(ticket.CreatedAt),
		normalizeTime(ticket.UpdatedAt),
	)
	return err
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(
			&t.IssueID,
			&t.EmployeeID,
			&t.Description,
			&t.Category,
			&t.Subcategory,
			&t.Priority,
			&t.Status,
			&t.AssignedExpertID,
			&t.AISolution,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
