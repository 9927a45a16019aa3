package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// TicketStore is the durable ticket capability set. SaveTickets is a full
// overwrite of the set; AppendTicket is the intake path and must not clobber
// tickets written by a concurrent sweep within the same process.
type TicketStore interface {
	LoadTickets(ctx context.Context) ([]domain.Ticket, error)
	SaveTickets(ctx context.Context, tickets []domain.Ticket) error
	AppendTicket(ctx context.Context, ticket *domain.Ticket) error
}

// ExpertStore exposes the expert roster and the load counter transaction.
//
// IncrementLoad performs an atomic read-increment-write on the expert's
// current_load. A missing expert record is a no-op, not an error: routing must
// never be blocked by a stale counter target.
type ExpertStore interface {
	LoadExperts(ctx context.Context) ([]domain.Expert, error)
	IncrementLoad(ctx context.Context, expertID string) error
}
