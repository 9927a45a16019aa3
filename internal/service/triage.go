package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
	"github.com/spec-kit/helpdesk-triage/internal/events"
	"github.com/spec-kit/helpdesk-triage/internal/observability"
	"github.com/spec-kit/helpdesk-triage/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-triage/pkg/util"
)

// SweepCounts summarizes one batch pass. Assigned counts routed and queued
// tickets alike; Skipped counts tickets whose status excluded them.
type SweepCounts struct {
	ClosedByAI int `json:"closed_by_ai"`
	Assigned   int `json:"assigned"`
	Skipped    int `json:"skipped"`
}

// SweepLocker serializes sweeps across processes sharing a backing store.
type SweepLocker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// TriageService runs the classify/resolve/route pipeline: the batch sweep
// over all open tickets plus the single-ticket solve and assign operations.
type TriageService struct {
	tickets    repository.TicketStore
	router     *RouterService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	locker     SweepLocker
	logger     *zap.Logger
	now        func() time.Time

	mu sync.Mutex // one in-flight sweep per process
}

// TriageDependencies bundles collaborators. Locker may be nil.
type TriageDependencies struct {
	TicketStore repository.TicketStore
	Router      *RouterService
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Locker      SweepLocker
	Logger      *zap.Logger
}

// NewTriageService creates the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		tickets:    deps.TicketStore,
		router:     deps.Router,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		locker:     deps.Locker,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Sweep processes every persisted ticket once: sweepable tickets are
// reclassified (the sweep is authoritative over any prior taxonomy), then
// either closed with a canned remedy or routed to an expert; tickets nobody
// can take are queued. The full set is saved once at the end, so a failure
// mid-sweep persists nothing — at-most-once, non-resumable batch semantics.
func (s *TriageService) Sweep(ctx context.Context) (SweepCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locker != nil {
		ok, err := s.locker.Acquire(ctx)
		if err != nil {
			// Lock service outage degrades to process-local serialization.
			s.logger.Warn("sweep lock unavailable, proceeding unlocked", zap.Error(err))
		} else if !ok {
			return SweepCounts{}, apperrors.NewConflict("sweep already in progress", nil)
		} else {
			defer s.locker.Release(ctx)
		}
	}

	tickets, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return SweepCounts{}, apperrors.MapError(err)
	}

	var counts SweepCounts
	now := s.now()

	for i := range tickets {
		ticket := &tickets[i]
		if !ticket.Status.Sweepable() {
			counts.Skipped++
			continue
		}

		ticket.Category, ticket.Subcategory = Classify(ticket.Description)
		s.metrics.RecordClassification(string(ticket.Category))

		resolved, text := AttemptResolution(*ticket)
		if resolved {
			ticket.Status = domain.TicketStatusClosed
			ticket.AISolution = text
			ticket.UpdatedAt = now
			counts.ClosedByAI++
			s.publish(ctx, events.Event{
				Type:     events.EventTicketResolved,
				TicketID: ticket.IssueID,
				Payload: events.TicketResolvedPayload{
					Category:    ticket.Category,
					Subcategory: ticket.Subcategory,
					Solution:    text,
				},
			})
			continue
		}

		expert, err := s.router.ChooseExpert(ctx, ticket.Category, ticket.Subcategory)
		if err != nil {
			return SweepCounts{}, apperrors.MapError(err)
		}
		if expert != nil {
			ticket.Status = domain.TicketStatusAssigned
			ticket.AssignedExpertID = expert.ID
			s.publish(ctx, events.Event{
				Type:     events.EventTicketAssigned,
				TicketID: ticket.IssueID,
				Payload: events.TicketAssignedPayload{
					ExpertID:    expert.ID,
					Category:    ticket.Category,
					Subcategory: ticket.Subcategory,
				},
			})
		} else {
			ticket.Status = domain.TicketStatusQueued
			s.publish(ctx, events.Event{
				Type:     events.EventTicketQueued,
				TicketID: ticket.IssueID,
				Payload: events.TicketQueuedPayload{
					Category:    ticket.Category,
					Subcategory: ticket.Subcategory,
				},
			})
		}
		ticket.UpdatedAt = now
		counts.Assigned++
	}

	if err := s.tickets.SaveTickets(ctx, tickets); err != nil {
		return SweepCounts{}, apperrors.MapError(err)
	}

	s.metrics.RecordSweep(counts.ClosedByAI, counts.Assigned, counts.Skipped)
	s.publish(ctx, events.Event{
		Type:    events.EventSweepCompleted,
		Payload: events.SweepCompletedPayload(counts),
	})
	s.logger.Info("sweep complete",
		zap.Int("closed_by_ai", counts.ClosedByAI),
		zap.Int("assigned", counts.Assigned),
		zap.Int("skipped", counts.Skipped))

	return counts, nil
}

// SolveTicket runs the resolver against one ticket, recording the remedy (or
// the advisory text) and closing the ticket when the remedy applies.
func (s *TriageService) SolveTicket(ctx context.Context, issueID string) (*domain.Ticket, bool, error) {
	tickets, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return nil, false, apperrors.MapError(err)
	}

	idx := indexOf(tickets, issueID)
	if idx < 0 {
		return nil, false, apperrors.NewNotFound("ticket", map[string]any{"issue_id": issueID})
	}

	ticket := &tickets[idx]
	resolved, text := AttemptResolution(*ticket)
	ticket.AISolution = text
	if resolved {
		ticket.Status = domain.TicketStatusClosed
	}
	ticket.UpdatedAt = s.now()

	if err := s.tickets.SaveTickets(ctx, tickets); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	if resolved {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketResolved,
			TicketID: ticket.IssueID,
			Payload: events.TicketResolvedPayload{
				Category:    ticket.Category,
				Subcategory: ticket.Subcategory,
				Solution:    text,
			},
		})
	}
	return ticket, resolved, nil
}

// AssignTicket classifies one ticket from its description and routes it to an
// expert immediately, bypassing the resolver.
func (s *TriageService) AssignTicket(ctx context.Context, issueID string) (*domain.Ticket, *domain.Expert, error) {
	tickets, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	idx := indexOf(tickets, issueID)
	if idx < 0 {
		return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"issue_id": issueID})
	}

	ticket := &tickets[idx]
	ticket.Category, ticket.Subcategory = Classify(ticket.Description)

	expert, err := s.router.ChooseExpert(ctx, ticket.Category, ticket.Subcategory)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if expert == nil {
		return nil, nil, apperrors.NewConflict("no available expert", map[string]any{
			"category":    ticket.Category,
			"subcategory": ticket.Subcategory,
		})
	}

	ticket.Status = domain.TicketStatusAssigned
	ticket.AssignedExpertID = expert.ID
	ticket.UpdatedAt = s.now()

	if err := s.tickets.SaveTickets(ctx, tickets); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.IssueID,
		Payload: events.TicketAssignedPayload{
			ExpertID:    expert.ID,
			Category:    ticket.Category,
			Subcategory: ticket.Subcategory,
		},
	})
	return ticket, expert, nil
}

func indexOf(tickets []domain.Ticket, issueID string) int {
	for i := range tickets {
		if tickets[i].IssueID == issueID {
			return i
		}
	}
	return -1
}

func (s *TriageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
