package events

import (
	"time"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketResolved EventType = "ticket_resolved"
	EventTicketAssigned EventType = "ticket_assigned"
	EventTicketQueued   EventType = "ticket_queued"
	EventSweepCompleted EventType = "sweep_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	EmployeeID  string                `json:"employee_id,omitempty"`
	Category    domain.Category       `json:"category"`
	Subcategory string                `json:"subcategory"`
	Priority    domain.TicketPriority `json:"priority"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	Category    domain.Category `json:"category"`
	Subcategory string          `json:"subcategory"`
	Solution    string          `json:"solution"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	ExpertID    string          `json:"expert_id"`
	Category    domain.Category `json:"category"`
	Subcategory string          `json:"subcategory"`
}

// TicketQueuedPayload payload.
type TicketQueuedPayload struct {
	Category    domain.Category `json:"category"`
	Subcategory string          `json:"subcategory"`
}

// SweepCompletedPayload payload.
type SweepCompletedPayload struct {
	ClosedByAI int `json:"closed_by_ai"`
	Assigned   int `json:"assigned"`
	Skipped    int `json:"skipped"`
}
