package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusQueued     TicketStatus = "queued"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusReopen     TicketStatus = "reopen"
	TicketStatusReopened   TicketStatus = "reopened"
)

// Sweepable reports whether the batch sweep may touch a ticket in this status.
// Assigned and closed tickets are terminal for the sweep; queued tickets are
// likewise excluded once set.
func (s TicketStatus) Sweepable() bool {
	switch s {
	case "", TicketStatusOpen, TicketStatusReopen, TicketStatusReopened:
		return true
	}
	return false
}

// ValidStatus reports whether s belongs to the lifecycle enumeration.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusAssigned, TicketStatusQueued,
		TicketStatusResolved, TicketStatusClosed, TicketStatusReopen, TicketStatusReopened:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"

	// TicketPriorityCritical appears in legacy records and gates resolution
	// like high; it is not accepted on intake.
	TicketPriorityCritical TicketPriority = "critical"
)

// ValidPriority reports whether p is accepted on intake.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for a reported IT issue. IssueID is of the form
// "ISS" followed by a zero-padded sequence number and is never reused.
type Ticket struct {
	IssueID          string
	EmployeeID       string
	Description      string
	Category         Category
	Subcategory      string
	Priority         TicketPriority
	Status           TicketStatus
	AssignedExpertID string
	AISolution       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
