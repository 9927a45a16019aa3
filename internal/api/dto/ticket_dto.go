package dto

import (
	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// CreateTicketRequest payload for the intake surface.
type CreateTicketRequest struct {
	EmployeeID  string `json:"employee_id"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
}

// TicketResponse mirrors the persisted ticket record.
type TicketResponse struct {
	IssueID          string `json:"issue_id"`
	EmployeeID       string `json:"employee_id,omitempty"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Subcategory      string `json:"subcategory"`
	Priority         string `json:"priority"`
	Status           string `json:"status"`
	AssignedExpertID string `json:"assigned_expert_id,omitempty"`
	AISolution       string `json:"ai_solution,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

const timeLayout = "2006-01-02 15:04:05"

// TicketResponseFrom maps a domain ticket.
func TicketResponseFrom(t domain.Ticket) TicketResponse {
	resp := TicketResponse{
		IssueID:          t.IssueID,
		EmployeeID:       t.EmployeeID,
		Description:      t.Description,
		Category:         string(t.Category),
		Subcategory:      t.Subcategory,
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		AssignedExpertID: t.AssignedExpertID,
		AISolution:       t.AISolution,
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = t.CreatedAt.Format(timeLayout)
	}
	if !t.UpdatedAt.IsZero() {
		resp.UpdatedAt = t.UpdatedAt.Format(timeLayout)
	}
	return resp
}

// TicketResponsesFrom maps a ticket slice.
func TicketResponsesFrom(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, TicketResponseFrom(t))
	}
	return result
}
