package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/admission"
	"github.com/spec-kit/helpdesk-triage/internal/domain"
	"github.com/spec-kit/helpdesk-triage/internal/events"
	"github.com/spec-kit/helpdesk-triage/internal/observability"
	"github.com/spec-kit/helpdesk-triage/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-triage/pkg/util"
)

// Minimum substance required of a description before the admission gate runs.
const (
	minDescriptionChars = 10
	minDescriptionWords = 2
)

// TicketInput is the intake payload. Category, subcategory, priority, and
// status are optional; category may be inferred, priority defaults to medium,
// status to open.
type TicketInput struct {
	EmployeeID  string
	Description string
	Category    string
	Subcategory string
	Priority    string
	Status      string
}

// IntakeService validates submissions, applies the admission gate, and
// persists accepted tickets.
type IntakeService struct {
	tickets    repository.TicketStore
	gate       *admission.Gate
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// IntakeDependencies bundles collaborators.
type IntakeDependencies struct {
	TicketStore repository.TicketStore
	Gate        *admission.Gate
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewIntakeService creates the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		tickets:    deps.TicketStore,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// CreateTicket validates and persists a new ticket. Validation failures and
// admission rejections are field-keyed errors; nothing rejected is ever
// written to the store.
func (s *IntakeService) CreateTicket(ctx context.Context, input TicketInput) (*domain.Ticket, error) {
	description := strings.TrimSpace(input.Description)
	// Character count, not byte count: Turkish descriptions are multibyte.
	if utf8.RuneCountInString(description) < minDescriptionChars || len(strings.Fields(description)) < minDescriptionWords {
		return nil, apperrors.NewFieldValidationError("description",
			"please provide more detail about the IT/device issue (at least 2 words)")
	}

	category := strings.ToLower(strings.TrimSpace(input.Category))
	subcategory := strings.ToLower(strings.TrimSpace(input.Subcategory))
	priority := strings.ToLower(strings.TrimSpace(input.Priority))
	status := strings.ToLower(strings.TrimSpace(input.Status))

	decision := s.gate.Admit(ctx, description)
	s.metrics.RecordAdmission(string(decision.Outcome))
	switch decision.Outcome {
	case admission.OutcomeNotIT:
		return nil, apperrors.NewFieldValidationError("description",
			"this doesn't appear to be an IT/computer/device-related issue")
	case admission.OutcomeInsufficientDetail:
		return nil, apperrors.NewFieldValidationError("description",
			"please provide a bit more detail so we can understand the IT issue")
	}

	if category == "" {
		category = string(s.gate.InferCategory(ctx, description, decision.RemoteUsed))
	}
	if subcategory == "" && category == string(domain.CategoryPrinting) {
		subcategory = domain.SubcategoryPrinter
	}

	if !domain.ValidCategory(domain.Category(category)) {
		return nil, apperrors.NewFieldValidationError("category",
			fmt.Sprintf("invalid category %q", category))
	}
	if priority == "" {
		priority = string(domain.TicketPriorityMedium)
	}
	if !domain.ValidPriority(domain.TicketPriority(priority)) {
		return nil, apperrors.NewFieldValidationError("priority",
			fmt.Sprintf("invalid priority %q", priority))
	}
	if status == "" {
		status = string(domain.TicketStatusOpen)
	}
	if !domain.ValidStatus(domain.TicketStatus(status)) {
		return nil, apperrors.NewFieldValidationError("status",
			fmt.Sprintf("invalid status %q", status))
	}

	existing, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	ticket := &domain.Ticket{
		IssueID:     NextIssueID(existing),
		EmployeeID:  strings.TrimSpace(input.EmployeeID),
		Description: description,
		Category:    domain.Category(category),
		Subcategory: subcategory,
		Priority:    domain.TicketPriority(priority),
		Status:      domain.TicketStatus(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tickets.AppendTicket(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordClassification(category)
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.IssueID,
		Payload: events.TicketCreatedPayload{
			EmployeeID:  ticket.EmployeeID,
			Category:    ticket.Category,
			Subcategory: ticket.Subcategory,
			Priority:    ticket.Priority,
		},
	})
	s.logger.Info("ticket created",
		zap.String("issue_id", ticket.IssueID),
		zap.String("employee_id", ticket.EmployeeID),
		zap.String("category", category))

	return ticket, nil
}

// ListTickets returns all persisted tickets in store order.
func (s *IntakeService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket returns one ticket by issue id.
func (s *IntakeService) GetTicket(ctx context.Context, issueID string) (*domain.Ticket, error) {
	tickets, err := s.tickets.LoadTickets(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range tickets {
		if tickets[i].IssueID == issueID {
			return &tickets[i], nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"issue_id": issueID})
}

var issueIDPattern = regexp.MustCompile(`^ISS(\d+)$`)

// NextIssueID allocates max(existing numeric suffixes)+1, zero-padded to at
// least three digits. Gaps are never refilled, so deleted ids stay retired.
func NextIssueID(tickets []domain.Ticket) string {
	maxNum := 0
	for _, t := range tickets {
		m := issueIDPattern.FindStringSubmatch(t.IssueID)
		if m == nil {
			continue
		}
		if num, err := strconv.Atoi(m[1]); err == nil && num > maxNum {
			maxNum = num
		}
	}
	return fmt.Sprintf("ISS%03d", maxNum+1)
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
