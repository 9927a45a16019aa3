package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/admission"
	"github.com/spec-kit/helpdesk-triage/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-triage/pkg/util"
)

type fakeTicketStore struct {
	tickets   []domain.Ticket
	appended  []domain.Ticket
	saved     [][]domain.Ticket
	loadErr   error
	saveErr   error
	appendErr error
}

func (f *fakeTicketStore) LoadTickets(ctx context.Context) ([]domain.Ticket, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]domain.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out, nil
}

func (f *fakeTicketStore) SaveTickets(ctx context.Context, tickets []domain.Ticket) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	saved := make([]domain.Ticket, len(tickets))
	copy(saved, tickets)
	f.saved = append(f.saved, saved)
	f.tickets = saved
	return nil
}

func (f *fakeTicketStore) AppendTicket(ctx context.Context, ticket *domain.Ticket) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, *ticket)
	f.tickets = append(f.tickets, *ticket)
	return nil
}

type fakeRemoteClassifier struct {
	outcome     admission.Outcome
	classifyErr error
	category    domain.Category
	categoryErr error
}

func (f *fakeRemoteClassifier) ClassifyIssue(ctx context.Context, description string) (admission.Outcome, error) {
	return f.outcome, f.classifyErr
}

func (f *fakeRemoteClassifier) CategorizeIssue(ctx context.Context, description string) (domain.Category, error) {
	return f.category, f.categoryErr
}

func newTestIntake(store *fakeTicketStore, remote admission.RemoteClassifier) *IntakeService {
	return NewIntakeService(IntakeDependencies{
		TicketStore: store,
		Gate:        admission.NewGate(remote, zap.NewNop()),
		Logger:      zap.NewNop(),
	})
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, field)
}

func TestCreateTicketRejectsShortDescription(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	for _, description := range []string{"", "help", "   broken   ", "onewordonly"} {
		_, err := intake.CreateTicket(context.Background(), TicketInput{
			EmployeeID:  "E100",
			Description: description,
		})
		require.Error(t, err, description)
		assertFieldError(t, err, "description")
	}
	assert.Empty(t, store.appended)
}

// The floor is 10 characters, not 10 bytes: multibyte Turkish text must not
// slip through on byte length alone.
func TestCreateTicketDescriptionFloorCountsCharacters(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	// 8 characters, 12 bytes.
	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "ağ çöktü",
	})
	require.Error(t, err)
	assertFieldError(t, err, "description")
	assert.Empty(t, store.appended)

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "ağ bağlantısı çöktü",
	})
	require.NoError(t, err)
	assert.Equal(t, "ISS001", ticket.IssueID)
}

func TestCreateTicketRejectsNonITIssue(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "The kitchen sink is leaking badly",
	})
	require.Error(t, err)
	assertFieldError(t, err, "description")
	assert.Empty(t, store.appended)
}

func TestCreateTicketInfersCategoryAndDefaults(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
	})
	require.NoError(t, err)

	assert.Equal(t, "ISS001", ticket.IssueID)
	assert.Equal(t, domain.CategoryNetwork, ticket.Category)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Len(t, store.appended, 1)
	assert.Equal(t, *ticket, store.appended[0])
}

func TestCreateTicketPrintingDefaultsPrinterSubcategory(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "The printer keeps jamming paper",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryPrinting, ticket.Category)
	assert.Equal(t, domain.SubcategoryPrinter, ticket.Subcategory)
}

func TestCreateTicketRejectsUnknownCategory(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
		Category:    "plumbing",
	})
	require.Error(t, err)
	assertFieldError(t, err, "category")
}

func TestCreateTicketRejectsUnknownPriority(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
		Priority:    "asap",
	})
	require.Error(t, err)
	assertFieldError(t, err, "priority")
}

func TestCreateTicketValidatesProvidedStatus(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, nil)

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
		Status:      "In_Progress",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)

	_, err = intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
		Status:      "archived",
	})
	require.Error(t, err)
	assertFieldError(t, err, "status")
}

func TestCreateTicketHonorsRemoteRejection(t *testing.T) {
	store := &fakeTicketStore{}
	// Local heuristic would accept this, but the remote verdict wins.
	intake := newTestIntake(store, &fakeRemoteClassifier{outcome: admission.OutcomeNotIT})

	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My laptop battery drains fast",
	})
	require.Error(t, err)
	assertFieldError(t, err, "description")
}

func TestCreateTicketRemoteInsufficientDetail(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, &fakeRemoteClassifier{outcome: admission.OutcomeInsufficientDetail})

	_, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "computer bad somehow",
	})
	require.Error(t, err)
	assertFieldError(t, err, "description")
}

func TestCreateTicketRemoteFailureFallsBackToLocal(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, &fakeRemoteClassifier{
		classifyErr: errors.New("timeout"),
	})

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryNetwork, ticket.Category)
}

func TestCreateTicketRemoteCategorySuggestion(t *testing.T) {
	store := &fakeTicketStore{}
	intake := newTestIntake(store, &fakeRemoteClassifier{
		outcome:  admission.OutcomeValid,
		category: domain.CategorySecurity,
	})

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySecurity, ticket.Category)
}

func TestCreateTicketSequencesIssueIDs(t *testing.T) {
	store := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001"},
		{IssueID: "ISS003"},
	}}
	intake := newTestIntake(store, nil)

	ticket, err := intake.CreateTicket(context.Background(), TicketInput{
		EmployeeID:  "E100",
		Description: "My vpn is not working today",
	})
	require.NoError(t, err)
	assert.Equal(t, "ISS004", ticket.IssueID)
}

func TestNextIssueID(t *testing.T) {
	tests := []struct {
		name    string
		tickets []domain.Ticket
		want    string
	}{
		{"empty store", nil, "ISS001"},
		{"sequential", []domain.Ticket{{IssueID: "ISS001"}, {IssueID: "ISS002"}}, "ISS003"},
		{"gap is not refilled", []domain.Ticket{{IssueID: "ISS001"}, {IssueID: "ISS007"}}, "ISS008"},
		{"malformed ids ignored", []domain.Ticket{{IssueID: "TCK-9"}, {IssueID: "ISS00X"}, {IssueID: "ISS002"}}, "ISS003"},
		{"wide ids keep growing", []domain.Ticket{{IssueID: "ISS1042"}}, "ISS1043"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextIssueID(tc.tickets))
		})
	}
}

func TestGetTicket(t *testing.T) {
	store := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "My vpn is not working today"},
	}}
	intake := newTestIntake(store, nil)

	ticket, err := intake.GetTicket(context.Background(), "ISS001")
	require.NoError(t, err)
	assert.Equal(t, "ISS001", ticket.IssueID)

	_, err = intake.GetTicket(context.Background(), "ISS999")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
