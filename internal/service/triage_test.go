package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
	"github.com/spec-kit/helpdesk-triage/internal/events"
	apperrors "github.com/spec-kit/helpdesk-triage/pkg/util"
)

type fakeSweepLocker struct {
	held     bool
	err      error
	acquires int
	releases int
}

func (f *fakeSweepLocker) Acquire(ctx context.Context) (bool, error) {
	f.acquires++
	if f.err != nil {
		return false, f.err
	}
	return !f.held, nil
}

func (f *fakeSweepLocker) Release(ctx context.Context) {
	f.releases++
}

func newTestTriage(tickets *fakeTicketStore, experts *fakeExpertStore, locker SweepLocker, dispatcher events.Dispatcher) *TriageService {
	roster := NewExpertRoster(experts)
	return NewTriageService(TriageDependencies{
		TicketStore: tickets,
		Router:      NewRouterService(roster, experts, zap.NewNop()),
		Dispatcher:  dispatcher,
		Locker:      locker,
		Logger:      zap.NewNop(),
	})
}

func TestSweepResolvesRoutesAndSkips(t *testing.T) {
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "My VPN keeps disconnecting every 10 minutes", Priority: domain.TicketPriorityMedium, Status: domain.TicketStatusOpen},
		{IssueID: "ISS002", Description: "urgent: laptop won't boot", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen},
		{IssueID: "ISS003", Description: "Old resolved issue", Status: domain.TicketStatusClosed},
	}}
	experts := &fakeExpertStore{experts: testExperts()}
	triage := newTestTriage(tickets, experts, nil, nil)

	counts, err := triage.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepCounts{ClosedByAI: 1, Assigned: 1, Skipped: 1}, counts)

	require.Len(t, tickets.saved, 1)
	saved := tickets.saved[0]

	// The vpn ticket was classified and closed with the network remedy.
	assert.Equal(t, domain.TicketStatusClosed, saved[0].Status)
	assert.Equal(t, domain.CategoryNetwork, saved[0].Category)
	assert.Equal(t, domain.SubcategoryVPN, saved[0].Subcategory)
	assert.Equal(t, RemedyNetwork, saved[0].AISolution)

	// The high-priority hardware ticket skipped the resolver and went to the
	// hardware expert, whose load was committed once.
	assert.Equal(t, domain.TicketStatusAssigned, saved[1].Status)
	assert.Equal(t, domain.CategoryHardware, saved[1].Category)
	assert.Equal(t, domain.SubcategoryDevice, saved[1].Subcategory)
	assert.Equal(t, "T001", saved[1].AssignedExpertID)
	assert.Empty(t, saved[1].AISolution)
	assert.Equal(t, []string{"T001"}, experts.increments)

	// The closed ticket was left untouched.
	assert.Equal(t, domain.TicketStatusClosed, saved[2].Status)
	assert.Empty(t, saved[2].AssignedExpertID)
}

func TestSweepQueuesWhenNobodyAvailable(t *testing.T) {
	roster := testExperts()
	for i := range roster {
		roster[i].Availability = false
	}
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "urgent: laptop won't boot", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen},
	}}
	experts := &fakeExpertStore{experts: roster}
	triage := newTestTriage(tickets, experts, nil, nil)

	counts, err := triage.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepCounts{Assigned: 1}, counts)
	require.Len(t, tickets.saved, 1)
	assert.Equal(t, domain.TicketStatusQueued, tickets.saved[0][0].Status)
	assert.Empty(t, tickets.saved[0][0].AssignedExpertID)
}

// Running the sweep twice must not re-touch tickets the first pass settled.
func TestSweepIsIdempotentOverSettledTickets(t *testing.T) {
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "My VPN keeps disconnecting", Priority: domain.TicketPriorityMedium, Status: domain.TicketStatusOpen},
		{IssueID: "ISS002", Description: "urgent: laptop won't boot", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen},
	}}
	experts := &fakeExpertStore{experts: testExperts()}
	triage := newTestTriage(tickets, experts, nil, nil)

	first, err := triage.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepCounts{ClosedByAI: 1, Assigned: 1}, first)

	second, err := triage.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepCounts{Skipped: 2}, second)

	// No second load increment for the already-assigned ticket.
	assert.Equal(t, []string{"T001"}, experts.increments)
}

func TestSweepSaveFailure(t *testing.T) {
	tickets := &fakeTicketStore{
		tickets: []domain.Ticket{
			{IssueID: "ISS001", Description: "My VPN keeps disconnecting", Status: domain.TicketStatusOpen},
		},
		saveErr: errors.New("disk full"),
	}
	experts := &fakeExpertStore{experts: testExperts()}
	triage := newTestTriage(tickets, experts, nil, nil)

	_, err := triage.Sweep(context.Background())
	require.Error(t, err)
}

func TestSweepLockContention(t *testing.T) {
	tickets := &fakeTicketStore{}
	experts := &fakeExpertStore{}
	locker := &fakeSweepLocker{held: true}
	triage := newTestTriage(tickets, experts, locker, nil)

	_, err := triage.Sweep(context.Background())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Zero(t, locker.releases)
}

func TestSweepLockOutageProceedsUnlocked(t *testing.T) {
	tickets := &fakeTicketStore{}
	experts := &fakeExpertStore{}
	locker := &fakeSweepLocker{err: errors.New("redis down")}
	triage := newTestTriage(tickets, experts, locker, nil)

	counts, err := triage.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepCounts{}, counts)
	assert.Zero(t, locker.releases)
}

func TestSweepReleasesLock(t *testing.T) {
	tickets := &fakeTicketStore{}
	experts := &fakeExpertStore{}
	locker := &fakeSweepLocker{}
	triage := newTestTriage(tickets, experts, locker, nil)

	_, err := triage.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, locker.acquires)
	assert.Equal(t, 1, locker.releases)
}

func TestSweepPublishesCompletionEvent(t *testing.T) {
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "My VPN keeps disconnecting", Status: domain.TicketStatusOpen},
	}}
	experts := &fakeExpertStore{experts: testExperts()}
	dispatcher := events.NewInMemoryDispatcher()

	var completed []events.SweepCompletedPayload
	dispatcher.Subscribe(events.EventSweepCompleted, func(ctx context.Context, e events.Event) error {
		if payload, ok := e.Payload.(events.SweepCompletedPayload); ok {
			completed = append(completed, payload)
		}
		return nil
	})

	triage := newTestTriage(tickets, experts, nil, dispatcher)
	_, err := triage.Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, completed, 1)
	assert.Equal(t, events.SweepCompletedPayload{ClosedByAI: 1}, completed[0])
}

func TestSolveTicket(t *testing.T) {
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "The keyboard stopped responding", Category: domain.CategoryHardware, Priority: domain.TicketPriorityMedium, Status: domain.TicketStatusOpen},
		{IssueID: "ISS002", Description: "urgent: laptop won't boot", Category: domain.CategoryHardware, Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen},
	}}
	triage := newTestTriage(tickets, &fakeExpertStore{}, nil, nil)

	ticket, resolved, err := triage.SolveTicket(context.Background(), "ISS001")
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
	assert.Equal(t, RemedyHardware, ticket.AISolution)

	// High priority: the advisory text is recorded but the ticket stays open.
	ticket, resolved, err = triage.SolveTicket(context.Background(), "ISS002")
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, AdviceHumanReview, ticket.AISolution)

	_, _, err = triage.SolveTicket(context.Background(), "ISS999")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestAssignTicket(t *testing.T) {
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "Office wifi is unusable on the third floor", Status: domain.TicketStatusOpen},
	}}
	experts := &fakeExpertStore{experts: testExperts()}
	triage := newTestTriage(tickets, experts, nil, nil)

	ticket, expert, err := triage.AssignTicket(context.Background(), "ISS001")
	require.NoError(t, err)
	require.NotNil(t, expert)

	assert.Equal(t, domain.CategoryNetwork, ticket.Category)
	assert.Equal(t, domain.SubcategoryWifi, ticket.Subcategory)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
	assert.Equal(t, expert.ID, ticket.AssignedExpertID)
}

func TestAssignTicketNoExpertAvailable(t *testing.T) {
	roster := testExperts()
	for i := range roster {
		roster[i].Availability = false
	}
	tickets := &fakeTicketStore{tickets: []domain.Ticket{
		{IssueID: "ISS001", Description: "Office wifi is unusable", Status: domain.TicketStatusOpen},
	}}
	triage := newTestTriage(tickets, &fakeExpertStore{experts: roster}, nil, nil)

	_, _, err := triage.AssignTicket(context.Background(), "ISS001")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Empty(t, tickets.saved)
}
