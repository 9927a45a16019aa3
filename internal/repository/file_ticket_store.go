package repository

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// Legacy flat-file layout: one ticket per line, eleven pipe-delimited fields
// in fixed order. Lines shorter than eleven fields default the tail (status
// falls back to "open", everything else to empty).
const (
	ticketFieldCount = 11
	fieldSeparator   = " | "
	timeLayout       = "2006-01-02 15:04:05"
)

// FileTicketStore persists tickets in a pipe-delimited text file. Full saves
// go through an atomic rename; appends use O_APPEND so a concurrent in-process
// intake never truncates the file mid-sweep.
type FileTicketStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTicketStore creates a store backed by the given file path.
func NewFileTicketStore(path string) *FileTicketStore {
	return &FileTicketStore{path: path}
}

// LoadTickets reads all tickets in file order. A missing file is an empty set.
func (s *FileTicketStore) LoadTickets(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileTicketStore) loadLocked() ([]domain.Ticket, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tickets []domain.Ticket
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tickets = append(tickets, parseTicketLine(line))
	}
	return tickets, nil
}

// SaveTickets overwrites the whole ticket set.
func (s *FileTicketStore) SaveTickets(ctx context.Context, tickets []domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	for _, t := range tickets {
		buf.WriteString(serializeTicket(t))
		buf.WriteByte('\n')
	}
	return atomic.WriteFile(s.path, &buf)
}

// AppendTicket adds a single ticket line without rewriting the file.
func (s *FileTicketStore) AppendTicket(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(serializeTicket(*ticket) + "\n"); err != nil {
		return err
	}
	return f.Sync()
}

func parseTicketLine(line string) domain.Ticket {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < ticketFieldCount {
		parts = append(parts, "")
	}

	// Hand-edited legacy lines carry mixed-case statuses; the lifecycle
	// enumeration is lowercase.
	status := strings.ToLower(parts[6])
	if status == "" {
		status = string(domain.TicketStatusOpen)
	}

	return domain.Ticket{
		IssueID:          parts[0],
		EmployeeID:       parts[1],
		Description:      parts[2],
		Category:         domain.Category(parts[3]),
		Subcategory:      parts[4],
		Priority:         domain.TicketPriority(parts[5]),
		Status:           domain.TicketStatus(status),
		AssignedExpertID: parts[7],
		AISolution:       parts[8],
		CreatedAt:        parseTime(parts[9]),
		UpdatedAt:        parseTime(parts[10]),
	}
}

func serializeTicket(t domain.Ticket) string {
	status := t.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	fields := []string{
		sanitizeField(t.IssueID),
		sanitizeField(t.EmployeeID),
		sanitizeField(t.Description),
		string(t.Category),
		t.Subcategory,
		string(t.Priority),
		string(status),
		sanitizeField(t.AssignedExpertID),
		sanitizeField(t.AISolution),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	}
	return strings.Join(fields, fieldSeparator)
}

// sanitizeField keeps free text from breaking the delimited layout.
func sanitizeField(v string) string {
	v = strings.ReplaceAll(v, "|", "/")
	return strings.ReplaceAll(v, "\n", " ")
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(timeLayout, v, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
