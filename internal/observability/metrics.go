package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	admissionCount  map[string]int64
	categoryCount   map[string]int64
	sweepRuns       int64
	sweepClosedByAI int64
	sweepAssigned   int64
	sweepSkipped    int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		admissionCount: make(map[string]int64),
		categoryCount:  make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAdmission counts admission gate outcomes.
func (m *Metrics) RecordAdmission(outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admissionCount[outcome]++
}

// RecordClassification counts assigned categories.
func (m *Metrics) RecordClassification(category string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryCount[category]++
}

// RecordSweep accumulates batch sweep outcomes.
func (m *Metrics) RecordSweep(closedByAI, assigned, skipped int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepRuns++
	m.sweepClosedByAI += int64(closedByAI)
	m.sweepAssigned += int64(assigned)
	m.sweepSkipped += int64(skipped)
}

// SweepTotals returns cumulative sweep counters.
func (m *Metrics) SweepTotals() (runs, closedByAI, assigned, skipped int64) {
	if m == nil {
		return 0, 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepRuns, m.sweepClosedByAI, m.sweepAssigned, m.sweepSkipped
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
