package service

import (
	"context"
	"sync"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// ExpertRoster is a read-through cache over the expert store. It loads on
// first use and again after Invalidate, and is handed to the router by
// reference rather than living as ambient process state.
type ExpertRoster struct {
	store expertLoader

	mu      sync.Mutex
	loaded  bool
	experts []domain.Expert
}

type expertLoader interface {
	LoadExperts(ctx context.Context) ([]domain.Expert, error)
}

// NewExpertRoster creates the accessor.
func NewExpertRoster(store expertLoader) *ExpertRoster {
	return &ExpertRoster{store: store}
}

// Experts returns a snapshot copy of the cached roster, loading it from the
// store when the cache is cold.
func (r *ExpertRoster) Experts(ctx context.Context) ([]domain.Expert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		experts, err := r.store.LoadExperts(ctx)
		if err != nil {
			return nil, err
		}
		r.experts = experts
		r.loaded = true
	}

	snapshot := make([]domain.Expert, len(r.experts))
	copy(snapshot, r.experts)
	return snapshot, nil
}

// NoteAssignment bumps the cached load counter so back-to-back routing
// decisions within one roster generation balance across experts instead of
// repeatedly observing the same stale minimum.
func (r *ExpertRoster) NoteAssignment(expertID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.experts {
		if r.experts[i].ID == expertID {
			r.experts[i].CurrentLoad++
			return
		}
	}
}

// Invalidate drops the cache; the next Experts call reloads from the store.
func (r *ExpertRoster) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.experts = nil
}
