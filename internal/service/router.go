package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-triage/internal/domain"
	"github.com/spec-kit/helpdesk-triage/internal/repository"
)

// RouterService selects an expert for a classified ticket and commits the
// load increment.
type RouterService struct {
	roster *ExpertRoster
	store  repository.ExpertStore
	logger *zap.Logger
}

// NewRouterService creates the service.
func NewRouterService(roster *ExpertRoster, store repository.ExpertStore, logger *zap.Logger) *RouterService {
	return &RouterService{roster: roster, store: store, logger: logger}
}

// ChooseExpert picks the least-loaded available expert whose expertise covers
// the category or subcategory, falling back to any available expert when no
// expertise matches (assignment always succeeds if anyone is available). It
// returns nil when nobody is available.
//
// The winner's load counter is committed best-effort: a store failure is
// logged and swallowed so a transient outage never blocks routing, at the cost
// of counter accuracy.
func (s *RouterService) ChooseExpert(ctx context.Context, category domain.Category, subcategory string) (*domain.Expert, error) {
	experts, err := s.roster.Experts(ctx)
	if err != nil {
		return nil, err
	}

	chosen := pickExpert(string(category), subcategory, experts)
	if chosen == nil {
		return nil, nil
	}

	if err := s.store.IncrementLoad(ctx, chosen.ID); err != nil {
		s.logger.Warn("expert load increment failed",
			zap.String("expert_id", chosen.ID),
			zap.Error(err))
	}
	s.roster.NoteAssignment(chosen.ID)

	return chosen, nil
}

// pickExpert filters to available experts, prefers expertise matches, and
// selects the minimum current load with a stable tie-break on roster order.
func pickExpert(category, subcategory string, experts []domain.Expert) *domain.Expert {
	category = strings.ToLower(category)
	subcategory = strings.ToLower(subcategory)

	var available []domain.Expert
	for _, e := range experts {
		if e.Availability {
			available = append(available, e)
		}
	}
	if len(available) == 0 {
		return nil
	}

	var matched []domain.Expert
	for _, e := range available {
		if expertiseMatches(e, category, subcategory) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		matched = available
	}

	best := matched[0]
	for _, e := range matched[1:] {
		if e.CurrentLoad < best.CurrentLoad {
			best = e
		}
	}
	return &best
}

func expertiseMatches(e domain.Expert, category, subcategory string) bool {
	for _, tag := range e.Expertise {
		tag = strings.ToLower(tag)
		if tag == category || (subcategory != "" && tag == subcategory) {
			return true
		}
	}
	return false
}
