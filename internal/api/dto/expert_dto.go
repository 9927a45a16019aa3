package dto

import (
	"github.com/spec-kit/helpdesk-triage/internal/domain"
)

// ExpertResponse mirrors the expert roster record.
type ExpertResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Contact      string   `json:"contact"`
	Expertise    []string `json:"expertise"`
	Availability bool     `json:"availability"`
	CurrentLoad  int      `json:"current_load"`
}

// ExpertResponsesFrom maps an expert slice.
func ExpertResponsesFrom(experts []domain.Expert) []ExpertResponse {
	result := make([]ExpertResponse, 0, len(experts))
	for _, e := range experts {
		result = append(result, ExpertResponse{
			ID:           e.ID,
			Name:         e.Name,
			Contact:      e.Contact,
			Expertise:    e.Expertise,
			Availability: e.Availability,
			CurrentLoad:  e.CurrentLoad,
		})
	}
	return result
}
