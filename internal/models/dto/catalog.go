package dto

import (
	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/eligibility"
)

// ListResponse is returned by every catalog listing. Facets maps each facet
// name to the values a client may offer for it.
type ListResponse[T any] struct {
	Items        []T                 `json:"items"`
	NeedsProfile bool                `json:"needs_profile"`
	Facets       map[string][]string `json:"facets"`
	ImpactCounts *catalog.Impacts    `json:"impact_counts,omitempty"`
}

// EligibilityResponse explains whether the caller qualifies for one scheme.
type EligibilityResponse struct {
	SchemeID     string                  `json:"scheme_id"`
	NeedsProfile bool                    `json:"needs_profile"`
	Eligible     bool                    `json:"eligible"`
	Failed       []eligibility.Criterion `json:"failed"`
}
