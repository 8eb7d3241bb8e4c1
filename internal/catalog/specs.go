package catalog

import (
	"github.com/aarthiksaathi/aarthik-be/internal/eligibility"
	"github.com/aarthiksaathi/aarthik-be/internal/search"
)

// Facet names accepted by the list endpoints.
const (
	FacetMinistry = "ministry"
	FacetCategory = "category"
	FacetSector   = "sector"
	FacetImpact   = "impact"
	FacetType     = "type"
	FacetRisk     = "risk"
)

func one(v string) []string { return []string{v} }

// SchemeSpec searches name and description. The category facet matches
// against the social categories a scheme is open to.
var SchemeSpec = search.Spec[Scheme]{
	Text: func(s Scheme) []string { return []string{s.Name, s.Description} },
	Facets: map[string]func(Scheme) []string{
		FacetMinistry: func(s Scheme) []string { return one(s.Ministry) },
		FacetCategory: func(s Scheme) []string { return s.Eligibility.Categories },
	},
	Applicability: func(s Scheme) eligibility.Descriptor { return s.Eligibility },
}

var ProvisionSpec = search.Spec[Provision]{
	Text: func(p Provision) []string { return []string{p.Title, p.Description} },
	Facets: map[string]func(Provision) []string{
		FacetSector: func(p Provision) []string { return one(p.Sector) },
		FacetImpact: func(p Provision) []string { return one(string(p.Impact)) },
	},
	Applicability: func(p Provision) eligibility.Descriptor { return p.ApplicableTo },
}

var InvestmentSpec = search.Spec[Investment]{
	Text: func(i Investment) []string { return []string{i.Name, i.Description} },
	Facets: map[string]func(Investment) []string{
		FacetType:   func(i Investment) []string { return one(i.Type) },
		FacetRisk:   func(i Investment) []string { return one(i.RiskLevel) },
		FacetSector: func(i Investment) []string { return i.SectorFocus },
	},
}

// ResourceSpec also matches free text against tags.
var ResourceSpec = search.Spec[Resource]{
	Text: func(r Resource) []string { return append([]string{r.Title, r.Description}, r.Tags...) },
	Facets: map[string]func(Resource) []string{
		FacetType:     func(r Resource) []string { return one(r.Type) },
		FacetCategory: func(r Resource) []string { return one(r.Category) },
	},
}

// Impacts tallies provisions by impact.
type Impacts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// ImpactCounts counts positive, neutral and negative provisions. Unrecognised
// impacts are not counted.
func ImpactCounts(provisions []Provision) Impacts {
	var c Impacts
	for _, p := range provisions {
		switch p.Impact {
		case ImpactPositive:
			c.Positive++
		case ImpactNeutral:
			c.Neutral++
		case ImpactNegative:
			c.Negative++
		}
	}
	return c
}
