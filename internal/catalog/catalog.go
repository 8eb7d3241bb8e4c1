// Package catalog holds the static reference data the portal filters: welfare
// schemes, budget provisions, green investments and educational resources.
//
// The data ships embedded as YAML and is loaded once at startup. A loaded
// Catalog is never mutated and may be shared freely between goroutines.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aarthiksaathi/aarthik-be/internal/eligibility"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrDuplicateID is returned when two entries of one catalog share an id.
var ErrDuplicateID = errors.New("catalog: duplicate id")

// Impact describes how a budget provision affects the people it applies to.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// Scheme is a government welfare scheme.
type Scheme struct {
	ID                 string                 `json:"id" yaml:"id"`
	Name               string                 `json:"name" yaml:"name"`
	Ministry           string                 `json:"ministry" yaml:"ministry"`
	Description        string                 `json:"description" yaml:"description"`
	Eligibility        eligibility.Descriptor `json:"eligibility" yaml:"eligibility"`
	Benefits           string                 `json:"benefits" yaml:"benefits"`
	ApplicationProcess string                 `json:"application_process" yaml:"application_process"`
	RequiredDocuments  []string               `json:"required_documents" yaml:"required_documents"`
	Website            string                 `json:"website" yaml:"website"`
}

// Provision is one line item of the Union Budget.
type Provision struct {
	ID           string                 `json:"id" yaml:"id"`
	Title        string                 `json:"title" yaml:"title"`
	Sector       string                 `json:"sector" yaml:"sector"`
	Description  string                 `json:"description" yaml:"description"`
	Impact       Impact                 `json:"impact" yaml:"impact"`
	ApplicableTo eligibility.Descriptor `json:"applicable_to" yaml:"applicable_to"`
}

// Sustainability summarises an investment's environmental case.
type Sustainability struct {
	EnvironmentalImpact string   `json:"environmental_impact" yaml:"environmental_impact"`
	SDGGoals            []string `json:"sdg_goals" yaml:"sdg_goals"`
}

// Investment is a green investment product. Investments are informational and
// never filtered by profile.
type Investment struct {
	ID                string         `json:"id" yaml:"id"`
	Name              string         `json:"name" yaml:"name"`
	Type              string         `json:"type" yaml:"type"`
	Description       string         `json:"description" yaml:"description"`
	ExpectedReturns   string         `json:"expected_returns" yaml:"expected_returns"`
	MinimumInvestment int64          `json:"minimum_investment" yaml:"minimum_investment"`
	RiskLevel         string         `json:"risk_level" yaml:"risk_level"`
	Sustainability    Sustainability `json:"sustainability" yaml:"sustainability"`
	InvestmentPeriod  string         `json:"investment_period" yaml:"investment_period"`
	SectorFocus       []string       `json:"sector_focus" yaml:"sector_focus"`
}

// Resource is an article, video or other learning material.
type Resource struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Type          string   `json:"type" yaml:"type"`
	Category      string   `json:"category" yaml:"category"`
	Source        string   `json:"source" yaml:"source"`
	URL           string   `json:"url" yaml:"url"`
	Description   string   `json:"description" yaml:"description"`
	PublishedDate string   `json:"published_date" yaml:"published_date"`
	ReadTime      string   `json:"read_time,omitempty" yaml:"read_time"`
	Duration      string   `json:"duration,omitempty" yaml:"duration"`
	Tags          []string `json:"tags" yaml:"tags"`
}

// Catalog is the full set of reference data.
type Catalog struct {
	Schemes     []Scheme
	Provisions  []Provision
	Investments []Investment
	Resources   []Resource
}

// Default loads the catalog compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded data: %w", err)
	}
	return Load(sub)
}

// Open loads the catalog from dir, or the embedded catalog when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return Load(os.DirFS(dir))
}

// Load reads schemes.yaml, provisions.yaml, investments.yaml and
// resources.yaml from fsys. Every file must be present.
func Load(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	var err error
	if c.Schemes, err = loadFile(fsys, "schemes.yaml", "schemes", func(s Scheme) string { return s.ID }); err != nil {
		return nil, err
	}
	if c.Provisions, err = loadFile(fsys, "provisions.yaml", "provisions", func(p Provision) string { return p.ID }); err != nil {
		return nil, err
	}
	if c.Investments, err = loadFile(fsys, "investments.yaml", "investments", func(i Investment) string { return i.ID }); err != nil {
		return nil, err
	}
	if c.Resources, err = loadFile(fsys, "resources.yaml", "resources", func(r Resource) string { return r.ID }); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadFile[T any](fsys fs.FS, name, key string, id func(T) string) ([]T, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	var doc map[string][]T
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	items := doc[key]
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		k := id(item)
		if k == "" {
			return nil, fmt.Errorf("catalog: %s entry %d has no id", name, i)
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateID, k, name)
		}
		seen[k] = struct{}{}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Scheme returns the scheme with the given id.
func (c *Catalog) Scheme(id string) (Scheme, bool) {
	for _, s := range c.Schemes {
		if s.ID == id {
			return s, true
		}
	}
	return Scheme{}, false
}
