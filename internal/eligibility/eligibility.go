// Package eligibility decides whether a profile satisfies the applicability
// criteria attached to a catalog entry.
//
// Matching is permissive: a criterion is only evaluated when the entry sets it
// and the profile carries a value for it. Unknown profile fields never cause a
// mismatch. All functions are pure and safe for concurrent use.
package eligibility

import (
	"slices"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// AllStates in a States criterion admits every state.
const AllStates = "All States"

// Criterion names one kind of applicability check.
type Criterion string

const (
	CriterionIncome     Criterion = "income"
	CriterionAge        Criterion = "age"
	CriterionCategory   Criterion = "category"
	CriterionOccupation Criterion = "occupation"
	CriterionGender     Criterion = "gender"
	CriterionState      Criterion = "state"
)

// Range is an inclusive integer interval. A nil bound is unbounded.
type Range struct {
	Min *int64 `json:"min,omitempty" yaml:"min"`
	Max *int64 `json:"max" yaml:"max"`
}

// Between builds a range with a lower bound and an optional upper bound.
func Between(lo int64, hi *int64) *Range {
	return &Range{Min: &lo, Max: hi}
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v int64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Descriptor is the set of optional criteria attached to a catalog entry.
// Present criteria are combined with AND; values inside a set criterion are
// combined with OR. A nil set is an absent criterion, while a non-nil empty set
// is present and admits no known value.
type Descriptor struct {
	Income      *Range   `json:"income,omitempty" yaml:"income"`
	Age         *Range   `json:"age,omitempty" yaml:"age"`
	Categories  []string `json:"categories,omitempty" yaml:"categories"`
	Occupations []string `json:"occupations,omitempty" yaml:"occupations"`
	Genders     []string `json:"genders,omitempty" yaml:"genders"`
	States      []string `json:"states,omitempty" yaml:"states"`
}

// IsEmpty reports whether the descriptor sets no criterion at all.
func (d Descriptor) IsEmpty() bool {
	return d.Income == nil && d.Age == nil &&
		d.Categories == nil && d.Occupations == nil && d.Genders == nil && d.States == nil
}

// Evaluate returns every criterion of d that p fails, in a fixed order.
// An empty result means p is eligible.
func Evaluate(p models.Profile, d Descriptor) []Criterion {
	var failed []Criterion
	if !inRange(d.Income, p.Income) {
		failed = append(failed, CriterionIncome)
	}
	var age *int64
	if p.Age != nil {
		v := int64(*p.Age)
		age = &v
	}
	if !inRange(d.Age, age) {
		failed = append(failed, CriterionAge)
	}
	if !memberOf(d.Categories, p.Category) {
		failed = append(failed, CriterionCategory)
	}
	if !memberOf(d.Occupations, p.Occupation) {
		failed = append(failed, CriterionOccupation)
	}
	if !memberOf(d.Genders, p.Gender) {
		failed = append(failed, CriterionGender)
	}
	if !slices.Contains(d.States, AllStates) && !memberOf(d.States, p.State) {
		failed = append(failed, CriterionState)
	}
	return failed
}

// IsEligible reports whether p satisfies every criterion of d.
func IsEligible(p models.Profile, d Descriptor) bool {
	return len(Evaluate(p, d)) == 0
}

// Match is IsEligible for callers that may not have a profile loaded yet.
// A nil profile is eligible for nothing; callers should surface that state
// rather than treat it as an empty result.
func Match(p *models.Profile, d Descriptor) bool {
	if p == nil {
		return false
	}
	return IsEligible(*p, d)
}

func inRange(r *Range, v *int64) bool {
	if r == nil || v == nil {
		return true
	}
	return r.Contains(*v)
}

func memberOf(set []string, v *string) bool {
	if set == nil || v == nil {
		return true
	}
	return slices.Contains(set, *v)
}
