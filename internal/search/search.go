// Package search narrows a catalog by profile relevance, free text and facets.
//
// Filter applies up to three predicates and ANDs them: profile applicability
// (only in the relevant view), a case-insensitive text match and exact facet
// matches. Order is preserved and there is no hidden state, so filtering is
// idempotent.
package search

import (
	"slices"
	"strings"

	"github.com/aarthiksaathi/aarthik-be/internal/eligibility"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// View selects between every entry and only the entries relevant to a profile.
type View string

const (
	ViewAll      View = "all"
	ViewRelevant View = "relevant"
)

// Any is the facet value that disables a facet. An empty value does too.
const Any = "all"

// Query is what a user typed or picked in a list screen.
type Query struct {
	Text   string
	Facets map[string]string
	View   View
}

// Spec describes how to search one kind of catalog entry.
type Spec[T any] struct {
	// Text returns the fields free text is matched against.
	Text func(T) []string
	// Facets maps a facet name to the entry's value or values for it.
	// Multi-valued facets match when any value equals the selection.
	Facets map[string]func(T) []string
	// Applicability is nil for catalogs that are never filtered by profile.
	Applicability func(T) eligibility.Descriptor
}

// Result is the outcome of Filter. NeedsProfile is set when the relevant view
// was requested without a profile; Items is then empty.
type Result[T any] struct {
	Items        []T
	NeedsProfile bool
}

// IsAny reports whether a facet selection leaves the facet unrestricted.
func IsAny(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, Any)
}

// Filter returns the entries of items that satisfy q, in their original order.
// A nil profile means no profile has been loaded.
func Filter[T any](items []T, spec Spec[T], profile *models.Profile, q Query) Result[T] {
	relevant := q.View == ViewRelevant && spec.Applicability != nil
	if relevant && profile == nil {
		return Result[T]{Items: []T{}, NeedsProfile: true}
	}

	// Blank text disables the text filter; otherwise the text is matched as typed.
	text := strings.ToLower(q.Text)
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if relevant && !eligibility.IsEligible(*profile, spec.Applicability(item)) {
			continue
		}
		if text != "" && !matchText(spec, item, text) {
			continue
		}
		if !matchFacets(spec, item, q.Facets) {
			continue
		}
		out = append(out, item)
	}
	return Result[T]{Items: out}
}

// Values lists the distinct values of facet across items in first-seen order.
// It returns nil for a facet spec does not define.
func Values[T any](items []T, spec Spec[T], facet string) []string {
	get, ok := spec.Facets[facet]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	values := []string{}
	for _, item := range items {
		for _, v := range get(item) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	return values
}

func matchText[T any](spec Spec[T], item T, needle string) bool {
	if spec.Text == nil {
		return false
	}
	for _, field := range spec.Text(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchFacets[T any](spec Spec[T], item T, facets map[string]string) bool {
	for name, want := range facets {
		if IsAny(want) {
			continue
		}
		get, ok := spec.Facets[name]
		if !ok {
			return false
		}
		if !slices.Contains(get(item), want) {
			return false
		}
	}
	return true
}
