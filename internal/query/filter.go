// Package query implements the listing query engine: a pure pipeline that
// filters a catalog snapshot by the caller's filter state and ranks the
// survivors by distance from the visitor or featured-first.
package query

import (
	"strings"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/pkg/hours"
	"github.com/zatekoja/goparaty/pkg/textnorm"
)

// Predicate decides whether a business stays in the result set
type Predicate func(b *entities.Business) bool

// CategoryIs matches businesses whose folded category equals the folded
// category. A business without a category never matches.
func CategoryIs(category string) Predicate {
	want := textnorm.Fold(strings.TrimSpace(category))
	return func(b *entities.Business) bool {
		got := textnorm.Fold(strings.TrimSpace(b.Category))
		return got != "" && got == want
	}
}

// OpenAt matches businesses whose opening hours cover now.
func OpenAt(now time.Time) Predicate {
	return func(b *entities.Business) bool {
		return hours.IsOpenNow(b.OpeningHours, now)
	}
}

// TextMatches matches businesses whose name, description or category
// contains the folded query.
func TextMatches(query string) Predicate {
	q := textnorm.Fold(strings.TrimSpace(query))
	return func(b *entities.Business) bool {
		return strings.Contains(textnorm.Fold(b.Name), q) ||
			strings.Contains(textnorm.Fold(b.Description), q) ||
			strings.Contains(textnorm.Fold(b.Category), q)
	}
}

// Predicates builds the ordered predicate chain for a filter state. Stages
// whose trigger is not set are left out.
func Predicates(state entities.FilterState, now time.Time) []Predicate {
	var preds []Predicate

	if category, ok := state.ViewScope.ImplicitCategory(); ok {
		preds = append(preds, CategoryIs(category))
	}
	if state.FiltersByCategory() {
		preds = append(preds, CategoryIs(state.SelectedCategory))
	}
	if state.ShowOpenOnly {
		preds = append(preds, OpenAt(now))
	}
	if strings.TrimSpace(state.SearchQuery) != "" {
		preds = append(preds, TextMatches(state.SearchQuery))
	}

	return preds
}

// Filter returns the businesses that satisfy every predicate of state, in
// input order. The input slice is not modified.
func Filter(businesses []*entities.Business, state entities.FilterState, now time.Time) []*entities.Business {
	return Apply(businesses, Predicates(state, now)...)
}

// Apply keeps the businesses that satisfy all predicates, short-circuiting
// on the first failure.
func Apply(businesses []*entities.Business, preds ...Predicate) []*entities.Business {
	out := make([]*entities.Business, 0, len(businesses))

next:
	for _, b := range businesses {
		if b == nil {
			continue
		}
		for _, p := range preds {
			if !p(b) {
				continue next
			}
		}
		out = append(out, b)
	}

	return out
}
