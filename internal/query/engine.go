package query

import (
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// Result is the output of one engine pass
type Result struct {
	Businesses []*entities.Business
	Total      int
}

// Engine composes Filter and Rank. It holds no state besides its clock and
// is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine that evaluates opening hours against now().
// A nil clock uses time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Now reads the engine clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Run filters then ranks businesses for the given state and visitor location.
func (e *Engine) Run(businesses []*entities.Business, state entities.FilterState, user *entities.UserLocation) Result {
	return e.RunAt(businesses, state, user, e.now())
}

// RunAt is Run with open-now evaluated at a fixed instant, so callers that
// decorate results can use the same instant.
func (e *Engine) RunAt(businesses []*entities.Business, state entities.FilterState, user *entities.UserLocation, now time.Time) Result {
	filtered := Filter(businesses, state, now)
	ranked := Rank(filtered, user)
	return Result{Businesses: ranked, Total: len(ranked)}
}

// NearestTotems orders totems by distance from the visitor. Without a
// location the input order is kept.
func (e *Engine) NearestTotems(totems []*entities.Totem, user *entities.UserLocation) []*entities.Totem {
	out := make([]*entities.Totem, 0, len(totems))
	for _, t := range totems {
		if t != nil {
			out = append(out, t)
		}
	}
	if user == nil {
		return out
	}

	SortByDistance(out, *user, func(t *entities.Totem) entities.Location { return t.Location })
	return out
}
