package entities

import "strings"

// Category sentinels understood by FilterState.SelectedCategory
const (
	CategoryAll   = "all"
	CategoryTotem = "totem"
)

// ViewScope is the page context a listing query runs in
type ViewScope int

const (
	ViewHome ViewScope = iota
	ViewExplore
	ViewTotems
	ViewHistory
	ViewAdventure
)

var viewScopeNames = map[ViewScope]string{
	ViewHome:      "home",
	ViewExplore:   "explore",
	ViewTotems:    "totems",
	ViewHistory:   "history",
	ViewAdventure: "adventure",
}

// ParseViewScope maps a view name to its scope. Unknown names map to
// ViewHome, which adds no implicit predicate.
func ParseViewScope(name string) ViewScope {
	name = strings.ToLower(strings.TrimSpace(name))
	for scope, n := range viewScopeNames {
		if n == name {
			return scope
		}
	}
	return ViewHome
}

func (v ViewScope) String() string {
	if n, ok := viewScopeNames[v]; ok {
		return n
	}
	return viewScopeNames[ViewHome]
}

// ImplicitCategory returns the category a scope restricts listings to, if any.
func (v ViewScope) ImplicitCategory() (string, bool) {
	switch v {
	case ViewHistory:
		return "História", true
	case ViewAdventure:
		return "Aventura", true
	default:
		return "", false
	}
}

// FilterState is the caller-owned filter input of a listing query
type FilterState struct {
	SelectedCategory string
	SearchQuery      string
	ShowOpenOnly     bool
	ViewScope        ViewScope
}

// DefaultFilterState returns the state of a freshly opened home page.
func DefaultFilterState() FilterState {
	return FilterState{SelectedCategory: CategoryAll, ViewScope: ViewHome}
}

// FiltersByCategory reports whether SelectedCategory names a concrete
// category rather than one of the sentinels.
func (f FilterState) FiltersByCategory() bool {
	c := strings.TrimSpace(f.SelectedCategory)
	return c != "" && !strings.EqualFold(c, CategoryAll) && !strings.EqualFold(c, CategoryTotem)
}
