package query

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// FilterSpec holds the optional per-column predicates of a query. Nil means "not filtered".
// String fields match by case-insensitive substring; Season, Height and Weight match exactly.
type FilterSpec struct {
	Team        *string
	Season      *int
	Position    *string
	Nationality *string
	FirstName   *string
	LastName    *string
	Birthdate   *string
	Height      *float64
	Weight      *float64
}

// IsZero reports whether no predicate is set.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// GroupMode selects how filtered rows are collapsed before pagination.
type GroupMode string

const (
	GroupNone   GroupMode = ""
	GroupPlayer GroupMode = "player"
	GroupTeam   GroupMode = "team"
	GroupSeason GroupMode = "season"
)

// ParseGroupMode resolves a raw group_by selector. Unknown selectors resolve to
// GroupNone with ok=false so callers can surface a diagnostic.
func ParseGroupMode(raw string) (GroupMode, bool) {
	switch mode := GroupMode(strings.TrimSpace(raw)); mode {
	case GroupNone, GroupPlayer, GroupTeam, GroupSeason:
		return mode, true
	default:
		return GroupNone, false
	}
}

// GroupSpec carries the raw group selector and whether stats are attached.
type GroupSpec struct {
	By           string
	IncludeStats bool
}

// PageSpec selects one page of output.
type PageSpec struct {
	Page  int
	Limit int
}

// DefaultPageSpec returns page 1 with the default limit.
func DefaultPageSpec() PageSpec {
	return PageSpec{Page: DefaultPage, Limit: DefaultLimit}
}

// Validate checks the bounds accepted at the request boundary.
func (p PageSpec) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxLimit, p.Limit)
	}
	return nil
}

func (p PageSpec) normalized() PageSpec {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
