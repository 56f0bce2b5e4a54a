package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

type predicate func(players.Row) bool

// ApplyFilter returns the rows passing every predicate set on f, in their original order.
// With no predicates the dataset is returned as is.
func ApplyFilter(ds players.Dataset, f FilterSpec) players.Dataset {
	preds := f.predicates()
	if len(preds) == 0 {
		return ds
	}

	out := make(players.Dataset, 0, len(ds))
	for _, row := range ds {
		if matchesAll(row, preds) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(row players.Row, preds []predicate) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}

func (f FilterSpec) predicates() []predicate {
	// A Caser keeps state, so each filter pass gets its own.
	lower := cases.Lower(language.Und)
	var preds []predicate

	addContains := func(needle *string, field func(players.Row) *string) {
		if needle != nil {
			preds = append(preds, contains(lower, field, *needle))
		}
	}
	addContains(f.Team, func(r players.Row) *string { return r.Team })
	addContains(f.Position, func(r players.Row) *string { return r.Position })
	addContains(f.Nationality, func(r players.Row) *string { return r.Nationality })
	addContains(f.FirstName, func(r players.Row) *string { return r.FirstName })
	addContains(f.LastName, func(r players.Row) *string { return r.LastName })
	addContains(f.Birthdate, func(r players.Row) *string { return r.Birthdate })

	if f.Season != nil {
		preds = append(preds, equals(*f.Season, func(r players.Row) *int { return r.Season }))
	}
	if f.Height != nil {
		preds = append(preds, equals(*f.Height, func(r players.Row) *float64 { return r.Height }))
	}
	if f.Weight != nil {
		preds = append(preds, equals(*f.Weight, func(r players.Row) *float64 { return r.Weight }))
	}
	return preds
}

func contains(lower cases.Caser, field func(players.Row) *string, needle string) predicate {
	want := lower.String(needle)
	return func(r players.Row) bool {
		v := field(r)
		return v != nil && strings.Contains(lower.String(*v), want)
	}
}

func equals[T int | float64](want T, field func(players.Row) *T) predicate {
	return func(r players.Row) bool {
		v := field(r)
		return v != nil && *v == want
	}
}
