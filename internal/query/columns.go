package query

import "github.com/preston-bernstein/player-records-service/internal/domain/players"

// column reads one typed field of a row as a comparable value.
// ok is false when the field is absent or not representable in JSON.
type column func(players.Row) (v any, ok bool)

func stringColumn(field func(players.Row) *string) column {
	return func(r players.Row) (any, bool) {
		v := field(r)
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

func floatColumn(field func(players.Row) *float64) column {
	return func(r players.Row) (any, bool) {
		v := SanitizeFloat(field(r))
		if v == nil {
			return nil, false
		}
		return *v, true
	}
}

var (
	colFirstName         = stringColumn(func(r players.Row) *string { return r.FirstName })
	colLastName          = stringColumn(func(r players.Row) *string { return r.LastName })
	colAdjustedFirstName = stringColumn(func(r players.Row) *string { return r.AdjustedFirstName })
	colAdjustedLastName  = stringColumn(func(r players.Row) *string { return r.AdjustedLastName })
	colTeam              = stringColumn(func(r players.Row) *string { return r.Team })
	colPosition          = stringColumn(func(r players.Row) *string { return r.Position })
	colNationality       = stringColumn(func(r players.Row) *string { return r.Nationality })
	colBirthdate         = stringColumn(func(r players.Row) *string { return r.Birthdate })
	colHeight            = floatColumn(func(r players.Row) *float64 { return r.Height })
	colWeight            = floatColumn(func(r players.Row) *float64 { return r.Weight })

	colSeason column = func(r players.Row) (any, bool) {
		if r.Season == nil {
			return nil, false
		}
		return *r.Season, true
	}
)

// cell is a column value tagged with presence so absent values can take part in map keys.
type cell struct {
	value   any
	present bool
}

func read(c column, r players.Row) cell {
	v, ok := c(r)
	return cell{value: v, present: ok}
}

func (c cell) jsonValue() any {
	if !c.present {
		return nil
	}
	return c.value
}
