package query

import (
	"math"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// FlatRecord is an ungrouped row ready for JSON encoding. Nil fields encode as null.
type FlatRecord struct {
	FirstName         *string  `json:"FirstName"`
	LastName          *string  `json:"LastName"`
	AdjustedFirstName *string  `json:"AdjustedFirstName"`
	AdjustedLastName  *string  `json:"AdjustedLastName"`
	Team              *string  `json:"Team"`
	Season            *int     `json:"Season"`
	Position          *string  `json:"Position"`
	Height            *float64 `json:"Height"`
	Weight            *float64 `json:"Weight"`
	Nationality       *string  `json:"Nationality"`
	Birthdate         *string  `json:"Birthdate"`
}

// SanitizeFloat maps absent and non-finite values to nil so they encode as null.
func SanitizeFloat(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// FlatRecordFromRow converts a row into its JSON-safe form.
func FlatRecordFromRow(r players.Row) FlatRecord {
	return FlatRecord{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		AdjustedFirstName: r.AdjustedFirstName,
		AdjustedLastName:  r.AdjustedLastName,
		Team:              r.Team,
		Season:            r.Season,
		Position:          r.Position,
		Height:            SanitizeFloat(r.Height),
		Weight:            SanitizeFloat(r.Weight),
		Nationality:       r.Nationality,
		Birthdate:         r.Birthdate,
	}
}

func flatRecords(rows players.Dataset) []FlatRecord {
	out := make([]FlatRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, FlatRecordFromRow(r))
	}
	return out
}
