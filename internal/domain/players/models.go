package players

// Column names as published in the upstream feed header.
const (
	ColFirstName         = "FirstName"
	ColLastName          = "LastName"
	ColAdjustedFirstName = "AdjustedFirstName"
	ColAdjustedLastName  = "AdjustedLastName"
	ColTeam              = "Team"
	ColSeason            = "Season"
	ColPosition          = "Position"
	ColHeight            = "Height"
	ColWeight            = "Weight"
	ColNationality       = "Nationality"
	ColBirthdate         = "Birthdate"
)

// Columns lists the feed columns in their canonical order.
var Columns = []string{
	ColFirstName,
	ColLastName,
	ColAdjustedFirstName,
	ColAdjustedLastName,
	ColTeam,
	ColSeason,
	ColPosition,
	ColHeight,
	ColWeight,
	ColNationality,
	ColBirthdate,
}

// Row is one player-season record. A nil field means the feed had no value for it.
type Row struct {
	FirstName         *string
	LastName          *string
	AdjustedFirstName *string
	AdjustedLastName  *string
	Team              *string
	Season            *int
	Position          *string
	Height            *float64
	Weight            *float64
	Nationality       *string
	Birthdate         *string
}

// Dataset is an ordered snapshot of rows fetched for a single request.
type Dataset []Row

// Len reports the number of rows.
func (d Dataset) Len() int {
	return len(d)
}

// String returns a pointer to v, for building rows in code.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
