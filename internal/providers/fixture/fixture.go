package fixture

import (
	"context"
	"math"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// ProviderName labels logs and metrics for the fixture source.
const ProviderName = "fixture"

// Provider returns a static dataset useful for local testing and bootstrapping.
type Provider struct {
	rows players.Dataset
}

// New creates a fixture provider seeded with the sample dataset.
func New() *Provider {
	return &Provider{rows: Sample()}
}

// NewWithDataset creates a fixture provider that serves ds.
func NewWithDataset(ds players.Dataset) *Provider {
	return &Provider{rows: ds}
}

// FetchDataset returns a fresh copy of the fixture rows on every call.
func (p *Provider) FetchDataset(ctx context.Context) (players.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(players.Dataset, len(p.rows))
	copy(out, p.rows)
	return out, nil
}

type sampleRow struct {
	first, last, team string
	season            int
	position          string
	height, weight    float64
	nationality       string
	birthdate         string
}

var sampleRows = []sampleRow{
	{"LeBron", "James", "Los Angeles Lakers", 2023, "F", 206, 113.4, "USA", "1984-12-30"},
	{"Anthony", "Davis", "Los Angeles Lakers", 2023, "F-C", 208, 114.8, "USA", "1993-03-11"},
	{"Stephen", "Curry", "Golden State Warriors", 2023, "G", 188, 83.9, "USA", "1988-03-14"},
	{"Nikola", "Jokić", "Denver Nuggets", 2023, "C", 211, 129.3, "Serbia", "1995-02-19"},
	{"Luka", "Dončić", "Dallas Mavericks", 2023, "G-F", 201, 104.3, "Slovenia", "1999-02-28"},
	{"Giannis", "Antetokounmpo", "Milwaukee Bucks", 2023, "F", 211, 110.2, "Greece", "1994-12-06"},
	{"Jayson", "Tatum", "Boston Celtics", 2023, "F-G", 203, 95.3, "USA", "1998-03-03"},
	{"LeBron", "James", "Los Angeles Lakers", 2022, "F", 206, 113.4, "USA", "1984-12-30"},
	{"Stephen", "Curry", "Golden State Warriors", 2022, "G", 188, 83.9, "USA", "1988-03-14"},
	{"Nikola", "Jokić", "Denver Nuggets", 2022, "C", 211, 129.3, "Serbia", "1995-02-19"},
	{"Kevin", "Durant", "Phoenix Suns", 2022, "F", 208, 108.9, "USA", "1988-09-29"},
	{"Kevin", "Durant", "Brooklyn Nets", 2021, "F", 208, 108.9, "USA", "1988-09-29"},
}

// Sample returns the fixture dataset. Two rows exercise missing data: an unknown
// height and a player without a team.
func Sample() players.Dataset {
	ds := make(players.Dataset, 0, len(sampleRows)+2)
	for _, s := range sampleRows {
		ds = append(ds, s.row())
	}

	unmeasured := sampleRow{"Victor", "Wembanyama", "San Antonio Spurs", 2023, "C", 0, 95.3, "France", "2004-01-04"}.row()
	unmeasured.Height = players.Float(math.NaN())
	ds = append(ds, unmeasured)

	freeAgent := sampleRow{"Dwight", "Howard", "", 2023, "C", 208, 120.2, "USA", "1985-12-08"}.row()
	freeAgent.Team = nil
	ds = append(ds, freeAgent)
	return ds
}

func (s sampleRow) row() players.Row {
	return players.Row{
		FirstName:         players.String(s.first),
		LastName:          players.String(s.last),
		AdjustedFirstName: players.String(adjust(s.first)),
		AdjustedLastName:  players.String(adjust(s.last)),
		Team:              players.String(s.team),
		Season:            players.Int(s.season),
		Position:          players.String(s.position),
		Height:            players.Float(s.height),
		Weight:            players.Float(s.weight),
		Nationality:       players.String(s.nationality),
		Birthdate:         players.String(s.birthdate),
	}
}

// adjust mirrors the upstream "Adjusted" columns, which strip diacritics.
func adjust(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, name)
	if err != nil {
		return name
	}
	return out
}
