package query

import "github.com/preston-bernstein/player-records-service/internal/domain/players"

// FiltersApplied echoes every filter of a query; unset filters encode as null.
type FiltersApplied struct {
	Team        *string  `json:"team"`
	Season      *int     `json:"season"`
	Position    *string  `json:"position"`
	Nationality *string  `json:"nationality"`
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Birthdate   *string  `json:"birthdate"`
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`
	GroupBy     *string  `json:"group_by"`
}

// Stats is attached to a result when the caller asks for it.
type Stats struct {
	TotalRecords   int            `json:"total_records"`
	TotalPages     int            `json:"total_pages"`
	CurrentPage    int            `json:"current_page"`
	RecordsPerPage int            `json:"records_per_page"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
	UniquePlayers  *int           `json:"unique_players,omitempty"`
	UniqueTeams    *int           `json:"unique_teams,omitempty"`
	UniqueSeasons  *int           `json:"unique_seasons,omitempty"`
}

// Report builds stats for a query. filtered is the dataset after filtering and before
// grouping; page describes the (possibly grouped) sequence that was paginated.
// Cardinalities are only reported when the source dataset had rows.
func Report(filtered players.Dataset, sourceRows int, filter FilterSpec, group GroupSpec, page PageInfo) Stats {
	stats := Stats{
		TotalRecords:   page.TotalRecords,
		TotalPages:     page.TotalPages,
		CurrentPage:    page.Page,
		RecordsPerPage: page.Limit,
		FiltersApplied: echoFilters(filter, group),
	}
	if sourceRows == 0 {
		return stats
	}

	uniquePlayers, uniqueTeams, uniqueSeasons := cardinalities(filtered)
	stats.UniquePlayers = &uniquePlayers
	stats.UniqueTeams = &uniqueTeams
	stats.UniqueSeasons = &uniqueSeasons
	return stats
}

func echoFilters(f FilterSpec, g GroupSpec) FiltersApplied {
	echo := FiltersApplied{
		Team:        f.Team,
		Season:      f.Season,
		Position:    f.Position,
		Nationality: f.Nationality,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Birthdate:   f.Birthdate,
		Height:      SanitizeFloat(f.Height),
		Weight:      SanitizeFloat(f.Weight),
	}
	if g.By != "" {
		by := g.By
		echo.GroupBy = &by
	}
	return echo
}

// cardinalities counts distinct (FirstName, LastName) pairs, teams and seasons.
// A pair with a missing name part still counts; missing teams and seasons do not.
func cardinalities(ds players.Dataset) (playerCount, teamCount, seasonCount int) {
	type nameKey struct{ first, last cell }
	names := make(map[nameKey]struct{})
	teams := make(map[string]struct{})
	seasons := make(map[int]struct{})

	for _, r := range ds {
		names[nameKey{read(colFirstName, r), read(colLastName, r)}] = struct{}{}
		if r.Team != nil {
			teams[*r.Team] = struct{}{}
		}
		if r.Season != nil {
			seasons[*r.Season] = struct{}{}
		}
	}
	return len(names), len(teams), len(seasons)
}
