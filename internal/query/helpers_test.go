package query

import (
	"fmt"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

func row(first, last, team string, season int, position string) players.Row {
	return players.Row{
		FirstName:         players.String(first),
		LastName:          players.String(last),
		AdjustedFirstName: players.String(first),
		AdjustedLastName:  players.String(last),
		Team:              players.String(team),
		Season:            players.Int(season),
		Position:          players.String(position),
		Height:            players.Float(200),
		Weight:            players.Float(100),
		Nationality:       players.String("USA"),
		Birthdate:         players.String("1990-01-01"),
	}
}

func numberedRows(n int) players.Dataset {
	ds := make(players.Dataset, 0, n)
	for i := 0; i < n; i++ {
		ds = append(ds, row(fmt.Sprintf("First%d", i), fmt.Sprintf("Last%d", i), "Team", 2000+i%5, "G"))
	}
	return ds
}

func sampleDataset() players.Dataset {
	return players.Dataset{
		row("LeBron", "James", "Los Angeles Lakers", 2023, "F"),
		row("Anthony", "Davis", "Los Angeles Lakers", 2023, "C"),
		row("Stephen", "Curry", "Golden State Warriors", 2023, "G"),
		row("LeBron", "James", "Los Angeles Lakers", 2022, "F"),
		row("Stephen", "Curry", "Golden State Warriors", 2022, "G"),
	}
}
