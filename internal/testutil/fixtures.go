package testutil

import (
	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// SamplePlayer returns a fully populated row for the player and season.
func SamplePlayer(first, last, team string, season int) players.Row {
	return players.Row{
		FirstName:        players.String(first),
		LastName:         players.String(last),
		AdjustedLastName: players.String(last),
		Team:             players.String(team),
		Season:           players.Int(season),
		Position:         players.String("G"),
		Nationality:      players.String("USA"),
		Birthdate:        players.String("1990-01-01"),
		Height:           players.Float(190.5),
		Weight:           players.Float(88),
	}
}

// SampleDataset returns a small dataset spanning two teams and two seasons.
func SampleDataset() players.Dataset {
	return players.Dataset{
		SamplePlayer("LeBron", "James", "Los Angeles Lakers", 2023),
		SamplePlayer("Anthony", "Davis", "Los Angeles Lakers", 2023),
		SamplePlayer("Stephen", "Curry", "Golden State Warriors", 2023),
		SamplePlayer("LeBron", "James", "Los Angeles Lakers", 2022),
		SamplePlayer("Klay", "Thompson", "Golden State Warriors", 2022),
	}
}
