/* test_helpers.go
 * Contains test helper functions and sample data builders for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"worldcup-predictions/api/shared"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewStore("test_worldcup", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleTeams creates one group's worth of teams for testing.
func CreateSampleTeams() []shared.Team {
	return []shared.Team{
		{ID: 1, Name: "Avalon", FifaCode: "AVA", GroupLetter: "A"},
		{ID: 2, Name: "Borduria", FifaCode: "BOR", GroupLetter: "A"},
		{ID: 3, Name: "Camelot", FifaCode: "CAM", GroupLetter: "A"},
		{ID: 4, Name: "Dorne", FifaCode: "DOR", GroupLetter: "A"},
	}
}

// CreateSampleMatches creates a short schedule for testing: one played group
// match and one scheduled knockout match.
func CreateSampleMatches() []shared.Match {
	one, two := 1, 2
	homeScore, awayScore := 2, 0
	return []shared.Match{
		{
			ID:          1,
			MatchNumber: 1,
			StageID:     shared.StageGroup,
			HomeTeamID:  &one,
			AwayTeamID:  &two,
			HomeScore:   &homeScore,
			AwayScore:   &awayScore,
			Venue:       "Estadio Azteca",
			KickoffAt:   "2026-06-11T20:00:00Z",
			MatchLabel:  "Avalon vs Borduria",
		},
		{
			ID:          2,
			MatchNumber: 74,
			StageID:     shared.StageRoundOf32,
			Venue:       "MetLife Stadium",
			KickoffAt:   "2026-06-29T18:00:00Z",
			MatchLabel:  "Winner A vs 3rd Place C/D/E",
		},
	}
}
