/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"time"

	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetTeams() ([]shared.Team, error)
	UpsertTeams(teams []shared.Team) error
	GetMatches() ([]shared.Match, error)
	UpsertMatches(matches []shared.Match) error
	GetUpcomingMatches(limit int) ([]shared.Match, error)
	RecordMatchResult(matchNumber int, homeScore int, awayScore int, winnerTeamID *int) error
	GetCards() ([]shared.Card, error)
	RecordCard(card shared.Card) error

	PublishSnapshot(snapshot logic.Snapshot) error
	GetLatestSnapshot() (logic.Snapshot, error)
	ShouldSavePredictionHistory(matchID string, prediction shared.Prediction) (bool, error)
	SavePredictionHistory(matchID string, prediction shared.Prediction) error

	GetCachedTeamStats(teamID int) (logic.TeamStatistics, bool, error)
	StoreTeamStats(teamID int, stats logic.TeamStatistics, ttl time.Duration) error
	StoreRankings(entries []external.RankingEntry) error
	GetRankings() ([]external.RankingEntry, error)

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
