/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"time"

	"worldcup-predictions/api/agent"
	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// MockStore implements the store Interface for testing
type MockStore struct {
	// Storage for mock data
	Teams     []shared.Team
	Matches   []shared.Match
	Cards     []shared.Card
	Snapshot  *logic.Snapshot
	History   map[string][]shared.Prediction
	TeamStats map[int]logic.TeamStatistics
	Rankings  []external.RankingEntry

	// Error injection for testing error paths
	GetTeamsError        error
	GetMatchesError      error
	GetCardsError        error
	PublishSnapshotError error
	RecordResultError    error

	PublishedSnapshots int
}

// NewMockStore creates a new MockStore with empty state
func NewMockStore() *MockStore {
	return &MockStore{
		History:   make(map[string][]shared.Prediction),
		TeamStats: make(map[int]logic.TeamStatistics),
	}
}

func (m *MockStore) GetTeams() ([]shared.Team, error) {
	if m.GetTeamsError != nil {
		return nil, m.GetTeamsError
	}
	return m.Teams, nil
}

func (m *MockStore) UpsertTeams(teams []shared.Team) error {
	m.Teams = teams
	return nil
}

func (m *MockStore) GetMatches() ([]shared.Match, error) {
	if m.GetMatchesError != nil {
		return nil, m.GetMatchesError
	}
	return m.Matches, nil
}

func (m *MockStore) UpsertMatches(matches []shared.Match) error {
	m.Matches = matches
	return nil
}

func (m *MockStore) GetUpcomingMatches(limit int) ([]shared.Match, error) {
	var upcoming []shared.Match
	for _, match := range m.Matches {
		if !match.Played() {
			upcoming = append(upcoming, match)
			if limit > 0 && len(upcoming) == limit {
				break
			}
		}
	}
	return upcoming, nil
}

func (m *MockStore) RecordMatchResult(matchNumber int, homeScore int, awayScore int, winnerTeamID *int) error {
	if m.RecordResultError != nil {
		return m.RecordResultError
	}
	for i := range m.Matches {
		if m.Matches[i].MatchNumber == matchNumber {
			m.Matches[i].HomeScore = &homeScore
			m.Matches[i].AwayScore = &awayScore
			m.Matches[i].WinnerTeamID = winnerTeamID
			return nil
		}
	}
	return fmt.Errorf("no match found with match number %d", matchNumber)
}

func (m *MockStore) GetCards() ([]shared.Card, error) {
	if m.GetCardsError != nil {
		return nil, m.GetCardsError
	}
	return m.Cards, nil
}

func (m *MockStore) RecordCard(card shared.Card) error {
	m.Cards = append(m.Cards, card)
	return nil
}

func (m *MockStore) PublishSnapshot(snapshot logic.Snapshot) error {
	if m.PublishSnapshotError != nil {
		return m.PublishSnapshotError
	}
	m.Snapshot = &snapshot
	m.PublishedSnapshots++
	return nil
}

func (m *MockStore) GetLatestSnapshot() (logic.Snapshot, error) {
	if m.Snapshot == nil {
		return logic.Snapshot{}, fmt.Errorf("no snapshot has been published yet")
	}
	return *m.Snapshot, nil
}

func (m *MockStore) ShouldSavePredictionHistory(matchID string, prediction shared.Prediction) (bool, error) {
	entries := m.History[matchID]
	if len(entries) == 0 {
		return true, nil
	}
	last := entries[len(entries)-1]
	return last.Winner != prediction.Winner || last.Reasoning != prediction.Reasoning, nil
}

func (m *MockStore) SavePredictionHistory(matchID string, prediction shared.Prediction) error {
	m.History[matchID] = append(m.History[matchID], prediction)
	return nil
}

func (m *MockStore) GetCachedTeamStats(teamID int) (logic.TeamStatistics, bool, error) {
	stats, ok := m.TeamStats[teamID]
	return stats, ok, nil
}

func (m *MockStore) StoreTeamStats(teamID int, stats logic.TeamStatistics, ttl time.Duration) error {
	m.TeamStats[teamID] = stats
	return nil
}

func (m *MockStore) StoreRankings(entries []external.RankingEntry) error {
	m.Rankings = entries
	return nil
}

func (m *MockStore) GetRankings() ([]external.RankingEntry, error) {
	return m.Rankings, nil
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: "test_db"}
}

type mockClient struct{}

func (c *mockClient) Disconnect(context.Context) error { return nil }

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// MockStats implements StatsProvider for testing
type MockStats struct {
	Fixtures map[int][]logic.Fixture
	Err      error
	Calls    int
}

func (m *MockStats) TeamRecentFixtures(ctx context.Context, teamID int, last int) ([]logic.Fixture, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fixtures[teamID], nil
}

func (m *MockStats) FixturePrediction(ctx context.Context, fixtureID int) (*agent.StatPrediction, error) {
	return nil, nil
}

// MockPredictor implements Predictor for testing, always predicting the home side
type MockPredictor struct {
	Err   error
	Calls int
}

func (m *MockPredictor) GeneratePrediction(ctx context.Context, matchup agent.Matchup) (shared.Prediction, error) {
	m.Calls++
	if m.Err != nil {
		return shared.Prediction{}, m.Err
	}
	return shared.Prediction{
		Winner:             matchup.Home.Name,
		WinProbability:     0.6,
		PredictedHomeScore: 2,
		PredictedAwayScore: 1,
		Reasoning:          "mock prediction",
	}, nil
}

// MockRankings implements RankingProvider for testing
type MockRankings struct {
	Entries []external.RankingEntry
	Err     error
}

func (m *MockRankings) LatestRankings(ctx context.Context) ([]external.RankingEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}
