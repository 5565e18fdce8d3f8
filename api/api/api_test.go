/* api_test.go
 * Contains unit tests for the API facade using the mock store and providers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

func ip(v int) *int { return &v }

// seedGroupA fills the store with a finished group A (points 9, 6, 3, 0) and one
// unplayed knockout match between the group winner and runner up
func seedGroupA(store *MockStore) {
	store.Teams = []shared.Team{
		{ID: 1, Name: "Avalon", FifaCode: "AVA", GroupLetter: "A", APIFootballID: ip(501)},
		{ID: 2, Name: "Borduria", FifaCode: "BOR", GroupLetter: "A", APIFootballID: ip(502)},
		{ID: 3, Name: "Camelot", FifaCode: "CAM", GroupLetter: "A", APIFootballID: ip(503)},
		{ID: 4, Name: "Dorne", FifaCode: "DOR", GroupLetter: "A", APIFootballID: ip(504)},
	}

	results := []struct{ home, away, hs, as int }{
		{1, 2, 2, 1}, {1, 3, 2, 0}, {1, 4, 3, 1},
		{2, 3, 1, 0}, {2, 4, 2, 0}, {3, 4, 1, 0},
	}
	for i, r := range results {
		home, away, hs, as := r.home, r.away, r.hs, r.as
		store.Matches = append(store.Matches, shared.Match{
			ID:          i + 1,
			MatchNumber: i + 1,
			StageID:     shared.StageGroup,
			HomeTeamID:  &home,
			AwayTeamID:  &away,
			HomeScore:   &hs,
			AwayScore:   &as,
		})
	}

	store.Matches = append(store.Matches, shared.Match{
		ID:          7,
		MatchNumber: 74,
		StageID:     shared.StageRoundOf32,
		MatchLabel:  "Winner A vs Runner-up A",
	})
}

func newTestAPI() (*API, *MockStore, *MockStats, *MockPredictor) {
	store := NewMockStore()
	seedGroupA(store)
	xg := 1.9
	stats := &MockStats{Fixtures: map[int][]logic.Fixture{
		501: {{GoalsFor: 2, GoalsAgainst: 0, XG: &xg, Result: "W"}},
		502: {{GoalsFor: 1, GoalsAgainst: 1, Result: "D"}},
	}}
	predictor := &MockPredictor{}
	a := &API{
		Store:              store,
		Stats:              stats,
		Predictor:          predictor,
		Rankings:           &MockRankings{},
		StatsTTL:           time.Hour,
		RecentFixtureCount: 5,
	}
	return a, store, stats, predictor
}

func TestUpdatePredictions_FullPipeline(t *testing.T) {
	a, store, _, predictor := newTestAPI()

	report, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, report.Skipped)

	// Group A resolved with the expected order
	require.Contains(t, report.Snapshot.Groups, "A")
	standings := report.Snapshot.Groups["A"]
	require.Len(t, standings, 4)
	assert.Equal(t, "Avalon", standings[0].TeamName)
	assert.Equal(t, 9, standings[0].Points)
	assert.Equal(t, "Dorne", standings[3].TeamName)

	// The knockout match resolved to the group winner and runner up,
	// so exactly one prediction was generated
	require.Len(t, report.Snapshot.Predictions, 1)
	prediction := report.Snapshot.Predictions[0]
	assert.Equal(t, 74, prediction.MatchNumber)
	assert.Equal(t, "Avalon", prediction.Winner)
	assert.Equal(t, 1, predictor.Calls)

	// Snapshot was published and the prediction archived
	assert.Equal(t, 1, store.PublishedSnapshots)
	assert.Len(t, store.History["match_74"], 1)
	assert.NotEmpty(t, report.Snapshot.InputHash)
}

func TestUpdatePredictions_SkipsUnchangedInput(t *testing.T) {
	a, store, _, predictor := newTestAPI()

	first, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Snapshot.InputHash, second.Snapshot.InputHash)
	assert.Equal(t, 1, store.PublishedSnapshots)
	assert.Equal(t, 1, predictor.Calls)

	// Force recomputes and republishes even on identical input
	third, err := a.UpdatePredictions(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, third.Skipped)
	assert.Equal(t, 2, store.PublishedSnapshots)
}

func TestUpdatePredictions_RepublishesWhenInputChanged(t *testing.T) {
	a, store, _, _ := newTestAPI()

	_, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)

	winner := 1
	require.NoError(t, store.RecordMatchResult(74, 1, 1, &winner))

	report, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 2, store.PublishedSnapshots)
	// The knockout match is played now, so nothing is left to predict
	assert.Empty(t, report.Snapshot.Predictions)
}

func TestUpdatePredictions_PredictorFailureDegrades(t *testing.T) {
	a, store, _, predictor := newTestAPI()
	predictor.Err = fmt.Errorf("model unavailable")

	report, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, report.Snapshot.Predictions)
	assert.NotEmpty(t, report.StepErrors)
	assert.Equal(t, 1, store.PublishedSnapshots)
}

func TestUpdatePredictions_UsesStatsCache(t *testing.T) {
	a, store, stats, _ := newTestAPI()
	avg := 2.2
	store.TeamStats[1] = logic.TeamStatistics{AvgXG: &avg, FormString: "W-W", Confidence: "high"}
	store.TeamStats[2] = logic.TeamStatistics{FormString: "L-L", Confidence: "low"}

	_, err := a.UpdatePredictions(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Calls)
}

func TestUpdatePredictions_NoTeams(t *testing.T) {
	a, store, _, _ := newTestAPI()
	store.Teams = nil

	_, err := a.UpdatePredictions(context.Background(), false)
	assert.ErrorContains(t, err, "no teams")
}

func TestGetStandings(t *testing.T) {
	a, _, _, _ := newTestAPI()

	standings, err := a.GetStandings()
	require.NoError(t, err)
	require.Contains(t, standings, "A")
	assert.Equal(t, 1, standings["A"][0].Rank)
	assert.Equal(t, "Avalon", standings["A"][0].TeamName)
}

func TestGetBracket(t *testing.T) {
	a, _, _, _ := newTestAPI()

	bracket, err := a.GetBracket()
	require.NoError(t, err)
	require.Len(t, bracket, 1)
	assert.Equal(t, 74, bracket[0].MatchNumber)
	assert.True(t, bracket[0].Home.Resolved)
	assert.Equal(t, "Avalon", bracket[0].Home.TeamName)
	assert.Equal(t, "Borduria", bracket[0].Away.TeamName)
}

func TestGetUpcomingMatchesAndRecordResult(t *testing.T) {
	a, _, _, _ := newTestAPI()

	upcoming, err := a.GetUpcomingMatches(0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, 74, upcoming[0].MatchNumber)

	require.NoError(t, a.RecordResult(74, 2, 0, nil))
	upcoming, err = a.GetUpcomingMatches(0)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestRefreshRankings(t *testing.T) {
	a, store, _, _ := newTestAPI()
	a.Rankings = &MockRankings{Entries: []external.RankingEntry{
		{Rank: 1, TeamName: "Avalon", FifaCode: "AVA", Points: 1900.0, Confederation: "UEFA"},
	}}

	require.NoError(t, a.RefreshRankings(context.Background()))
	require.Len(t, store.Rankings, 1)
	assert.Equal(t, "Avalon", store.Rankings[0].TeamName)
}
