/* api.go
 * This file contains the public methods for interacting with this package. For consistent
 * results, functions should only be called from this file, not the sub packages for engine,
 * logic, store or external. The central operation is UpdatePredictions, which runs the full
 * pipeline: load the tournament state, derive standings, third place ranking and bracket,
 * aggregate team statistics, generate predictions and publish the snapshot.
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"worldcup-predictions/api/agent"
	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
	"worldcup-predictions/api/store"
)

// API provides methods for interacting with the prediction backend data layer
type API struct {
	Store     store.Interface
	Stats     StatsProvider
	Predictor Predictor
	Rankings  RankingProvider

	StatsTTL           time.Duration
	RecentFixtureCount int
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, geminiAPIKey string, footballAPIKey string) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:              s,
		Stats:              external.NewFootballClient(footballAPIKey),
		Predictor:          agent.NewAgent(geminiAPIKey),
		Rankings:           external.NewRankingClient(),
		StatsTTL:           24 * time.Hour,
		RecentFixtureCount: 5,
	}, nil
}

// UpdatePredictions runs the full derivation pipeline and publishes the resulting
// snapshot. Individual step failures (statistics, predictions) degrade the snapshot
// and are listed in its Errors field rather than aborting the run.
// Preconditions: Receives a context and a force flag; without force the run is skipped
// when the stored snapshot was derived from identical input
// Postconditions: Returns the report for the run, or an error if the tournament state
// could not be loaded or the snapshot could not be published
func (a *API) UpdatePredictions(ctx context.Context, force bool) (UpdateReport, error) {
	teams, matches, cards, err := a.loadState()
	if err != nil {
		return UpdateReport{}, err
	}

	inputHash := logic.ComputeInputHash(teams, matches, cards)
	if !force {
		if previous, err := a.Store.GetLatestSnapshot(); err == nil && previous.InputHash == inputHash {
			log.Println("input unchanged since last snapshot, skipping update")
			return UpdateReport{Snapshot: previous, Skipped: true, Predictions: len(previous.Predictions)}, nil
		}
	}

	var stepErrors []string

	groups := a.computeGroups(teams, matches, cards, &stepErrors)
	thirdPlace := computeThirdPlace(groups, &stepErrors)

	bracket, err := engine.ResolveBracket(engine.BracketInput{
		Teams:      teams,
		Matches:    matches,
		Groups:     groups,
		ThirdPlace: thirdPlace,
	})
	if err != nil {
		stepErrors = append(stepErrors, fmt.Sprintf("bracket resolution failed: %v", err))
	}

	predictions := a.generatePredictions(ctx, teams, matches, bracket, &stepErrors)

	snapshot := logic.BuildSnapshot(groups, thirdPlace, bracket, predictions, inputHash, stepErrors)
	if err := a.Store.PublishSnapshot(snapshot); err != nil {
		return UpdateReport{}, err
	}

	a.archivePredictions(predictions, &stepErrors)

	log.Printf("published snapshot with %d groups, %d bracket matches, %d predictions",
		len(snapshot.Groups), len(snapshot.Bracket), len(snapshot.Predictions))
	return UpdateReport{Snapshot: snapshot, Predictions: len(predictions), StepErrors: stepErrors}, nil
}

// GetStandings returns the ranked standings per group, computed from the current state
func (a *API) GetStandings() (map[string][]engine.GroupStanding, error) {
	teams, matches, cards, err := a.loadState()
	if err != nil {
		return nil, err
	}

	var stepErrors []string
	groups := a.computeGroups(teams, matches, cards, &stepErrors)
	if len(groups) == 0 && len(stepErrors) > 0 {
		return nil, fmt.Errorf("no group could be calculated: %s", stepErrors[0])
	}

	standings := make(map[string][]engine.GroupStanding, len(groups))
	for letter, res := range groups {
		standings[letter] = res.Standings
	}
	return standings, nil
}

// GetBracket resolves and returns the knockout bracket from the current state
func (a *API) GetBracket() ([]engine.BracketMatch, error) {
	teams, matches, cards, err := a.loadState()
	if err != nil {
		return nil, err
	}

	var stepErrors []string
	groups := a.computeGroups(teams, matches, cards, &stepErrors)
	thirdPlace := computeThirdPlace(groups, &stepErrors)

	return engine.ResolveBracket(engine.BracketInput{
		Teams:      teams,
		Matches:    matches,
		Groups:     groups,
		ThirdPlace: thirdPlace,
	})
}

// GetPredictions returns the predictions of the most recently published snapshot
func (a *API) GetPredictions() ([]shared.MatchPrediction, error) {
	snapshot, err := a.Store.GetLatestSnapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.Predictions, nil
}

// GetLatestSnapshot returns the most recently published snapshot
func (a *API) GetLatestSnapshot() (logic.Snapshot, error) {
	return a.Store.GetLatestSnapshot()
}

// GetTeams returns all teams in the tournament
func (a *API) GetTeams() ([]shared.Team, error) {
	return a.Store.GetTeams()
}

// GetUpcomingMatches returns the next unplayed matches in schedule order
func (a *API) GetUpcomingMatches(limit int) ([]shared.Match, error) {
	return a.Store.GetUpcomingMatches(limit)
}

// RecordResult records a full time result for one match
func (a *API) RecordResult(matchNumber int, homeScore int, awayScore int, winnerTeamID *int) error {
	return a.Store.RecordMatchResult(matchNumber, homeScore, awayScore, winnerTeamID)
}

// RefreshRankings fetches the current FIFA world ranking and stores it
func (a *API) RefreshRankings(ctx context.Context) error {
	entries, err := a.Rankings.LatestRankings(ctx)
	if err != nil {
		return fmt.Errorf("error fetching world ranking: %w", err)
	}
	return a.Store.StoreRankings(entries)
}

// loadState fetches the complete tournament state from the store
func (a *API) loadState() ([]shared.Team, []shared.Match, []shared.Card, error) {
	teams, err := a.Store.GetTeams()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(teams) == 0 {
		return nil, nil, nil, fmt.Errorf("no teams found, has the tournament been seeded?")
	}
	matches, err := a.Store.GetMatches()
	if err != nil {
		return nil, nil, nil, err
	}
	cards, err := a.Store.GetCards()
	if err != nil {
		return nil, nil, nil, err
	}
	return teams, matches, cards, nil
}

// computeGroups calculates standings for every group that has teams assigned.
// Per-group failures are recorded in stepErrors and the group omitted.
func (a *API) computeGroups(teams []shared.Team, matches []shared.Match, cards []shared.Card, stepErrors *[]string) map[string]engine.StandingsResult {
	teamsByGroup := make(map[string][]shared.Team)
	teamGroup := make(map[int]string, len(teams))
	for _, t := range teams {
		if t.GroupLetter == "" {
			continue
		}
		teamsByGroup[t.GroupLetter] = append(teamsByGroup[t.GroupLetter], t)
		teamGroup[t.ID] = t.GroupLetter
	}

	matchesByGroup := make(map[string][]shared.Match)
	matchGroup := make(map[int]string)
	for _, m := range matches {
		if m.StageID != shared.StageGroup || m.HomeTeamID == nil {
			continue
		}
		letter := teamGroup[*m.HomeTeamID]
		if letter == "" {
			continue
		}
		matchesByGroup[letter] = append(matchesByGroup[letter], m)
		matchGroup[m.ID] = letter
	}

	cardsByGroup := make(map[string][]shared.Card)
	for _, c := range cards {
		if letter := matchGroup[c.MatchID]; letter != "" {
			cardsByGroup[letter] = append(cardsByGroup[letter], c)
		}
	}

	groups := make(map[string]engine.StandingsResult, len(teamsByGroup))
	for letter, groupTeams := range teamsByGroup {
		res, err := engine.CalculateStandings(letter, groupTeams, matchesByGroup[letter], cardsByGroup[letter])
		if err != nil {
			*stepErrors = append(*stepErrors, fmt.Sprintf("group %s standings failed: %v", letter, err))
			continue
		}
		for _, lot := range res.DrawnLots {
			log.Printf("group %s required drawing of lots between teams %v", lot.Group, lot.TeamIDs)
		}
		groups[letter] = res
	}
	return groups
}

// computeThirdPlace ranks the twelve third placed teams once every group is complete
func computeThirdPlace(groups map[string]engine.StandingsResult, stepErrors *[]string) *engine.ThirdPlaceResult {
	if len(groups) != len(engine.GroupLetters) {
		return nil
	}
	candidates := make([]engine.GroupStanding, 0, len(groups))
	for _, res := range groups {
		if !res.Complete() {
			return nil
		}
		for _, s := range res.Standings {
			if s.Rank == 3 {
				candidates = append(candidates, s)
			}
		}
	}

	res, err := engine.RankThirdPlaceTeams(candidates)
	if err != nil {
		*stepErrors = append(*stepErrors, fmt.Sprintf("third place ranking failed: %v", err))
		return nil
	}
	return &res
}

// generatePredictions predicts every unplayed bracket or group match whose teams are
// both concrete. Prediction failures for single matches are collected, not fatal.
func (a *API) generatePredictions(ctx context.Context, teams []shared.Team, matches []shared.Match, bracket []engine.BracketMatch, stepErrors *[]string) []shared.MatchPrediction {
	teamsByID := make(map[int]shared.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	rankings, err := a.Store.GetRankings()
	if err != nil {
		*stepErrors = append(*stepErrors, fmt.Sprintf("loading rankings failed: %v", err))
	}
	rankingByName := make(map[string]external.RankingEntry, len(rankings))
	for _, entry := range rankings {
		rankingByName[entry.TeamName] = entry
	}

	// Resolved bracket sides override the schedule's nil team references
	resolvedSides := make(map[int][2]*int, len(bracket))
	for _, bm := range bracket {
		resolvedSides[bm.MatchNumber] = [2]*int{bm.Home.TeamID, bm.Away.TeamID}
	}

	var predictions []shared.MatchPrediction
	for _, m := range matches {
		if m.Played() {
			continue
		}
		homeID, awayID := m.HomeTeamID, m.AwayTeamID
		if sides, ok := resolvedSides[m.MatchNumber]; ok {
			if sides[0] != nil {
				homeID = sides[0]
			}
			if sides[1] != nil {
				awayID = sides[1]
			}
		}
		if homeID == nil || awayID == nil {
			continue
		}
		home, homeOK := teamsByID[*homeID]
		away, awayOK := teamsByID[*awayID]
		if !homeOK || !awayOK || home.IsPlaceholder || away.IsPlaceholder {
			continue
		}

		matchup := agent.Matchup{
			MatchID:     fmt.Sprintf("match_%d", m.MatchNumber),
			MatchNumber: m.MatchNumber,
			Home:        a.teamContext(ctx, home, rankingByName, stepErrors),
			Away:        a.teamContext(ctx, away, rankingByName, stepErrors),
		}

		prediction, err := a.Predictor.GeneratePrediction(ctx, matchup)
		if err != nil {
			*stepErrors = append(*stepErrors, fmt.Sprintf("prediction for match %d failed: %v", m.MatchNumber, err))
			continue
		}
		predictions = append(predictions, shared.MatchPrediction{
			MatchID:     matchup.MatchID,
			MatchNumber: m.MatchNumber,
			Prediction:  prediction,
		})
	}

	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].MatchNumber < predictions[j].MatchNumber
	})
	return predictions
}

// teamContext assembles one team's prompt context from cached or freshly fetched
// statistics plus the stored world ranking
func (a *API) teamContext(ctx context.Context, team shared.Team, rankingByName map[string]external.RankingEntry, stepErrors *[]string) agent.TeamContext {
	stats := a.teamStatistics(ctx, team, stepErrors)

	tc := agent.TeamContext{
		Name:        team.Name,
		AvgXG:       stats.AvgXG,
		CleanSheets: stats.CleanSheets,
		FormString:  stats.FormString,
	}
	if entry, ok := rankingByName[team.Name]; ok {
		rank := entry.Rank
		points := entry.Points
		tc.FifaRanking = &rank
		tc.FifaPoints = &points
		tc.Confederation = entry.Confederation
	}
	return tc
}

// teamStatistics returns a team's aggregated statistics, served from the cache when
// fresh and recomputed from the external provider otherwise
func (a *API) teamStatistics(ctx context.Context, team shared.Team, stepErrors *[]string) logic.TeamStatistics {
	if cached, ok, err := a.Store.GetCachedTeamStats(team.ID); err == nil && ok {
		return cached
	} else if err != nil {
		*stepErrors = append(*stepErrors, fmt.Sprintf("stats cache lookup for %s failed: %v", team.Name, err))
	}

	if team.APIFootballID == nil {
		return logic.ComputeMetrics(nil)
	}

	fixtures, err := a.Stats.TeamRecentFixtures(ctx, *team.APIFootballID, a.RecentFixtureCount)
	if err != nil {
		*stepErrors = append(*stepErrors, fmt.Sprintf("fetching fixtures for %s failed: %v", team.Name, err))
		return logic.ComputeMetrics(nil)
	}

	stats := logic.ComputeMetrics(fixtures)
	if err := a.Store.StoreTeamStats(team.ID, stats, a.StatsTTL); err != nil {
		*stepErrors = append(*stepErrors, fmt.Sprintf("caching stats for %s failed: %v", team.Name, err))
	}
	return stats
}

// archivePredictions saves history entries for predictions whose winner or
// reasoning changed since the previous run
func (a *API) archivePredictions(predictions []shared.MatchPrediction, stepErrors *[]string) {
	for _, p := range predictions {
		save, err := a.Store.ShouldSavePredictionHistory(p.MatchID, p.Prediction)
		if err != nil {
			*stepErrors = append(*stepErrors, fmt.Sprintf("history check for %s failed: %v", p.MatchID, err))
			continue
		}
		if !save {
			continue
		}
		if err := a.Store.SavePredictionHistory(p.MatchID, p.Prediction); err != nil {
			*stepErrors = append(*stepErrors, fmt.Sprintf("history save for %s failed: %v", p.MatchID, err))
		}
	}
}
