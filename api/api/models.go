/* models.go
 * This file contains the interfaces, structs and helper functions that are used by api consumers.
 * The provider interfaces mirror the concrete clients in api/external and api/agent so that
 * tests can substitute them.
 * Authors: Zachary Bower
 */

package api

import (
	"context"

	"worldcup-predictions/api/agent"
	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// StatsProvider fetches a team's recent fixtures and provider predictions
type StatsProvider interface {
	TeamRecentFixtures(ctx context.Context, teamID int, last int) ([]logic.Fixture, error)
	FixturePrediction(ctx context.Context, fixtureID int) (*agent.StatPrediction, error)
}

// Predictor generates a prediction for one matchup
type Predictor interface {
	GeneratePrediction(ctx context.Context, matchup agent.Matchup) (shared.Prediction, error)
}

// RankingProvider fetches the current FIFA world ranking
type RankingProvider interface {
	LatestRankings(ctx context.Context) ([]external.RankingEntry, error)
}

// UpdateReport summarises one run of the prediction pipeline
type UpdateReport struct {
	Snapshot    logic.Snapshot `json:"snapshot"`
	Skipped     bool           `json:"skipped"`
	Predictions int            `json:"predictions"`
	StepErrors  []string       `json:"step_errors,omitempty"`
}
