/* models.go
 * Contains the web server configuration, the backend interface the handlers call
 * into, and the request/response wire types
 * Authors: Zachary Bower
 */

package web

import (
	"context"

	apiPkg "worldcup-predictions/api/api"
	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// Backend is the slice of the API facade the HTTP handlers use. It is an
// interface so handler tests can substitute a mock.
type Backend interface {
	UpdatePredictions(ctx context.Context, force bool) (apiPkg.UpdateReport, error)
	GetStandings() (map[string][]engine.GroupStanding, error)
	GetBracket() ([]engine.BracketMatch, error)
	GetLatestSnapshot() (logic.Snapshot, error)
	GetUpcomingMatches(limit int) ([]shared.Match, error)
	RecordResult(matchNumber int, homeScore int, awayScore int, winnerTeamID *int) error
}

// Config holds the configuration for the web server
type Config struct {
	Addr           string
	API            Backend
	AllowedOrigins []string
}

// Server is the HTTP server that handles frontend and admin requests
type Server struct {
	api Backend
}

// ResultRequest is the body of POST /api/matches/{number}/result
type ResultRequest struct {
	HomeScore    int  `json:"home_score"`
	AwayScore    int  `json:"away_score"`
	WinnerTeamID *int `json:"winner_team_id,omitempty"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Error string `json:"error"`
}
