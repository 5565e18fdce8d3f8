/* models.go
 * Contains the input structs for the prediction agent. The agent only ever sees plain
 * data assembled by the caller; it never reads the store or the engine itself.
 * Authors: Zachary Bower
 */

package agent

// TeamContext is the aggregated context for one side of a matchup
type TeamContext struct {
	Name         string   `json:"name"`
	AvgXG        *float64 `json:"avg_xg,omitempty"`
	CleanSheets  int      `json:"clean_sheets"`
	FormString   string   `json:"form_string"`
	FifaRanking  *int     `json:"fifa_ranking,omitempty"`
	FifaPoints   *float64 `json:"fifa_points,omitempty"`
	Confederation string  `json:"fifa_confederation,omitempty"`
}

// StatPrediction is an optional bookmaker style statistical forecast passed
// through to the prompt as supporting context
type StatPrediction struct {
	HomePercent string `json:"home_percent"`
	DrawPercent string `json:"draw_percent"`
	AwayPercent string `json:"away_percent"`
	WinnerName  string `json:"winner_name"`
	Advice      string `json:"advice"`
}

// Matchup is one match to predict
type Matchup struct {
	MatchID     string          `json:"match_id"`
	MatchNumber int             `json:"match_number"`
	Home        TeamContext     `json:"home_team"`
	Away        TeamContext     `json:"away_team"`
	Stats       *StatPrediction `json:"api_football_prediction,omitempty"`
}
