/* prediction.go
 * Contains the AI match prediction types shared between the agent, the snapshot
 * assembly and the store. Tags keep the snake_case wire convention.
 * Authors: Zachary Bower
 */

package shared

// Prediction is the outcome forecast for a single match. Confidence is only
// set for rule-based fallback predictions.
type Prediction struct {
	Winner             string  `bson:"winner" json:"winner"`
	WinProbability     float64 `bson:"win_probability" json:"win_probability"`
	PredictedHomeScore int     `bson:"predicted_home_score" json:"predicted_home_score"`
	PredictedAwayScore int     `bson:"predicted_away_score" json:"predicted_away_score"`
	Reasoning          string  `bson:"reasoning" json:"reasoning"`
	Confidence         string  `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// MatchPrediction pairs a prediction with the match it is for
type MatchPrediction struct {
	MatchID     string `bson:"match_id" json:"match_id"`
	MatchNumber int    `bson:"match_number" json:"match_number"`
	Prediction  `bson:",inline"`
}
