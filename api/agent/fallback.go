/* fallback.go
 * Contains the rule-based prediction used when the AI model is unavailable. It
 * compares average xG between the two sides: a differential under 0.3 is called a
 * draw, otherwise the stronger attack is favoured with a probability that grows with
 * the gap but is capped at 0.75. Missing xG on either side yields a low-confidence
 * draw.
 * Authors: Zachary Bower
 */

package agent

import (
	"fmt"

	"worldcup-predictions/api/shared"
)

const (
	drawThreshold  = 0.3
	maxProbability = 0.75
)

// RuleBasedPrediction predicts a matchup from xG form alone, without the model.
// Postconditions: the returned prediction always has Confidence "low".
func RuleBasedPrediction(m Matchup) shared.Prediction {
	if m.Home.AvgXG == nil || m.Away.AvgXG == nil {
		return shared.Prediction{
			Winner:             "Draw",
			WinProbability:     0.33,
			PredictedHomeScore: 1,
			PredictedAwayScore: 1,
			Reasoning:          "Insufficient xG data for both teams, defaulting to draw",
			Confidence:         "low",
		}
	}

	diff := *m.Home.AvgXG - *m.Away.AvgXG
	if diff < 0 {
		diff = -diff
	}

	if diff < drawThreshold {
		return shared.Prediction{
			Winner:             "Draw",
			WinProbability:     0.4,
			PredictedHomeScore: 1,
			PredictedAwayScore: 1,
			Reasoning: fmt.Sprintf("xG levels are close (%.2f vs %.2f), match likely balanced",
				*m.Home.AvgXG, *m.Away.AvgXG),
			Confidence: "low",
		}
	}

	probability := 0.5 + diff*0.1
	if probability > maxProbability {
		probability = maxProbability
	}

	if *m.Home.AvgXG > *m.Away.AvgXG {
		return shared.Prediction{
			Winner:             m.Home.Name,
			WinProbability:     probability,
			PredictedHomeScore: 2,
			PredictedAwayScore: 1,
			Reasoning: fmt.Sprintf("%s averages more xG than %s (%.2f vs %.2f)",
				m.Home.Name, m.Away.Name, *m.Home.AvgXG, *m.Away.AvgXG),
			Confidence: "low",
		}
	}
	return shared.Prediction{
		Winner:             m.Away.Name,
		WinProbability:     probability,
		PredictedHomeScore: 1,
		PredictedAwayScore: 2,
		Reasoning: fmt.Sprintf("%s averages more xG than %s (%.2f vs %.2f)",
			m.Away.Name, m.Home.Name, *m.Away.AvgXG, *m.Home.AvgXG),
		Confidence: "low",
	}
}
