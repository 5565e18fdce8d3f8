/* metrics.go
 * Contains the team statistics aggregation: recent fixtures are reduced to the
 * metrics the prediction agent feeds into its prompt (average xG, clean sheets,
 * form string) together with a data completeness score. Missing xG data is
 * tolerated per fixture and a full absence switches the statistics into a
 * traditional form fallback mode.
 * Authors: Zachary Bower
 */

package logic

// Fixture is one recent match of a team as reported by the statistics
// provider. XG is nil when the provider has no expected-goals data for it.
type Fixture struct {
	GoalsFor     int      `bson:"goals_for" json:"goals_for"`
	GoalsAgainst int      `bson:"goals_against" json:"goals_against"`
	XG           *float64 `bson:"xg,omitempty" json:"xg,omitempty"`
	Result       string   `bson:"result" json:"result"` // "W", "D" or "L"
}

// TeamStatistics is the aggregated metric set for one team
type TeamStatistics struct {
	AvgXG            *float64 `bson:"avg_xg,omitempty" json:"avg_xg,omitempty"`
	CleanSheets      int      `bson:"clean_sheets" json:"clean_sheets"`
	FormString       string   `bson:"form_string" json:"form_string"`
	DataCompleteness float64  `bson:"data_completeness" json:"data_completeness"`
	Confidence       string   `bson:"confidence" json:"confidence"`
	FallbackMode     string   `bson:"fallback_mode,omitempty" json:"fallback_mode,omitempty"`
}

// ComputeMetrics reduces a team's recent fixtures to its statistics.
// Preconditions: fixtures are ordered oldest first; an empty slice is valid and yields
// an unknown-form, low confidence result.
// Postconditions: returns the aggregated TeamStatistics; AvgXG is nil and FallbackMode
// set when no fixture carried xG data.
func ComputeMetrics(fixtures []Fixture) TeamStatistics {
	if len(fixtures) == 0 {
		return TeamStatistics{
			FormString:   "Unknown",
			Confidence:   "low",
			FallbackMode: "no_data",
		}
	}

	var xgSum float64
	xgCount := 0
	cleanSheets := 0
	form := make([]byte, 0, 2*len(fixtures))

	// Most recent first in the form string.
	for i := len(fixtures) - 1; i >= 0; i-- {
		f := fixtures[i]
		if len(form) > 0 {
			form = append(form, '-')
		}
		form = append(form, f.Result...)
		if f.GoalsAgainst == 0 {
			cleanSheets++
		}
		if f.XG != nil {
			xgSum += *f.XG
			xgCount++
		}
	}

	stats := TeamStatistics{
		CleanSheets: cleanSheets,
		FormString:  string(form),
	}

	if xgCount == 0 {
		stats.Confidence = "low"
		stats.FallbackMode = "traditional_form"
		return stats
	}

	avg := xgSum / float64(xgCount)
	stats.AvgXG = &avg
	stats.DataCompleteness = float64(xgCount) / float64(len(fixtures))

	switch {
	case stats.DataCompleteness == 1.0:
		stats.Confidence = "high"
	case stats.DataCompleteness >= 0.5:
		stats.Confidence = "medium"
	default:
		stats.Confidence = "low"
	}
	return stats
}
