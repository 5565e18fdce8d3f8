/* agent.go
 * Contains the AI prediction agent. It calls the Gemini generateContent endpoint in
 * JSON response mode, retries once with a short backoff, and falls back to the
 * rule-based prediction when the model keeps failing, so a model outage never takes
 * the whole pipeline down. Responses wrapped in markdown code fences are tolerated.
 * Authors: Zachary Bower
 */

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"worldcup-predictions/api/shared"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Agent generates match predictions with an AI model and a rule-based fallback
type Agent struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	Backoff    time.Duration
	Client     *http.Client
}

// NewAgent creates an agent with the production defaults: one retry, one
// second backoff, gemini-2.5-flash.
func NewAgent(apiKey string) *Agent {
	return &Agent{
		APIKey:     apiKey,
		Model:      "gemini-2.5-flash",
		BaseURL:    defaultBaseURL,
		MaxRetries: 1,
		Backoff:    time.Second,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// GeneratePrediction predicts the outcome of one matchup.
// Postconditions: always returns a usable prediction; model failures after the retry
// budget degrade to the rule-based fallback instead of returning an error. The error
// return only reports context cancellation.
func (a *Agent) GeneratePrediction(ctx context.Context, matchup Matchup) (shared.Prediction, error) {
	for attempt := 0; attempt <= a.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return shared.Prediction{}, err
		}

		text, err := a.callModel(ctx, buildPrompt(matchup))
		if err == nil {
			prediction, parseErr := parsePrediction(text)
			if parseErr == nil {
				log.Printf("prediction for match %d: %s (attempt %d)", matchup.MatchNumber, prediction.Winner, attempt+1)
				return prediction, nil
			}
			err = parseErr
		}

		if attempt == a.MaxRetries {
			log.Printf("model prediction failed for match %d after %d attempts, using rule-based fallback: %v",
				matchup.MatchNumber, attempt+1, err)
			return RuleBasedPrediction(matchup), nil
		}

		log.Printf("model prediction failed for match %d (attempt %d), retrying: %v", matchup.MatchNumber, attempt+1, err)
		select {
		case <-time.After(a.Backoff):
		case <-ctx.Done():
			return shared.Prediction{}, ctx.Err()
		}
	}
	return RuleBasedPrediction(matchup), nil
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string  `json:"responseMimeType"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// callModel performs one generateContent request and returns the raw response text
func (a *Agent) callModel(ctx context.Context, prompt string) (string, error) {
	var req generateRequest
	req.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	req.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.Temperature = 0.7

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.BaseURL, a.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", a.APIKey)

	resp, err := a.Client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decoding model response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model response contained no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt renders the matchup context into the prediction prompt
func buildPrompt(m Matchup) string {
	var b strings.Builder
	b.WriteString("Predict the result of this World Cup 2026 match:\n\n")
	writeTeamContext(&b, "Home team", m.Home)
	b.WriteString("\n")
	writeTeamContext(&b, "Away team", m.Away)

	if m.Stats != nil {
		fmt.Fprintf(&b, "\nStatistical forecast:\n")
		fmt.Fprintf(&b, "- Win probability: Home %s%%, Draw %s%%, Away %s%%\n",
			m.Stats.HomePercent, m.Stats.DrawPercent, m.Stats.AwayPercent)
		fmt.Fprintf(&b, "- Expected winner: %s\n", m.Stats.WinnerName)
		if m.Stats.Advice != "" {
			fmt.Fprintf(&b, "- Advice: %s\n", m.Stats.Advice)
		}
	}

	b.WriteString(`
Return the prediction as JSON with exactly this schema:
{
  "winner": "team name or Draw",
  "win_probability": 0.0-1.0,
  "predicted_home_score": integer,
  "predicted_away_score": integer,
  "reasoning": "short explanation (max 200 characters)"
}`)
	return b.String()
}

func writeTeamContext(b *strings.Builder, side string, t TeamContext) {
	fmt.Fprintf(b, "%s: %s\n", side, t.Name)
	if t.AvgXG != nil {
		fmt.Fprintf(b, "- Average xG: %.2f\n", *t.AvgXG)
	} else {
		b.WriteString("- Average xG: N/A\n")
	}
	fmt.Fprintf(b, "- Clean sheets: %d\n", t.CleanSheets)
	fmt.Fprintf(b, "- Recent form: %s\n", t.FormString)
	if t.FifaRanking != nil {
		fmt.Fprintf(b, "- FIFA ranking: #%d", *t.FifaRanking)
		if t.FifaPoints != nil {
			fmt.Fprintf(b, " (%.2f points", *t.FifaPoints)
			if t.Confederation != "" {
				fmt.Fprintf(b, ", %s", t.Confederation)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
}

// parsePrediction decodes the model output, stripping markdown code fences the
// model sometimes adds even in JSON mode, and fills defaults for missing
// optional fields. A missing winner is an error.
func parsePrediction(text string) (shared.Prediction, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return shared.Prediction{}, fmt.Errorf("parsing prediction JSON: %w", err)
	}
	if _, ok := raw["winner"]; !ok {
		return shared.Prediction{}, fmt.Errorf("prediction missing required field: winner")
	}

	prediction := shared.Prediction{
		WinProbability:     0.5,
		PredictedHomeScore: 1,
		PredictedAwayScore: 1,
		Reasoning:          "AI prediction",
	}
	if err := json.Unmarshal([]byte(cleaned), &prediction); err != nil {
		return shared.Prediction{}, fmt.Errorf("parsing prediction JSON: %w", err)
	}
	return prediction, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
