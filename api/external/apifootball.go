/* apifootball.go
 * Contains the API-Football v3 client used to fetch a team's recent finished
 * fixtures, the per-fixture expected goals statistic, and the bookmaker-style
 * prediction for an upcoming fixture. All requests go through a shared rate
 * limiter and 429 responses are retried once after the advertised wait.
 * Authors: Zachary Bower
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"worldcup-predictions/api/agent"
	"worldcup-predictions/api/logic"
)

const defaultFootballBaseURL = "https://v3.football.api-sports.io"

// FootballClient talks to the API-Football v3 REST API
type FootballClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewFootballClient creates a client limited to the free tier's 10 requests per minute
func NewFootballClient(apiKey string) *FootballClient {
	return &FootballClient{
		APIKey:  apiKey,
		BaseURL: defaultFootballBaseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Limiter: rate.NewLimiter(rate.Every(6*time.Second), 1),
	}
}

// TeamRecentFixtures fetches a team's last finished fixtures, oldest first, and fills
// in the team's xG for each fixture where the statistics endpoint has it.
// Preconditions: teamID is the provider's team id, last > 0
// Postconditions: returns the fixtures ordered oldest first or an error if the fetch fails
func (c *FootballClient) TeamRecentFixtures(ctx context.Context, teamID int, last int) ([]logic.Fixture, error) {
	path := fmt.Sprintf("/fixtures?team=%d&last=%d&status=FT", teamID, last)
	var envelope apiFootballEnvelope[[]fixtureEntry]
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("error fetching recent fixtures for team %d: %w", teamID, err)
	}

	// API-Football returns most recent first
	entries := envelope.Response
	fixtures := make([]logic.Fixture, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Goals.Home == nil || entry.Goals.Away == nil {
			continue
		}

		fixture := logic.Fixture{}
		home := entry.Teams.Home.ID == teamID
		if home {
			fixture.GoalsFor = *entry.Goals.Home
			fixture.GoalsAgainst = *entry.Goals.Away
		} else {
			fixture.GoalsFor = *entry.Goals.Away
			fixture.GoalsAgainst = *entry.Goals.Home
		}
		switch {
		case fixture.GoalsFor > fixture.GoalsAgainst:
			fixture.Result = "W"
		case fixture.GoalsFor < fixture.GoalsAgainst:
			fixture.Result = "L"
		default:
			fixture.Result = "D"
		}

		// xG lives on a separate endpoint and is missing for many international
		// fixtures, so a failed lookup only leaves XG nil
		if xg, err := c.FixtureXG(ctx, entry.Fixture.ID, teamID); err == nil {
			fixture.XG = xg
		} else if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		fixtures = append(fixtures, fixture)
	}
	return fixtures, nil
}

// FixtureXG fetches the expected goals value one team produced in one fixture.
// Returns nil without error when the provider has no xG statistic for it.
func (c *FootballClient) FixtureXG(ctx context.Context, fixtureID int, teamID int) (*float64, error) {
	path := fmt.Sprintf("/fixtures/statistics?fixture=%d", fixtureID)
	var envelope apiFootballEnvelope[[]statisticsEntry]
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("error fetching statistics for fixture %d: %w", fixtureID, err)
	}

	for _, entry := range envelope.Response {
		if entry.Team.ID != teamID {
			continue
		}
		for _, stat := range entry.Statistics {
			if !strings.EqualFold(stat.Type, "expected_goals") {
				continue
			}
			if xg, ok := parseStatValue(stat.Value); ok {
				return &xg, nil
			}
		}
	}
	return nil, nil
}

// FixturePrediction fetches the provider's own prediction for an upcoming fixture.
// Returns nil without error when the provider has none.
func (c *FootballClient) FixturePrediction(ctx context.Context, fixtureID int) (*agent.StatPrediction, error) {
	path := fmt.Sprintf("/predictions?fixture=%d", fixtureID)
	var envelope apiFootballEnvelope[[]predictionEntry]
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("error fetching prediction for fixture %d: %w", fixtureID, err)
	}
	if len(envelope.Response) == 0 {
		return nil, nil
	}

	p := envelope.Response[0].Predictions
	return &agent.StatPrediction{
		HomePercent: strings.TrimSuffix(p.Percent.Home, "%"),
		DrawPercent: strings.TrimSuffix(p.Percent.Draw, "%"),
		AwayPercent: strings.TrimSuffix(p.Percent.Away, "%"),
		WinnerName:  p.Winner.Name,
		Advice:      p.Advice,
	}, nil
}

// getJSON performs one rate-limited GET against the API and decodes the response.
// A 429 is retried once after the Retry-After wait.
func (c *FootballClient) getJSON(ctx context.Context, path string, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("x-apisports-key", c.APIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.Client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt == 0 {
			wait := retryAfter(resp.Header.Get("Retry-After"))
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return json.Unmarshal(body, out)
	}
	return fmt.Errorf("rate limited")
}

func retryAfter(header string) time.Duration {
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 5 * time.Second
}

// parseStatValue handles the provider reporting numeric statistics as either
// JSON numbers or strings
func parseStatValue(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
