/* fifaranking.go
 * Contains the FIFA world ranking fetcher. The public ranking page embeds the id
 * of the latest ranking publication in its __NEXT_DATA__ script, which is scraped
 * with goquery, then the ranking itself comes from the site's JSON API.
 * Authors: Zachary Bower
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultRankingBaseURL = "https://inside.fifa.com"

// RankingClient fetches the men's FIFA world ranking
type RankingClient struct {
	BaseURL string
	Client  *http.Client
}

func NewRankingClient() *RankingClient {
	return &RankingClient{
		BaseURL: defaultRankingBaseURL,
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// LatestRankings fetches the most recently published world ranking.
// Postconditions: returns the ranking rows in rank order or an error if either the
// page scrape or the API fetch fails
func (c *RankingClient) LatestRankings(ctx context.Context) ([]RankingEntry, error) {
	dateID, err := c.latestDateID(ctx)
	if err != nil {
		return nil, fmt.Errorf("error finding latest ranking id: %w", err)
	}
	return c.rankingsForDate(ctx, dateID)
}

// latestDateID scrapes the ranking page for the id of the newest publication
func (c *RankingClient) latestDateID(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.BaseURL+"/fifa-world-ranking/men")
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parsing ranking page: %w", err)
	}

	script := doc.Find("script#__NEXT_DATA__").First().Text()
	if script == "" {
		return "", fmt.Errorf("ranking page has no __NEXT_DATA__ script")
	}

	var data nextData
	if err := json.Unmarshal([]byte(script), &data); err != nil {
		return "", fmt.Errorf("parsing ranking page data: %w", err)
	}
	dates := data.Props.PageProps.PageData.Ranking.Dates
	if len(dates) == 0 {
		return "", fmt.Errorf("ranking page lists no ranking dates")
	}
	return dates[0].ID, nil
}

// rankingsForDate fetches the ranking rows for one publication id
func (c *RankingClient) rankingsForDate(ctx context.Context, dateID string) ([]RankingEntry, error) {
	endpoint := fmt.Sprintf("%s/api/ranking-overview?locale=en&dateId=%s", c.BaseURL, url.QueryEscape(dateID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("error fetching ranking %s: %w", dateID, err)
	}
	defer body.Close()

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading ranking response: %w", err)
	}

	var overview rankingOverview
	if err := json.Unmarshal(payload, &overview); err != nil {
		return nil, fmt.Errorf("parsing ranking response: %w", err)
	}

	entries := make([]RankingEntry, 0, len(overview.Rankings))
	for _, row := range overview.Rankings {
		entries = append(entries, RankingEntry{
			Rank:          row.RankingItem.Rank,
			TeamName:      row.RankingItem.Name,
			FifaCode:      row.RankingItem.CountryCode,
			Points:        row.RankingItem.TotalPoints,
			Confederation: row.Tag.Text,
		})
	}
	return entries, nil
}

func (c *RankingClient) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; WorldCupPredictions/1.0)")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
