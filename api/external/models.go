/* models.go
 * Contains the wire types for the external data providers: the API-Football v3
 * endpoints used for recent fixtures, per-fixture statistics and bookmaker-style
 * predictions, and the FIFA world ranking JSON feed
 * Authors: Zachary Bower
 */

package external

// apiFootballEnvelope is the common wrapper API-Football puts around every response
type apiFootballEnvelope[T any] struct {
	Errors   any `json:"errors"`
	Results  int `json:"results"`
	Response T   `json:"response"`
}

type fixtureEntry struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	Teams struct {
		Home fixtureTeam `json:"home"`
		Away fixtureTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixtureTeam struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type statisticsEntry struct {
	Team       fixtureTeam `json:"team"`
	Statistics []struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	} `json:"statistics"`
}

type predictionEntry struct {
	Predictions struct {
		Winner struct {
			Name string `json:"name"`
		} `json:"winner"`
		Advice  string `json:"advice"`
		Percent struct {
			Home string `json:"home"`
			Draw string `json:"draw"`
			Away string `json:"away"`
		} `json:"percent"`
	} `json:"predictions"`
}

// RankingEntry is one row of the FIFA world ranking
type RankingEntry struct {
	Rank          int     `json:"rank" bson:"rank"`
	TeamName      string  `json:"team_name" bson:"team_name"`
	FifaCode      string  `json:"fifa_code" bson:"fifa_code"`
	Points        float64 `json:"points" bson:"points"`
	Confederation string  `json:"confederation" bson:"confederation"`
}

// rankingOverview is the shape of the inside.fifa.com ranking API response
type rankingOverview struct {
	Rankings []struct {
		RankingItem struct {
			Rank        int     `json:"rank"`
			Name        string  `json:"name"`
			CountryCode string  `json:"countryCode"`
			TotalPoints float64 `json:"totalPoints"`
		} `json:"rankingItem"`
		Tag struct {
			Text string `json:"text"`
		} `json:"tag"`
	} `json:"rankings"`
}

// nextData is the subset of the ranking page's embedded JSON needed to find the
// id of the most recent ranking publication
type nextData struct {
	Props struct {
		PageProps struct {
			PageData struct {
				Ranking struct {
					Dates []struct {
						ID string `json:"id"`
					} `json:"dates"`
				} `json:"ranking"`
			} `json:"pageData"`
		} `json:"pageProps"`
	} `json:"props"`
}
