/* team_stats.go
 * Contains the methods for the team statistics cache and the stored FIFA world
 * ranking. Statistics entries carry an expiry time; an expired entry is treated
 * the same as a missing one so callers fall through to the external provider.
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
)

const latestRankingID = "latest"

// Function used to fetch one team's cached statistics
// Postconditions: Returns the statistics and true when a fresh cache entry exists,
// false when the entry is missing or expired, or an error if the lookup fails
func (s *Store) GetCachedTeamStats(teamID int) (logic.TeamStatistics, bool, error) {
	var doc TeamStatsDoc
	err := s.Collections.TeamStats.FindOne(context.TODO(), bson.M{"team_id": teamID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return logic.TeamStatistics{}, false, nil
		}
		return logic.TeamStatistics{}, false, fmt.Errorf("error fetching cached stats for team %d: %w", teamID, err)
	}
	if doc.TTL < time.Now().Unix() {
		return logic.TeamStatistics{}, false, nil
	}
	return doc.Stats, true, nil
}

// Function used to cache one team's statistics for a given duration
// Postconditions: Upserts the cache entry, returns error message if the operation was unsuccessful
func (s *Store) StoreTeamStats(teamID int, stats logic.TeamStatistics, ttl time.Duration) error {
	doc := TeamStatsDoc{
		TeamID: teamID,
		Stats:  stats,
		TTL:    time.Now().Add(ttl).Unix(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collections.TeamStats.ReplaceOne(context.TODO(), bson.M{"team_id": teamID}, doc, opts); err != nil {
		return fmt.Errorf("failed to cache stats for team %d: %w", teamID, err)
	}
	return nil
}

// Function used to store the most recently fetched FIFA world ranking
// Preconditions: Receives slice of ranking entries with at least one element
// Postconditions: Upserts the ranking document, returns error message if the operation was unsuccessful
func (s *Store) StoreRankings(entries []external.RankingEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("rankings input has length 0, requires at least 1")
	}
	doc := RankingDoc{
		ID:        latestRankingID,
		Entries:   entries,
		FetchedAt: time.Now().Unix(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collections.Rankings.ReplaceOne(context.TODO(), bson.M{"_id": latestRankingID}, doc, opts); err != nil {
		return fmt.Errorf("failed to store rankings: %w", err)
	}
	return nil
}

// Function used to fetch the stored FIFA world ranking
// Postconditions: Returns the ranking entries, or an empty slice if none are stored
func (s *Store) GetRankings() ([]external.RankingEntry, error) {
	var doc RankingDoc
	err := s.Collections.Rankings.FindOne(context.TODO(), bson.M{"_id": latestRankingID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching rankings: %w", err)
	}
	return doc.Entries, nil
}
