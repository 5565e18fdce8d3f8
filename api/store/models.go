/* models.go
 * Contains the document types stored in MongoDB that are not already defined by the
 * shared or logic packages
 * Authors: Zachary Bower
 */

package store

import (
	"worldcup-predictions/api/external"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// SnapshotDoc wraps the published snapshot with its fixed document id so the
// frontend always reads the same document
type SnapshotDoc struct {
	ID       string         `bson:"_id"`
	Snapshot logic.Snapshot `bson:",inline"`
}

// PredictionHistoryDoc is one archived prediction, saved whenever a match's
// predicted winner or reasoning changes
type PredictionHistoryDoc struct {
	MatchID    string            `bson:"match_id"`
	Prediction shared.Prediction `bson:",inline"`
	SavedAt    int64             `bson:"saved_at"`
}

// TeamStatsDoc caches one team's aggregated statistics. TTL is the unix time the
// cache entry expires at; expired entries are recomputed, not served.
type TeamStatsDoc struct {
	TeamID int                  `bson:"team_id"`
	Stats  logic.TeamStatistics `bson:",inline"`
	TTL    int64                `bson:"ttl"`
}

// RankingDoc holds the most recently fetched FIFA world ranking under a fixed id
type RankingDoc struct {
	ID        string                  `bson:"_id"`
	Entries   []external.RankingEntry `bson:"entries"`
	FetchedAt int64                   `bson:"fetched_at"`
}
