/* snapshot.go
 * Contains the tournament snapshot: the single document the frontend renders groups,
 * matches and the knockout bracket from. The snapshot is derived in full from an input
 * snapshot of teams, matches and cards; InputHash is a content hash of that input so
 * the caller can skip recomputation and publishing when nothing changed.
 * Authors: Zachary Bower
 */

package logic

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/shared"
)

// Snapshot is the published tournament document
type Snapshot struct {
	Groups               map[string][]engine.GroupStanding `bson:"groups" json:"groups"`
	ThirdPlaceQualifiers []engine.ThirdPlaceQualifier      `bson:"third_place_qualifiers,omitempty" json:"third_place_qualifiers,omitempty"`
	Bracket              []engine.BracketMatch             `bson:"bracket" json:"bracket"`
	Predictions          []shared.MatchPrediction          `bson:"predictions" json:"predictions"`
	AISummary            string                            `bson:"ai_summary" json:"ai_summary"`
	Errors               []string                          `bson:"errors,omitempty" json:"errors,omitempty"`
	UpdatedAt            string                            `bson:"updated_at" json:"updated_at"`
	InputHash            string                            `bson:"input_hash" json:"input_hash"`
}

// BuildSnapshot assembles the published document from the derived pieces.
// Preconditions: groups holds one StandingsResult per group letter; bracket and
// predictions may be empty on partial pipeline failures, with the step errors listed
// in stepErrors.
func BuildSnapshot(
	groups map[string]engine.StandingsResult,
	thirdPlace *engine.ThirdPlaceResult,
	bracket []engine.BracketMatch,
	predictions []shared.MatchPrediction,
	inputHash string,
	stepErrors []string,
) Snapshot {
	snapshot := Snapshot{
		Groups:      make(map[string][]engine.GroupStanding, len(groups)),
		Bracket:     bracket,
		Predictions: predictions,
		AISummary:   fmt.Sprintf("Generated %d predictions for World Cup 2026", len(predictions)),
		Errors:      stepErrors,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
		InputHash:   inputHash,
	}
	for letter, res := range groups {
		snapshot.Groups[letter] = res.Standings
	}
	if thirdPlace != nil {
		snapshot.ThirdPlaceQualifiers = thirdPlace.Qualifiers
	}
	return snapshot
}

// inputDigest is the canonical serialization the content hash is computed over
type inputDigest struct {
	Teams   []shared.Team  `json:"teams"`
	Matches []shared.Match `json:"matches"`
	Cards   []shared.Card  `json:"cards"`
}

// ComputeInputHash returns a hex SHA-256 over the canonical JSON serialization
// of the input snapshot. Identical inputs always hash identically, so callers
// can key caches on the result and invalidate explicitly.
func ComputeInputHash(teams []shared.Team, matches []shared.Match, cards []shared.Card) string {
	payload, err := json.Marshal(inputDigest{Teams: teams, Matches: matches, Cards: cards})
	if err != nil {
		// Marshalling plain structs cannot fail; keep the signature simple.
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
