/* matches.go
 * Contains the methods for interacting with the matches collection, including
 * recording full time results against the schedule
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worldcup-predictions/api/shared"
)

// Function used to fetch all matches from the db, sorted by match number
// Postconditions: Returns slice of matches or error message if the operation was unsuccessful
func (s *Store) GetMatches() ([]shared.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "match_number", Value: 1}})
	cursor, err := s.Collections.Matches.Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}
	defer cursor.Close(context.TODO())

	var matches []shared.Match
	if err := cursor.All(context.TODO(), &matches); err != nil {
		return nil, fmt.Errorf("error decoding matches: %w", err)
	}
	return matches, nil
}

// Function used to upsert the full match schedule, keyed by match number
// Preconditions: Receives slice of matches with at least one element
// Postconditions: Updates the data stored in the db, returns error message if the operation was unsuccessful
func (s *Store) UpsertMatches(matches []shared.Match) error {
	if len(matches) == 0 {
		return fmt.Errorf("matches input has length 0, requires at least 1")
	}

	models := make([]mongo.WriteModel, 0, len(matches))
	for _, match := range matches {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"match_number": match.MatchNumber}).
			SetReplacement(match).
			SetUpsert(true))
	}
	if _, err := s.Collections.Matches.BulkWrite(context.TODO(), models); err != nil {
		return fmt.Errorf("failed to upsert matches: %w", err)
	}
	return nil
}

// Function used to record a full time result for one match. The winner id is only
// needed for knockout matches that finished level and went to extra time or penalties
// Preconditions: Receives the match number, both scores and an optional winner team id
// Postconditions: Updates the match document, returns an error if the match does not exist,
// the scores are negative, or the db operation fails
func (s *Store) RecordMatchResult(matchNumber int, homeScore int, awayScore int, winnerTeamID *int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}

	var match shared.Match
	err := s.Collections.Matches.FindOne(context.TODO(), bson.M{"match_number": matchNumber}).Decode(&match)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("no match found with match number %d", matchNumber)
		}
		return fmt.Errorf("error fetching match %d: %w", matchNumber, err)
	}

	if match.StageID.IsKnockout() && homeScore == awayScore && winnerTeamID == nil {
		return fmt.Errorf("drawn knockout match %d requires a winner team id", matchNumber)
	}
	if winnerTeamID != nil && match.HomeTeamID != nil && match.AwayTeamID != nil {
		if *winnerTeamID != *match.HomeTeamID && *winnerTeamID != *match.AwayTeamID {
			return fmt.Errorf("winner team %d did not play in match %d", *winnerTeamID, matchNumber)
		}
	}

	update := bson.M{"$set": bson.M{
		"home_score": homeScore,
		"away_score": awayScore,
	}}
	if winnerTeamID != nil {
		update["$set"].(bson.M)["winner_team_id"] = *winnerTeamID
	}

	if _, err := s.Collections.Matches.UpdateOne(context.TODO(), bson.M{"match_number": matchNumber}, update); err != nil {
		return fmt.Errorf("failed to update match %d: %w", matchNumber, err)
	}
	return nil
}

// Function used to fetch matches that have not been played yet, in kickoff order
// Preconditions: Receives a limit, 0 meaning no limit
// Postconditions: Returns slice of unplayed matches or error message if the operation was unsuccessful
func (s *Store) GetUpcomingMatches(limit int) ([]shared.Match, error) {
	filter := bson.M{"home_score": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.D{{Key: "match_number", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := s.Collections.Matches.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching upcoming matches from db: %w", err)
	}
	defer cursor.Close(context.TODO())

	var matches []shared.Match
	if err := cursor.All(context.TODO(), &matches); err != nil {
		return nil, fmt.Errorf("error decoding upcoming matches: %w", err)
	}
	return matches, nil
}
