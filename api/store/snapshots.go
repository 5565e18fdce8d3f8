/* snapshots.go
 * Contains the methods for publishing the derived tournament snapshot and archiving
 * prediction history. The frontend always reads the snapshot document with id "latest";
 * history entries are only written when a match's predicted winner or reasoning changed
 * since the last archived entry, so repeated pipeline runs don't flood the collection.
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

	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

const latestSnapshotID = "latest"

// Function used to publish the derived snapshot, replacing the previous one
// Postconditions: Upserts the "latest" snapshot document, returns error message if the
// operation was unsuccessful
func (s *Store) PublishSnapshot(snapshot logic.Snapshot) error {
	doc := SnapshotDoc{ID: latestSnapshotID, Snapshot: snapshot}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collections.Snapshots.ReplaceOne(context.TODO(), bson.M{"_id": latestSnapshotID}, doc, opts); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Function used to fetch the most recently published snapshot
// Postconditions: Returns the snapshot, or an error if none has been published yet
func (s *Store) GetLatestSnapshot() (logic.Snapshot, error) {
	var doc SnapshotDoc
	err := s.Collections.Snapshots.FindOne(context.TODO(), bson.M{"_id": latestSnapshotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return logic.Snapshot{}, fmt.Errorf("no snapshot has been published yet")
		}
		return logic.Snapshot{}, fmt.Errorf("error fetching snapshot: %w", err)
	}
	return doc.Snapshot, nil
}

// Function used to decide whether a prediction is worth archiving. A prediction is
// archived when there is no history for its match yet, or when the most recent entry
// differs in winner or reasoning
// Postconditions: Returns true if the prediction should be saved, or an error if the
// lookup fails
func (s *Store) ShouldSavePredictionHistory(matchID string, prediction shared.Prediction) (bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "saved_at", Value: -1}})
	var last PredictionHistoryDoc
	err := s.Collections.PredictionHistory.FindOne(context.TODO(), bson.M{"match_id": matchID}, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return true, nil
		}
		return false, fmt.Errorf("error checking prediction history for %s: %w", matchID, err)
	}
	changed := last.Prediction.Winner != prediction.Winner || last.Prediction.Reasoning != prediction.Reasoning
	return changed, nil
}

// Function used to archive one prediction
// Postconditions: Inserts a history document stamped with the current time, returns
// error message if the operation was unsuccessful
func (s *Store) SavePredictionHistory(matchID string, prediction shared.Prediction) error {
	doc := PredictionHistoryDoc{
		MatchID:    matchID,
		Prediction: prediction,
		SavedAt:    time.Now().Unix(),
	}
	if _, err := s.Collections.PredictionHistory.InsertOne(context.TODO(), doc); err != nil {
		return fmt.Errorf("failed to save prediction history for %s: %w", matchID, err)
	}
	return nil
}
