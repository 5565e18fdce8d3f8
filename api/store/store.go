/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split
 * across files by collection: teams, matches, snapshots and team_stats. Each of these files
 * contain methods for interacting with that part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Teams             *mongo.Collection
		Matches           *mongo.Collection
		Cards             *mongo.Collection
		Snapshots         *mongo.Collection
		PredictionHistory *mongo.Collection
		TeamStats         *mongo.Collection
		Rankings          *mongo.Collection
	}
}

// Function for initialising Store. Initialises the db connection and sets collection values
// Preconditions: Receives strings containing the database name and mongo connection URI
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Teams = db.Collection("teams")
	s.Collections.Matches = db.Collection("matches")
	s.Collections.Cards = db.Collection("cards")
	s.Collections.Snapshots = db.Collection("snapshots")
	s.Collections.PredictionHistory = db.Collection("prediction_history")
	s.Collections.TeamStats = db.Collection("team_stats")
	s.Collections.Rankings = db.Collection("rankings")
	return s, nil
}
