/* teams.go
 * Contains the methods for interacting with the teams and cards collections
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worldcup-predictions/api/shared"
)

// Function used to fetch all teams from the db, sorted by team id
// Preconditions: Receives receiver pointer for Store which contains DB information
// Postconditions: Returns slice of teams or error message if the operation was unsuccessful
func (s *Store) GetTeams() ([]shared.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := s.Collections.Teams.Find(context.TODO(), bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams from db: %w", err)
	}
	defer cursor.Close(context.TODO())

	var teams []shared.Team
	if err := cursor.All(context.TODO(), &teams); err != nil {
		return nil, fmt.Errorf("error decoding teams: %w", err)
	}
	return teams, nil
}

// Function used to upsert the full team list, keyed by team id. Used when seeding the
// tournament and when the external sync discovers provider ids for teams
// Preconditions: Receives slice of teams with at least one element
// Postconditions: Updates the data stored in the db, returns error message if the operation was unsuccessful
func (s *Store) UpsertTeams(teams []shared.Team) error {
	if len(teams) == 0 {
		return fmt.Errorf("teams input has length 0, requires at least 1")
	}

	models := make([]mongo.WriteModel, 0, len(teams))
	for _, team := range teams {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": team.ID}).
			SetReplacement(team).
			SetUpsert(true))
	}
	if _, err := s.Collections.Teams.BulkWrite(context.TODO(), models); err != nil {
		return fmt.Errorf("failed to upsert teams: %w", err)
	}
	return nil
}

// Function used to fetch all recorded cards
// Postconditions: Returns slice of cards or error message if the operation was unsuccessful
func (s *Store) GetCards() ([]shared.Card, error) {
	cursor, err := s.Collections.Cards.Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching cards from db: %w", err)
	}
	defer cursor.Close(context.TODO())

	var cards []shared.Card
	if err := cursor.All(context.TODO(), &cards); err != nil {
		return nil, fmt.Errorf("error decoding cards: %w", err)
	}
	return cards, nil
}

// Function used to record one card shown in a match
// Postconditions: Inserts the card, returns error message if the operation was unsuccessful
func (s *Store) RecordCard(card shared.Card) error {
	if card.Kind.FairPlayPenalty() == 0 {
		return fmt.Errorf("unknown card kind %q", card.Kind)
	}
	if _, err := s.Collections.Cards.InsertOne(context.TODO(), card); err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}
