/* bot.go
 * Contains logic used for creating the bot. Requires a discord bot token and a backend,
 * both of which are passed in from main.go. The backend is an interface so handler tests
 * can substitute a mock.
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"strings"

	apiPkg "worldcup-predictions/api/api"
	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// Backend is the slice of the API facade the bot commands use
type Backend interface {
	UpdatePredictions(ctx context.Context, force bool) (apiPkg.UpdateReport, error)
	GetStandings() (map[string][]engine.GroupStanding, error)
	GetBracket() ([]engine.BracketMatch, error)
	GetLatestSnapshot() (logic.Snapshot, error)
	GetTeams() ([]shared.Team, error)
	GetUpcomingMatches(limit int) ([]shared.Match, error)
}

type Bot struct {
	BotToken string
	APIPtr   Backend
}

func NewBot(botToken string, apiPtr Backend) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}
