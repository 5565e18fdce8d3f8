/* handlers_test.go
 * Contains unit tests for the bot command handlers using mock session and backend
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiPkg "worldcup-predictions/api/api"
	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// mockBackend implements Backend with canned data and error injection
type mockBackend struct {
	Standings map[string][]engine.GroupStanding
	Bracket   []engine.BracketMatch
	Snapshot  *logic.Snapshot
	Teams     []shared.Team
	Upcoming  []shared.Match

	StandingsErr error
	UpdateErr    error
	Skipped      bool
}

func (m *mockBackend) UpdatePredictions(ctx context.Context, force bool) (apiPkg.UpdateReport, error) {
	if m.UpdateErr != nil {
		return apiPkg.UpdateReport{}, m.UpdateErr
	}
	if m.Skipped {
		return apiPkg.UpdateReport{Skipped: true}, nil
	}
	return apiPkg.UpdateReport{
		Snapshot: logic.Snapshot{
			Groups:  map[string][]engine.GroupStanding{"A": nil},
			Bracket: make([]engine.BracketMatch, 2),
		},
		Predictions: 2,
		StepErrors:  []string{"stats for Dorne failed"},
	}, nil
}

func (m *mockBackend) GetStandings() (map[string][]engine.GroupStanding, error) {
	if m.StandingsErr != nil {
		return nil, m.StandingsErr
	}
	return m.Standings, nil
}

func (m *mockBackend) GetBracket() ([]engine.BracketMatch, error) {
	return m.Bracket, nil
}

func (m *mockBackend) GetLatestSnapshot() (logic.Snapshot, error) {
	if m.Snapshot == nil {
		return logic.Snapshot{}, fmt.Errorf("no snapshot has been published yet")
	}
	return *m.Snapshot, nil
}

func (m *mockBackend) GetTeams() ([]shared.Team, error) {
	return m.Teams, nil
}

func (m *mockBackend) GetUpcomingMatches(limit int) ([]shared.Match, error) {
	return m.Upcoming, nil
}

func newTestBot(backend *mockBackend) *Bot {
	return &Bot{BotToken: "test-token", APIPtr: backend}
}

func testMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: "channel_1",
			Author:    &discordgo.User{ID: "user_1", Username: "tester"},
		},
	}
}

func groupAStandings() map[string][]engine.GroupStanding {
	return map[string][]engine.GroupStanding{
		"A": {
			{TeamID: 1, TeamName: "Avalon", GroupLetter: "A", Rank: 1, Played: 3, Won: 3, GoalsFor: 7, GoalsAgainst: 2, GoalDifference: 5, Points: 9},
			{TeamID: 2, TeamName: "Borduria", GroupLetter: "A", Rank: 2, Played: 3, Won: 2, Lost: 1, GoalsFor: 4, GoalsAgainst: 2, GoalDifference: 2, Points: 6},
			{TeamID: 3, TeamName: "Camelot", GroupLetter: "A", Rank: 3, Played: 3, Won: 1, Lost: 2, GoalsFor: 2, GoalsAgainst: 3, GoalDifference: -1, Points: 3},
			{TeamID: 4, TeamName: "Dorne", GroupLetter: "A", Rank: 4, Played: 3, Lost: 3, GoalsFor: 1, GoalsAgainst: 7, GoalDifference: -6, Points: 0},
		},
	}
}

func TestNewBot_RequiresToken(t *testing.T) {
	_, err := NewBot("", &mockBackend{})
	assert.Error(t, err)

	b, err := NewBot("token", &mockBackend{})
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestHelpHandler(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("$help"), "bot_id")

	require.Len(t, session.SentMessages, 1)
	assert.Contains(t, session.GetLastMessage().Content, "$standings")
	assert.Contains(t, session.GetLastMessage().Content, "$bracket")
}

func TestStandingsHandler_ByGroupLetter(t *testing.T) {
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{Standings: groupAStandings()})

	bot.newMessageHandler(session, testMessage("$standings a"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Group A")
	assert.Contains(t, content, "Avalon")
	assert.Contains(t, content, "Dorne")
}

func TestStandingsHandler_ByTeamName(t *testing.T) {
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{
		Standings: groupAStandings(),
		Teams: []shared.Team{
			{ID: 1, Name: "Avalon", FifaCode: "AVA", GroupLetter: "A"},
			{ID: 5, Name: "Elbonia", FifaCode: "ELB", GroupLetter: "B"},
		},
	})

	// Fuzzy match on a misspelled name still finds the team's group
	bot.newMessageHandler(session, testMessage("$standings avaln"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Group A")
}

func TestStandingsHandler_Unknown(t *testing.T) {
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{Standings: groupAStandings()})

	bot.newMessageHandler(session, testMessage("$standings Zzz"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "No group or team found")
}

func TestStandingsHandler_MissingArgument(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("$standings"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "Usage")
}

func TestBracketHandler(t *testing.T) {
	one := 1
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{Bracket: []engine.BracketMatch{
		{
			MatchNumber: 74,
			StageID:     shared.StageRoundOf32,
			Home:        engine.SideView{TeamID: &one, TeamName: "Avalon", Label: "Winner A", Resolved: true},
			Away:        engine.SideView{Label: "3rd Place C/D/E", Resolved: false},
		},
		{
			MatchNumber: 104,
			StageID:     shared.StageFinal,
			Home:        engine.SideView{Label: "Winner Match 101", Resolved: false},
			Away:        engine.SideView{Label: "Winner Match 102", Resolved: false},
		},
	}})

	bot.newMessageHandler(session, testMessage("$bracket"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Round of 32")
	assert.Contains(t, content, "Match 74: Avalon vs 3rd Place C/D/E")
	assert.Contains(t, content, "Final")
	assert.Contains(t, content, "Winner Match 101")
}

func TestBracketHandler_Empty(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("$bracket"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "No knockout matches")
}

func TestPredictionsHandler(t *testing.T) {
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{Snapshot: &logic.Snapshot{
		UpdatedAt: "2026-06-12T08:00:00Z",
		Predictions: []shared.MatchPrediction{
			{MatchID: "match_74", MatchNumber: 74, Prediction: shared.Prediction{
				Winner: "Avalon", WinProbability: 0.65, PredictedHomeScore: 2, PredictedAwayScore: 1,
			}},
		},
	}})

	bot.newMessageHandler(session, testMessage("$predictions"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Match 74: Avalon (65%) 2-1")
}

func TestPredictionsHandler_NoSnapshot(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("$predictions"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "No predictions published yet")
}

func TestUpcomingMatchesHandler(t *testing.T) {
	session := NewMockDiscordSession()
	bot := newTestBot(&mockBackend{Upcoming: []shared.Match{
		{MatchNumber: 74, StageID: shared.StageRoundOf32, MatchLabel: "Winner A vs 3rd Place C/D/E",
			KickoffAt: "2026-06-29T18:00:00Z", Venue: "MetLife Stadium"},
	}})

	bot.newMessageHandler(session, testMessage("$upcoming"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Match 74")
	assert.Contains(t, content, "MetLife Stadium")
}

func TestRefreshHandler(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("$refresh"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Snapshot updated")
	assert.Contains(t, content, "2 predictions")
	assert.Contains(t, content, "1 steps degraded")
}

func TestRefreshHandler_Skipped(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{Skipped: true}).newMessageHandler(session, testMessage("$refresh"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "snapshot unchanged")
}

func TestNewMessageHandler_IgnoresOwnMessages(t *testing.T) {
	session := NewMockDiscordSession()
	message := testMessage("$help")
	message.Author.ID = "bot_id"

	newTestBot(&mockBackend{}).newMessageHandler(session, message, "bot_id")
	assert.Empty(t, session.SentMessages)
}

func TestNewMessageHandler_IgnoresUnknownCommands(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(&mockBackend{}).newMessageHandler(session, testMessage("hello there"), "bot_id")
	assert.Empty(t, session.SentMessages)
}

func predictBackend() *mockBackend {
	home := 1
	away := 2
	return &mockBackend{
		Teams: []shared.Team{
			{ID: 1, Name: "Avalon", FifaCode: "AVA", GroupLetter: "A"},
			{ID: 2, Name: "Borduria", FifaCode: "BOR", GroupLetter: "A"},
		},
		Upcoming: []shared.Match{
			{MatchNumber: 74, StageID: shared.StageRoundOf32, HomeTeamID: &home, AwayTeamID: &away},
		},
		Snapshot: &logic.Snapshot{
			Predictions: []shared.MatchPrediction{
				{MatchID: "match_74", MatchNumber: 74, Prediction: shared.Prediction{
					Winner: "Avalon", WinProbability: 0.6, PredictedHomeScore: 2, PredictedAwayScore: 1,
					Reasoning: "Better recent form and higher xG",
				}},
			},
		},
	}
}

func TestPredictHandler(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(predictBackend()).newMessageHandler(session, testMessage("$predict avalon borduria"), "bot_id")

	content := session.GetLastMessage().Content
	assert.Contains(t, content, "Match 74, Avalon vs Borduria")
	assert.Contains(t, content, "Avalon wins (60%)")
	assert.Contains(t, content, "predicted 2-1")
	assert.Contains(t, content, "Better recent form")
}

func TestPredictHandler_ReversedOrder(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(predictBackend()).newMessageHandler(session, testMessage("$predict Borduria Avalon"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "Avalon wins")
}

func TestPredictHandler_UnknownTeam(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(predictBackend()).newMessageHandler(session, testMessage("$predict Avalon Zembla"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "No team found matching 'Zembla'")
}

func TestPredictHandler_NoFixture(t *testing.T) {
	backend := predictBackend()
	backend.Upcoming = nil
	session := NewMockDiscordSession()
	newTestBot(backend).newMessageHandler(session, testMessage("$predict Avalon Borduria"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "no unplayed fixture")
}

func TestPredictHandler_NoSnapshot(t *testing.T) {
	backend := predictBackend()
	backend.Snapshot = nil
	session := NewMockDiscordSession()
	newTestBot(backend).newMessageHandler(session, testMessage("$predict Avalon Borduria"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "No predictions published yet")
}

func TestPredictHandler_WrongArgCount(t *testing.T) {
	session := NewMockDiscordSession()
	newTestBot(predictBackend()).newMessageHandler(session, testMessage("$predict Avalon"), "bot_id")
	assert.Contains(t, session.GetLastMessage().Content, "Usage: `$predict team1 team2`")
}
