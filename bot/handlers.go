/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface.
 * Each $command renders one view of the derived tournament data.
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"

	"worldcup-predictions/api/engine"
	"worldcup-predictions/api/logic"
	"worldcup-predictions/api/shared"
)

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("World Cup 2026 Predictions Bot\n")
	res.WriteString("`$standings group`: shows the current table of a group (e.g. `$standings A`)\n")
	res.WriteString("`$standings team`: shows the table of the group a team plays in. There is fuzzy matching on names, so `$standings brasil` works. Names with two or more words need to be encased in \" (e.g. \"Saudi Arabia\")\n")
	res.WriteString("`$bracket`: shows the knockout bracket with every slot that can already be resolved\n")
	res.WriteString("`$predictions`: shows the AI predictions from the latest published snapshot\n")
	res.WriteString("`$predict team1 team2`: shows the prediction for the fixture between two teams (e.g. `$predict France Brazil`)\n")
	res.WriteString("`$upcoming`: shows the next scheduled matches with confirmed teams\n")
	res.WriteString("`$refresh`: recomputes standings, bracket and predictions from the latest results\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// standingsHandler handles the $standings command with a DiscordSession interface.
// The argument is either a group letter or a team name to look the group up by.
func (b *Bot) standingsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	args, _ := spaceSplitter.Split(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$standings group-letter` or `$standings team-name`")
		return
	}
	query := strings.Trim(strings.Join(args[1:], " "), "\"")

	standings, err := b.APIPtr.GetStandings()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the standings")
		return
	}

	letter := strings.ToUpper(query)
	if len(letter) != 1 || standings[letter] == nil {
		// Not a group letter, try resolving it as a team name
		teams, err := b.APIPtr.GetTeams()
		if err != nil {
			log.Println(err)
			session.ChannelMessageSend(message.ChannelID, "An error occured getting the teams list")
			return
		}
		team, ok := logic.FindTeam(query, teams)
		if !ok || team.GroupLetter == "" {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No group or team found matching '%s'", query))
			return
		}
		letter = team.GroupLetter
	}

	group, ok := standings[letter]
	if !ok {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No standings available for group %s yet", letter))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Group %s:\n```\n", letter))
	res.WriteString("   Team            P  W  D  L  GF GA GD Pts\n")
	for _, s := range group {
		res.WriteString(fmt.Sprintf("%d. %-15s %-2d %-2d %-2d %-2d %-2d %-2d %+-2d %d\n",
			s.Rank, s.TeamName, s.Played, s.Won, s.Draw, s.Lost, s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points))
	}
	res.WriteString("```")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// bracketHandler handles the $bracket command with a DiscordSession interface
func (b *Bot) bracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	bracket, err := b.APIPtr.GetBracket()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the bracket")
		return
	}
	if len(bracket) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No knockout matches scheduled yet")
		return
	}

	var res strings.Builder
	var stage shared.StageID
	for _, m := range bracket {
		if m.StageID != stage {
			res.WriteString(fmt.Sprintf("**%s**\n", m.StageID))
			stage = m.StageID
		}
		res.WriteString(fmt.Sprintf("Match %d: %s vs %s\n", m.MatchNumber, sideName(m.Home), sideName(m.Away)))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// sideName renders one bracket side: the team name once resolved, the symbolic
// label until then
func sideName(side engine.SideView) string {
	if side.Resolved {
		return side.TeamName
	}
	return side.Label
}

// predictionsHandler handles the $predictions command with a DiscordSession interface
func (b *Bot) predictionsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	snapshot, err := b.APIPtr.GetLatestSnapshot()
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "No predictions published yet, run `$refresh` first")
		return
	}
	if len(snapshot.Predictions) == 0 {
		session.ChannelMessageSend(message.ChannelID, "The latest snapshot contains no predictions")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Predictions (updated %s):\n", snapshot.UpdatedAt))
	for _, p := range snapshot.Predictions {
		res.WriteString(fmt.Sprintf("Match %d: %s (%.0f%%) %d-%d\n",
			p.MatchNumber, p.Winner, p.WinProbability*100, p.PredictedHomeScore, p.PredictedAwayScore))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// predictHandler handles the $predict command with a DiscordSession interface.
// Takes two team names, finds their unplayed fixture and replies with the
// published prediction for it.
func (b *Bot) predictHandler(session DiscordSession, message *discordgo.MessageCreate) {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	args, _ := spaceSplitter.Split(message.Content)
	if len(args) != 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$predict team1 team2`. Names with two or more words need to be encased in \"")
		return
	}

	teams, err := b.APIPtr.GetTeams()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the teams list")
		return
	}

	var sides [2]shared.Team
	for i, arg := range args[1:] {
		team, ok := logic.FindTeam(strings.Trim(arg, "\""), teams)
		if !ok {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No team found matching '%s'", strings.Trim(arg, "\"")))
			return
		}
		sides[i] = team
	}

	matches, err := b.APIPtr.GetUpcomingMatches(0)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting upcoming matches")
		return
	}

	matchNumber := 0
	for _, m := range matches {
		if m.HomeTeamID == nil || m.AwayTeamID == nil {
			continue
		}
		if (*m.HomeTeamID == sides[0].ID && *m.AwayTeamID == sides[1].ID) ||
			(*m.HomeTeamID == sides[1].ID && *m.AwayTeamID == sides[0].ID) {
			matchNumber = m.MatchNumber
			break
		}
	}
	if matchNumber == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s and %s have no unplayed fixture against each other yet", sides[0].Name, sides[1].Name))
		return
	}

	snapshot, err := b.APIPtr.GetLatestSnapshot()
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, "No predictions published yet, run `$refresh` first")
		return
	}
	for _, p := range snapshot.Predictions {
		if p.MatchNumber == matchNumber {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Match %d, %s vs %s: %s wins (%.0f%%), predicted %d-%d\n%s",
				matchNumber, sides[0].Name, sides[1].Name, p.Winner, p.WinProbability*100, p.PredictedHomeScore, p.PredictedAwayScore, p.Reasoning))
			return
		}
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No prediction for match %d in the latest snapshot, run `$refresh`", matchNumber))
}

// upcomingMatchesHandler handles the $upcoming command with a DiscordSession interface
func (b *Bot) upcomingMatchesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	matches, err := b.APIPtr.GetUpcomingMatches(10)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting upcoming matches")
		return
	}
	if len(matches) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No upcoming matches")
		return
	}

	var res strings.Builder
	res.WriteString("Upcoming matches:\n")
	for _, m := range matches {
		res.WriteString(fmt.Sprintf("Match %d (%s): %s, %s at %s\n",
			m.MatchNumber, m.StageID, m.MatchLabel, m.KickoffAt, m.Venue))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// refreshHandler handles the $refresh command with a DiscordSession interface
func (b *Bot) refreshHandler(session DiscordSession, message *discordgo.MessageCreate) {
	report, err := b.APIPtr.UpdatePredictions(context.Background(), false)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured refreshing the predictions")
		return
	}

	if report.Skipped {
		session.ChannelMessageSend(message.ChannelID, "No new results since the last update, snapshot unchanged")
		return
	}

	res := fmt.Sprintf("Snapshot updated: %d groups, %d bracket matches, %d predictions",
		len(report.Snapshot.Groups), len(report.Snapshot.Bracket), report.Predictions)
	if len(report.StepErrors) > 0 {
		res += fmt.Sprintf(" (%d steps degraded)", len(report.StepErrors))
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$standings"):
		b.standingsHandler(session, message)

	case startsWith(message.Content, "$bracket"):
		b.bracketHandler(session, message)

	case startsWith(message.Content, "$predictions"):
		b.predictionsHandler(session, message)

	case startsWith(message.Content, "$predict"):
		b.predictHandler(session, message)

	case startsWith(message.Content, "$upcoming"):
		b.upcomingMatchesHandler(session, message)

	case startsWith(message.Content, "$refresh"):
		b.refreshHandler(session, message)
	}
}
