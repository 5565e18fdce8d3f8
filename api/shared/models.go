/* models.go
 * This file contains the structs and helper functions that are shared between sub packages.
 * Field names use the snake_case wire convention (goals_for, home_team_id, ...) so that
 * documents published for the frontend stay compatible with the existing Firestore layout.
 * Authors: Zachary Bower
 */

package shared

import "fmt"

// StageID identifies a tournament phase. The seven stages are ordered, so
// comparisons like stage >= StageRoundOf32 select all knockout matches.
type StageID int

const (
	StageGroup StageID = iota + 1
	StageRoundOf32
	StageRoundOf16
	StageQuarterFinal
	StageSemiFinal
	StageThirdPlacePlayoff
	StageFinal
)

// String returns the human readable stage name
func (s StageID) String() string {
	switch s {
	case StageGroup:
		return "Group Stage"
	case StageRoundOf32:
		return "Round of 32"
	case StageRoundOf16:
		return "Round of 16"
	case StageQuarterFinal:
		return "Quarter Final"
	case StageSemiFinal:
		return "Semi Final"
	case StageThirdPlacePlayoff:
		return "Third Place Playoff"
	case StageFinal:
		return "Final"
	default:
		return fmt.Sprintf("Unknown Stage (%d)", int(s))
	}
}

// IsKnockout reports whether the stage is part of the knockout phase
func (s StageID) IsKnockout() bool {
	return s >= StageRoundOf32 && s <= StageFinal
}

// Team represents a national team in the tournament. Placeholder teams are
// unresolved qualification slots (e.g. an undecided playoff winner) and are
// excluded from statistics aggregation.
type Team struct {
	ID            int    `bson:"id" json:"id"`
	Name          string `bson:"team_name" json:"team_name"`
	FifaCode      string `bson:"fifa_code" json:"fifa_code"`
	GroupLetter   string `bson:"group_letter" json:"group_letter"`
	IsPlaceholder bool   `bson:"is_placeholder" json:"is_placeholder"`
	APIFootballID *int   `bson:"api_football_id,omitempty" json:"api_football_id,omitempty"`
}

// Match represents a fixture in the tournament. Team references and scores are
// nil until they become knowable. MatchNumber is globally unique (1..104) and
// defines the default chronological order. WinnerTeamID is only set out-of-band
// for knockout matches decided after extra time or penalties; for matches with
// a decisive scoreline it is redundant.
type Match struct {
	ID           int     `bson:"id" json:"id"`
	MatchNumber  int     `bson:"match_number" json:"match_number"`
	StageID      StageID `bson:"stage_id" json:"stage_id"`
	HomeTeamID   *int    `bson:"home_team_id,omitempty" json:"home_team_id,omitempty"`
	AwayTeamID   *int    `bson:"away_team_id,omitempty" json:"away_team_id,omitempty"`
	HomeScore    *int    `bson:"home_score,omitempty" json:"home_score,omitempty"`
	AwayScore    *int    `bson:"away_score,omitempty" json:"away_score,omitempty"`
	WinnerTeamID *int    `bson:"winner_team_id,omitempty" json:"winner_team_id,omitempty"`
	Venue        string  `bson:"venue" json:"venue"`
	KickoffAt    string  `bson:"kickoff_at" json:"kickoff_at"`
	MatchLabel   string  `bson:"match_label" json:"match_label"`
}

// Played reports whether both scores have been recorded for this match
func (m *Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// DecidedWinnerID returns the id of the team that won this match and true if a
// winner is decided. A drawn knockout match without an out-of-band winner
// (penalty shootout not yet recorded) has no decided winner.
func (m *Match) DecidedWinnerID() (int, bool) {
	if !m.Played() || m.HomeTeamID == nil || m.AwayTeamID == nil {
		return 0, false
	}
	if *m.HomeScore > *m.AwayScore {
		return *m.HomeTeamID, true
	}
	if *m.AwayScore > *m.HomeScore {
		return *m.AwayTeamID, true
	}
	if m.WinnerTeamID != nil {
		return *m.WinnerTeamID, true
	}
	return 0, false
}

// DecidedLoserID returns the id of the team that lost this match and true if a
// winner is decided
func (m *Match) DecidedLoserID() (int, bool) {
	winner, ok := m.DecidedWinnerID()
	if !ok {
		return 0, false
	}
	if *m.HomeTeamID == winner {
		return *m.AwayTeamID, true
	}
	return *m.HomeTeamID, true
}

// CardKind classifies a disciplinary event for fair play scoring
type CardKind string

const (
	CardYellow       CardKind = "yellow"
	CardSecondYellow CardKind = "second_yellow"
	CardIndirectRed  CardKind = "indirect_red"
	CardDirectRed    CardKind = "direct_red"
)

// FairPlayPenalty returns the fair play point deduction for a card kind.
// A second yellow is reported by the feed instead of another plain yellow, so
// the values are absolute, not cumulative per player.
func (k CardKind) FairPlayPenalty() int {
	switch k {
	case CardYellow:
		return -1
	case CardSecondYellow, CardIndirectRed:
		return -3
	case CardDirectRed:
		return -4
	default:
		return 0
	}
}

// Card is a single disciplinary event applied to the offending team
type Card struct {
	MatchID int      `bson:"match_id" json:"match_id"`
	TeamID  int      `bson:"team_id" json:"team_id"`
	Kind    CardKind `bson:"kind" json:"kind"`
}

// User identifies a bot user requesting or setting data
type User struct {
	UserID   string
	Username string
}
