/* standings.go
 * Contains the group standings calculator. Given the four teams of a group, the group
 * matches between them and any disciplinary events, it produces the four standings
 * ordered by the official tiebreak chain:
 *   1. points  2. goal difference  3. goals scored
 *   4. head-to-head points/GD/goals among the tied teams only
 *   5. fair play points (least negative wins)
 *   6. drawing of lots, implemented as lowest team id first and reported to the caller
 * Unplayed matches contribute nothing, so the calculator is valid at any point of the
 * group stage, not just after all six matches.
 * Authors: Zachary Bower
 */

package engine

import (
	"sort"

	"worldcup-predictions/api/shared"
)

// GroupStanding is the derived table row for one team within its group. It is
// recomputed in full on every calculation and never mutated incrementally.
type GroupStanding struct {
	TeamID         int    `bson:"team_id" json:"team_id"`
	TeamName       string `bson:"team_name" json:"team_name"`
	GroupLetter    string `bson:"group_letter" json:"group_letter"`
	Rank           int    `bson:"rank" json:"rank"`
	Played         int    `bson:"played" json:"played"`
	Won            int    `bson:"won" json:"won"`
	Draw           int    `bson:"draw" json:"draw"`
	Lost           int    `bson:"lost" json:"lost"`
	GoalsFor       int    `bson:"goals_for" json:"goals_for"`
	GoalsAgainst   int    `bson:"goals_against" json:"goals_against"`
	GoalDifference int    `bson:"goal_difference" json:"goal_difference"`
	Points         int    `bson:"points" json:"points"`
	FairPlayPoints int    `bson:"fair_play_points" json:"fair_play_points"`
}

// DrawnLot records a set of teams whose relative order could not be decided by
// any tiebreak criterion and was fixed by the documented draw.
type DrawnLot struct {
	Group   string `bson:"group" json:"group"`
	TeamIDs []int  `bson:"team_ids" json:"team_ids"`
}

// StandingsResult holds the ordered standings of one group plus any lots that
// had to be drawn to produce a total order.
type StandingsResult struct {
	Standings []GroupStanding
	DrawnLots []DrawnLot
}

// TieError returns an UnresolvableTieError for the first drawn lot, or nil if
// the tiebreak chain ordered every team. Callers that treat an exhausted chain
// as an error rather than a loggable event can use this.
func (r StandingsResult) TieError() error {
	if len(r.DrawnLots) == 0 {
		return nil
	}
	lot := r.DrawnLots[0]
	return &UnresolvableTieError{Group: lot.Group, TeamIDs: lot.TeamIDs}
}

// Complete reports whether every team in the group has played all three of its
// group matches
func (r StandingsResult) Complete() bool {
	if len(r.Standings) != 4 {
		return false
	}
	for _, s := range r.Standings {
		if s.Played != 3 {
			return false
		}
	}
	return true
}

// CalculateStandings computes the ranked standings of a single group.
// Preconditions: teams contains exactly the 4 teams of the group, matches contains only
// this group's group stage matches and cards only events from those matches. Matches
// without both scores recorded are treated as unplayed.
// Postconditions: returns 4 standings with ranks 1-4 assigned, most qualified first, or
// a MalformedInputError if the caller contract is violated.
func CalculateStandings(groupLetter string, teams []shared.Team, matches []shared.Match, cards []shared.Card) (StandingsResult, error) {
	if len(teams) != 4 {
		return StandingsResult{}, &MalformedInputError{
			Reason: "a group must contain exactly 4 teams",
			Group:  groupLetter,
		}
	}

	rows := make(map[int]*GroupStanding, 4)
	for _, t := range teams {
		if _, dup := rows[t.ID]; dup {
			return StandingsResult{}, &MalformedInputError{
				Reason:  "duplicate team in group",
				Group:   groupLetter,
				TeamIDs: []int{t.ID},
			}
		}
		rows[t.ID] = &GroupStanding{
			TeamID:      t.ID,
			TeamName:    t.Name,
			GroupLetter: groupLetter,
		}
	}

	played := make([]shared.Match, 0, len(matches))
	for _, m := range matches {
		if m.HomeTeamID == nil || m.AwayTeamID == nil {
			continue
		}
		if _, ok := rows[*m.HomeTeamID]; !ok {
			return StandingsResult{}, &MalformedInputError{
				Reason:  "match references a team outside the group",
				Group:   groupLetter,
				TeamIDs: []int{*m.HomeTeamID},
			}
		}
		if _, ok := rows[*m.AwayTeamID]; !ok {
			return StandingsResult{}, &MalformedInputError{
				Reason:  "match references a team outside the group",
				Group:   groupLetter,
				TeamIDs: []int{*m.AwayTeamID},
			}
		}
		if m.Played() {
			played = append(played, m)
			applyResult(rows[*m.HomeTeamID], rows[*m.AwayTeamID], *m.HomeScore, *m.AwayScore)
		}
	}

	for _, c := range cards {
		row, ok := rows[c.TeamID]
		if !ok {
			return StandingsResult{}, &MalformedInputError{
				Reason:  "card references a team outside the group",
				Group:   groupLetter,
				TeamIDs: []int{c.TeamID},
			}
		}
		row.FairPlayPoints += c.Kind.FairPlayPenalty()
	}

	standings := make([]GroupStanding, 0, 4)
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		standings = append(standings, *row)
	}

	lots := sortStandings(standings, played, groupLetter)

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return StandingsResult{Standings: standings, DrawnLots: lots}, nil
}

// applyResult accumulates one played match into both team rows
func applyResult(home, away *GroupStanding, homeScore, awayScore int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Won++
		home.Points += 3
		away.Lost++
	case awayScore > homeScore:
		away.Won++
		away.Points += 3
		home.Lost++
	default:
		home.Draw++
		home.Points++
		away.Draw++
		away.Points++
	}
}

// tableKey is the comparable part of a standing used by criteria 1-3
type tableKey struct {
	points int
	gd     int
	gf     int
}

func keyOf(s GroupStanding) tableKey {
	return tableKey{points: s.Points, gd: s.GoalDifference, gf: s.GoalsFor}
}

func (k tableKey) less(o tableKey) bool {
	if k.points != o.points {
		return k.points > o.points
	}
	if k.gd != o.gd {
		return k.gd > o.gd
	}
	return k.gf > o.gf
}

// sortStandings orders the slice in place by the full tiebreak chain and
// returns any lots that had to be drawn. The head-to-head sub-table is
// recomputed restricted to each tied subset, never taken from the full table.
func sortStandings(standings []GroupStanding, played []shared.Match, groupLetter string) []DrawnLot {
	sort.SliceStable(standings, func(i, j int) bool {
		return keyOf(standings[i]).less(keyOf(standings[j]))
	})

	var lots []DrawnLot

	// Walk runs of teams tied on criteria 1-3 and order each run by the
	// remaining criteria.
	for start := 0; start < len(standings); {
		end := start + 1
		for end < len(standings) && keyOf(standings[end]) == keyOf(standings[start]) {
			end++
		}
		if end-start > 1 {
			lots = append(lots, breakTie(standings[start:end], played, groupLetter)...)
		}
		start = end
	}
	return lots
}

// breakTie orders a subset of teams tied on points, goal difference and goals
// scored. The head-to-head comparison uses only the mutual played matches among
// exactly this subset.
func breakTie(tied []GroupStanding, played []shared.Match, groupLetter string) []DrawnLot {
	inSubset := make(map[int]bool, len(tied))
	for _, s := range tied {
		inSubset[s.TeamID] = true
	}

	h2h := make(map[int]*GroupStanding, len(tied))
	for _, s := range tied {
		h2h[s.TeamID] = &GroupStanding{TeamID: s.TeamID}
	}
	for _, m := range played {
		if !inSubset[*m.HomeTeamID] || !inSubset[*m.AwayTeamID] {
			continue
		}
		applyResult(h2h[*m.HomeTeamID], h2h[*m.AwayTeamID], *m.HomeScore, *m.AwayScore)
	}
	for _, row := range h2h {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	}

	sort.SliceStable(tied, func(i, j int) bool {
		a, b := tied[i], tied[j]
		ka, kb := keyOf(*h2h[a.TeamID]), keyOf(*h2h[b.TeamID])
		if ka != kb {
			return ka.less(kb)
		}
		if a.FairPlayPoints != b.FairPlayPoints {
			return a.FairPlayPoints > b.FairPlayPoints
		}
		// Last resort draw: lowest team id first. Reported below so the
		// caller can log that lots were drawn.
		return a.TeamID < b.TeamID
	})

	var lots []DrawnLot
	for start := 0; start < len(tied); {
		end := start + 1
		for end < len(tied) &&
			keyOf(*h2h[tied[end].TeamID]) == keyOf(*h2h[tied[start].TeamID]) &&
			tied[end].FairPlayPoints == tied[start].FairPlayPoints {
			end++
		}
		if end-start > 1 {
			ids := make([]int, 0, end-start)
			for _, s := range tied[start:end] {
				ids = append(ids, s.TeamID)
			}
			lots = append(lots, DrawnLot{Group: groupLetter, TeamIDs: ids})
		}
		start = end
	}
	return lots
}
