/* bracket.go
 * Contains the knockout bracket resolver. It walks the fixed bracket template and
 * substitutes the symbolic side labels with concrete teams wherever the dependency
 * (a completed group, the finished third place ranking, or a decided prior match) is
 * satisfied. The resolver is a pure function over its input snapshot: it never mutates
 * the match records and resolving with a superset of completed matches only ever adds
 * concrete sides, never removes them.
 * Authors: Zachary Bower
 */

package engine

import (
	"fmt"
	"sort"

	"worldcup-predictions/api/shared"
)

// SideView is one side of a knockout match in the resolved bracket view:
// either a concrete team or a still symbolic label.
type SideView struct {
	TeamID   *int   `bson:"team_id,omitempty" json:"team_id,omitempty"`
	TeamName string `bson:"team_name,omitempty" json:"team_name,omitempty"`
	Label    string `bson:"label" json:"label"`
	Resolved bool   `bson:"resolved" json:"resolved"`
}

// BracketMatch is a knockout match annotated with the current resolution state
// of both sides
type BracketMatch struct {
	MatchNumber int            `bson:"match_number" json:"match_number"`
	StageID     shared.StageID `bson:"stage_id" json:"stage_id"`
	Home        SideView       `bson:"home" json:"home"`
	Away        SideView       `bson:"away" json:"away"`
	Venue       string         `bson:"venue" json:"venue"`
	KickoffAt   string         `bson:"kickoff_at" json:"kickoff_at"`
}

// BracketInput is the immutable snapshot the resolver works over. ThirdPlace is
// nil until the third place ranking has been computed (all groups complete).
type BracketInput struct {
	Teams      []shared.Team
	Matches    []shared.Match
	Groups     map[string]StandingsResult
	ThirdPlace *ThirdPlaceResult
}

// ResolveBracket produces the current bracket view for all knockout matches.
// Preconditions: Matches holds the full tournament fixture set and Groups one entry per
// group letter present in the template.
// Postconditions: returns one BracketMatch per knockout match ordered by match number,
// or a DanglingBracketError if the template references a group or match that does not
// exist in the snapshot.
func ResolveBracket(in BracketInput) ([]BracketMatch, error) {
	teamsByID := make(map[int]shared.Team, len(in.Teams))
	for _, t := range in.Teams {
		teamsByID[t.ID] = t
	}
	matchesByNumber := make(map[int]shared.Match, len(in.Matches))
	for _, m := range in.Matches {
		matchesByNumber[m.MatchNumber] = m
	}

	var thirdPlaceByMatch map[int]string
	if in.ThirdPlace != nil {
		assignment, err := assignThirdPlaceSlots(in.Matches, in.ThirdPlace.Qualifiers)
		if err != nil {
			return nil, err
		}
		thirdPlaceByMatch = assignment
	}

	var view []BracketMatch
	for _, m := range in.Matches {
		if !m.StageID.IsKnockout() {
			continue
		}

		homeLabel, awayLabel, ok := SplitMatchLabel(m.MatchLabel)
		if !ok && (m.HomeTeamID == nil || m.AwayTeamID == nil) {
			return nil, &DanglingBracketError{
				MatchNumber: m.MatchNumber,
				Label:       m.MatchLabel,
				Reason:      "match label is not of the form \"<home> vs <away>\"",
			}
		}

		home, err := resolveSide(m, m.HomeTeamID, homeLabel, in, teamsByID, matchesByNumber, thirdPlaceByMatch)
		if err != nil {
			return nil, err
		}
		away, err := resolveSide(m, m.AwayTeamID, awayLabel, in, teamsByID, matchesByNumber, thirdPlaceByMatch)
		if err != nil {
			return nil, err
		}

		view = append(view, BracketMatch{
			MatchNumber: m.MatchNumber,
			StageID:     m.StageID,
			Home:        home,
			Away:        away,
			Venue:       m.Venue,
			KickoffAt:   m.KickoffAt,
		})
	}

	sort.Slice(view, func(i, j int) bool { return view[i].MatchNumber < view[j].MatchNumber })
	return view, nil
}

// resolveSide resolves one endpoint of a knockout match
func resolveSide(
	m shared.Match,
	teamID *int,
	label string,
	in BracketInput,
	teamsByID map[int]shared.Team,
	matchesByNumber map[int]shared.Match,
	thirdPlaceByMatch map[int]string,
) (SideView, error) {
	// A side whose team reference is already filled in is concrete regardless
	// of the label.
	if teamID != nil {
		team, ok := teamsByID[*teamID]
		if !ok {
			return SideView{}, &DanglingBracketError{
				MatchNumber: m.MatchNumber,
				Label:       label,
				Reason:      fmt.Sprintf("references unknown team id %d", *teamID),
			}
		}
		return concreteSide(team, label), nil
	}

	slot, err := ParseSlotLabel(label)
	if err != nil {
		return SideView{}, &DanglingBracketError{
			MatchNumber: m.MatchNumber,
			Label:       label,
			Reason:      err.Error(),
		}
	}

	symbolic := SideView{Label: label}

	switch s := slot.(type) {
	case GroupWinner:
		return resolveGroupRank(m, s.Letter, 1, label, in, teamsByID)

	case GroupRunnerUp:
		return resolveGroupRank(m, s.Letter, 2, label, in, teamsByID)

	case ThirdPlacePool:
		for _, letter := range s.Letters {
			if _, ok := in.Groups[letter]; !ok {
				return SideView{}, &DanglingBracketError{
					MatchNumber: m.MatchNumber,
					Label:       label,
					Reason:      fmt.Sprintf("references unknown group %s", letter),
				}
			}
		}
		if in.ThirdPlace == nil {
			return symbolic, nil
		}
		letter, ok := thirdPlaceByMatch[m.MatchNumber]
		if !ok {
			return symbolic, nil
		}
		for _, q := range in.ThirdPlace.Qualifiers {
			if q.GroupLetter == letter {
				team, ok := teamsByID[q.TeamID]
				if !ok {
					return SideView{}, &DanglingBracketError{
						MatchNumber: m.MatchNumber,
						Label:       label,
						Reason:      fmt.Sprintf("qualifier references unknown team id %d", q.TeamID),
					}
				}
				return concreteSide(team, label), nil
			}
		}
		return symbolic, nil

	case PriorMatchWinner:
		return resolvePriorMatch(m, s.MatchNumber, label, true, teamsByID, matchesByNumber)

	case PriorMatchLoser:
		return resolvePriorMatch(m, s.MatchNumber, label, false, teamsByID, matchesByNumber)
	}

	return symbolic, nil
}

// resolveGroupRank resolves a group winner or runner-up slot. The slot stays
// symbolic until the group is complete and the rank is unambiguous, i.e. not
// part of a drawn lot.
func resolveGroupRank(
	m shared.Match,
	letter string,
	rank int,
	label string,
	in BracketInput,
	teamsByID map[int]shared.Team,
) (SideView, error) {
	res, ok := in.Groups[letter]
	if !ok {
		return SideView{}, &DanglingBracketError{
			MatchNumber: m.MatchNumber,
			Label:       label,
			Reason:      fmt.Sprintf("references unknown group %s", letter),
		}
	}
	if !res.Complete() || rankAmbiguous(res, rank) {
		return SideView{Label: label}, nil
	}
	standing := res.Standings[rank-1]
	team, ok := teamsByID[standing.TeamID]
	if !ok {
		return SideView{}, &DanglingBracketError{
			MatchNumber: m.MatchNumber,
			Label:       label,
			Reason:      fmt.Sprintf("standings reference unknown team id %d", standing.TeamID),
		}
	}
	return concreteSide(team, label), nil
}

// resolvePriorMatch resolves a winner-of or loser-of slot once the referenced
// match has a decided outcome
func resolvePriorMatch(
	m shared.Match,
	ref int,
	label string,
	wantWinner bool,
	teamsByID map[int]shared.Team,
	matchesByNumber map[int]shared.Match,
) (SideView, error) {
	prior, ok := matchesByNumber[ref]
	if !ok {
		return SideView{}, &DanglingBracketError{
			MatchNumber: m.MatchNumber,
			Label:       label,
			Reason:      fmt.Sprintf("references non-existent match %d", ref),
		}
	}

	var teamID int
	var decided bool
	if wantWinner {
		teamID, decided = prior.DecidedWinnerID()
	} else {
		teamID, decided = prior.DecidedLoserID()
	}
	if !decided {
		return SideView{Label: label}, nil
	}

	team, ok := teamsByID[teamID]
	if !ok {
		return SideView{}, &DanglingBracketError{
			MatchNumber: m.MatchNumber,
			Label:       label,
			Reason:      fmt.Sprintf("match %d outcome references unknown team id %d", ref, teamID),
		}
	}
	return concreteSide(team, label), nil
}

// rankAmbiguous reports whether the ordering of the given rank depends on a
// drawn lot, in which case the slot must not resolve yet
func rankAmbiguous(res StandingsResult, rank int) bool {
	for _, lot := range res.DrawnLots {
		for _, id := range lot.TeamIDs {
			for _, s := range res.Standings {
				if s.TeamID == id && s.Rank == rank {
					return true
				}
			}
		}
	}
	return false
}

func concreteSide(team shared.Team, label string) SideView {
	id := team.ID
	return SideView{
		TeamID:   &id,
		TeamName: team.Name,
		Label:    label,
		Resolved: true,
	}
}

// assignThirdPlaceSlots maps each third place pool slot in the template to the
// qualified group that fills it. The assignment is data driven: it is derived
// from the candidate letters carried by each pool slot and the set of groups
// that actually qualified. Qualifiers claim slots in advancement rank order and
// the search backtracks, so any combination of qualified groups the template
// admits yields a deterministic, consistent seeding.
func assignThirdPlaceSlots(matches []shared.Match, qualifiers []ThirdPlaceQualifier) (map[int]string, error) {
	type poolSlot struct {
		matchNumber int
		letters     []string
	}

	var pools []poolSlot
	for _, m := range matches {
		if !m.StageID.IsKnockout() {
			continue
		}
		home, away, ok := SplitMatchLabel(m.MatchLabel)
		if !ok {
			continue
		}
		for _, side := range []string{home, away} {
			if slot, err := ParseSlotLabel(side); err == nil {
				if pool, isPool := slot.(ThirdPlacePool); isPool {
					pools = append(pools, poolSlot{matchNumber: m.MatchNumber, letters: pool.Letters})
				}
			}
		}
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].matchNumber < pools[j].matchNumber })

	if len(pools) == 0 {
		return map[int]string{}, nil
	}
	if len(pools) != len(qualifiers) {
		return nil, fmt.Errorf("third place seeding: %d pool slots but %d qualifiers", len(pools), len(qualifiers))
	}

	assigned := make(map[int]string, len(pools))

	var place func(i int) bool
	place = func(i int) bool {
		if i == len(qualifiers) {
			return true
		}
		letter := qualifiers[i].GroupLetter
		for _, pool := range pools {
			if _, taken := assigned[pool.matchNumber]; taken {
				continue
			}
			compatible := false
			for _, l := range pool.letters {
				if l == letter {
					compatible = true
					break
				}
			}
			if !compatible {
				continue
			}
			assigned[pool.matchNumber] = letter
			if place(i + 1) {
				return true
			}
			delete(assigned, pool.matchNumber)
		}
		return false
	}

	if !place(0) {
		groups := make([]string, 0, len(qualifiers))
		for _, q := range qualifiers {
			groups = append(groups, q.GroupLetter)
		}
		return nil, fmt.Errorf("third place seeding: no consistent slot assignment for qualified groups %v", groups)
	}
	return assigned, nil
}
