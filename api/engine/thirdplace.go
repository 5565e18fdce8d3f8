/* thirdplace.go
 * Contains the cross group ranking of the twelve third placed teams. The top eight
 * advance to the round of 32 with an advancement rank that seeds which bracket slot
 * they fill. The ordering reuses the group criteria minus head-to-head, since third
 * placed teams from different groups never played each other.
 * Authors: Zachary Bower
 */

package engine

import "sort"

// ThirdPlaceQualifier is a third placed team that advances to the knockout
// stage, carrying its advancement rank 1-8 among the twelve candidates.
type ThirdPlaceQualifier struct {
	GroupStanding   `bson:",inline"`
	AdvancementRank int `bson:"advancement_rank" json:"advancement_rank"`
}

// ThirdPlaceResult holds the eight qualifiers in advancement order, the four
// eliminated candidates and any lots drawn while ordering the candidates.
type ThirdPlaceResult struct {
	Qualifiers []ThirdPlaceQualifier
	Eliminated []GroupStanding
	DrawnLots  []DrawnLot
}

// QualifiedGroups returns the set of group letters that supplied a qualifier
func (r ThirdPlaceResult) QualifiedGroups() map[string]bool {
	groups := make(map[string]bool, len(r.Qualifiers))
	for _, q := range r.Qualifiers {
		groups[q.GroupLetter] = true
	}
	return groups
}

// RankThirdPlaceTeams selects the 8 advancing third placed teams from the 12
// candidates, one per group.
// Preconditions: candidates holds exactly 12 standings, each with rank 3 in a distinct
// group.
// Postconditions: returns the top 8 with advancement ranks 1-8, or a
// MalformedInputError if the candidate set is invalid.
func RankThirdPlaceTeams(candidates []GroupStanding) (ThirdPlaceResult, error) {
	if len(candidates) != 12 {
		return ThirdPlaceResult{}, &MalformedInputError{
			Reason: "third place ranking requires exactly 12 candidates, one per group",
		}
	}
	seen := make(map[string]bool, 12)
	for _, c := range candidates {
		if c.Rank != 3 {
			return ThirdPlaceResult{}, &MalformedInputError{
				Reason:  "candidate does not hold rank 3 in its group",
				Group:   c.GroupLetter,
				TeamIDs: []int{c.TeamID},
			}
		}
		if seen[c.GroupLetter] {
			return ThirdPlaceResult{}, &MalformedInputError{
				Reason:  "multiple candidates from the same group",
				Group:   c.GroupLetter,
				TeamIDs: []int{c.TeamID},
			}
		}
		seen[c.GroupLetter] = true
	}

	ordered := make([]GroupStanding, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		ka, kb := keyOf(a), keyOf(b)
		if ka != kb {
			return ka.less(kb)
		}
		if a.FairPlayPoints != b.FairPlayPoints {
			return a.FairPlayPoints > b.FairPlayPoints
		}
		return a.TeamID < b.TeamID
	})

	var lots []DrawnLot
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) &&
			keyOf(ordered[end]) == keyOf(ordered[start]) &&
			ordered[end].FairPlayPoints == ordered[start].FairPlayPoints {
			end++
		}
		if end-start > 1 {
			ids := make([]int, 0, end-start)
			for _, s := range ordered[start:end] {
				ids = append(ids, s.TeamID)
			}
			lots = append(lots, DrawnLot{TeamIDs: ids})
		}
		start = end
	}

	result := ThirdPlaceResult{DrawnLots: lots}
	for i, s := range ordered {
		if i < 8 {
			result.Qualifiers = append(result.Qualifiers, ThirdPlaceQualifier{
				GroupStanding:   s,
				AdvancementRank: i + 1,
			})
		} else {
			result.Eliminated = append(result.Eliminated, s)
		}
	}
	return result, nil
}
