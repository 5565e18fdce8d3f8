/* thirdplace_test.go
 * Contains unit tests for the third place ranking
 * Authors: Zachary Bower
 */

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thirdPlace(id int, group string, points, gd, gf int) GroupStanding {
	return GroupStanding{
		TeamID:         id,
		TeamName:       "Team " + group,
		GroupLetter:    group,
		Rank:           3,
		Played:         3,
		Points:         points,
		GoalsFor:       gf,
		GoalsAgainst:   gf - gd,
		GoalDifference: gd,
	}
}

// TestRankThirdPlaceTeams_TopEight uses twelve candidates with paired point
// totals broken by goal difference and checks that exactly the global top 8
// advance, with the 9th and 10th by points excluded regardless of their locally
// favorable goal difference
func TestRankThirdPlaceTeams_TopEight(t *testing.T) {
	candidates := []GroupStanding{
		thirdPlace(101, "A", 7, 5, 8),
		thirdPlace(102, "B", 7, 3, 6),
		thirdPlace(103, "C", 6, 4, 7),
		thirdPlace(104, "D", 6, 2, 5),
		thirdPlace(105, "E", 5, 1, 4),
		thirdPlace(106, "F", 5, 0, 3),
		thirdPlace(107, "G", 4, 0, 4),
		thirdPlace(108, "H", 4, -1, 2),
		thirdPlace(109, "I", 3, 6, 9),
		thirdPlace(110, "J", 3, 4, 6),
		thirdPlace(111, "K", 2, 0, 2),
		thirdPlace(112, "L", 2, -2, 1),
	}

	res, err := RankThirdPlaceTeams(candidates)
	require.NoError(t, err)
	require.Len(t, res.Qualifiers, 8)
	require.Len(t, res.Eliminated, 4)

	// Advancement ranks 1-8, each exactly once, in order.
	for i, q := range res.Qualifiers {
		assert.Equal(t, i+1, q.AdvancementRank)
	}

	qualified := res.QualifiedGroups()
	assert.True(t, qualified["A"])
	assert.True(t, qualified["H"])

	// Groups I and J have the best goal differences of the field but only 3
	// points; they must not crack the top 8.
	assert.False(t, qualified["I"])
	assert.False(t, qualified["J"])

	// Within a point tie the better goal difference ranks higher.
	assert.Equal(t, "A", res.Qualifiers[0].GroupLetter)
	assert.Equal(t, "B", res.Qualifiers[1].GroupLetter)
}

// TestRankThirdPlaceTeams_DrawnLot verifies that candidates tied on every
// criterion are ordered by the documented draw and reported
func TestRankThirdPlaceTeams_DrawnLot(t *testing.T) {
	candidates := make([]GroupStanding, 0, 12)
	for i, group := range GroupLetters {
		candidates = append(candidates, thirdPlace(200+i, group, 3, 0, 2))
	}

	res, err := RankThirdPlaceTeams(candidates)
	require.NoError(t, err)
	require.Len(t, res.Qualifiers, 8)

	require.Len(t, res.DrawnLots, 1)
	assert.Len(t, res.DrawnLots[0].TeamIDs, 12)

	// Lowest team ids first under the draw.
	assert.Equal(t, 200, res.Qualifiers[0].TeamID)
	assert.Equal(t, 207, res.Qualifiers[7].TeamID)
}

// TestRankThirdPlaceTeams_MalformedInput covers the fail fast paths: wrong
// cardinality, duplicate groups and a candidate that is not ranked third
func TestRankThirdPlaceTeams_MalformedInput(t *testing.T) {
	var malformed *MalformedInputError

	_, err := RankThirdPlaceTeams(nil)
	require.True(t, errors.As(err, &malformed))

	candidates := make([]GroupStanding, 0, 12)
	for i, group := range GroupLetters {
		candidates = append(candidates, thirdPlace(300+i, group, 4, 0, 3))
	}

	dup := make([]GroupStanding, 12)
	copy(dup, candidates)
	dup[11].GroupLetter = "A"
	_, err = RankThirdPlaceTeams(dup)
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "A", malformed.Group)

	wrongRank := make([]GroupStanding, 12)
	copy(wrongRank, candidates)
	wrongRank[5].Rank = 2
	_, err = RankThirdPlaceTeams(wrongRank)
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "F", malformed.Group)
}
