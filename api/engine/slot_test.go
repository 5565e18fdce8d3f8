/* slot_test.go
 * Contains unit tests for the bracket slot label parser
 * Authors: Zachary Bower
 */

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	slot, err := ParseSlotLabel("Winner A")
	require.NoError(t, err)
	assert.Equal(t, GroupWinner{Letter: "A"}, slot)

	slot, err = ParseSlotLabel("Runner-up L")
	require.NoError(t, err)
	assert.Equal(t, GroupRunnerUp{Letter: "L"}, slot)

	slot, err = ParseSlotLabel("3rd Place C/D/E")
	require.NoError(t, err)
	assert.Equal(t, ThirdPlacePool{Letters: []string{"C", "D", "E"}}, slot)

	slot, err = ParseSlotLabel("Winner Match 89")
	require.NoError(t, err)
	assert.Equal(t, PriorMatchWinner{MatchNumber: 89}, slot)

	// Bare match numbers are accepted as well.
	slot, err = ParseSlotLabel("Winner 89")
	require.NoError(t, err)
	assert.Equal(t, PriorMatchWinner{MatchNumber: 89}, slot)

	slot, err = ParseSlotLabel("Loser Match 103")
	require.NoError(t, err)
	assert.Equal(t, PriorMatchLoser{MatchNumber: 103}, slot)
}

func TestParseSlotLabel_Invalid(t *testing.T) {
	for _, label := range []string{
		"",
		"Winner",
		"Winner M",      // no group M in a 12 group tournament
		"Champion A",    // unknown keyword
		"3rd Place C-D", // wrong separator
		"Runner-up 12",
	} {
		_, err := ParseSlotLabel(label)
		assert.Error(t, err, "label %q should not parse", label)
	}
}

func TestSlotLabelRoundTrip(t *testing.T) {
	for _, label := range []string{
		"Winner A",
		"Runner-up B",
		"3rd Place C/D/E",
		"Winner Match 89",
		"Loser Match 103",
	} {
		slot, err := ParseSlotLabel(label)
		require.NoError(t, err)
		assert.Equal(t, label, slot.Label())
	}
}

func TestSplitMatchLabel(t *testing.T) {
	home, away, ok := SplitMatchLabel("Winner A vs 3rd Place C/D/E")
	require.True(t, ok)
	assert.Equal(t, "Winner A", home)
	assert.Equal(t, "3rd Place C/D/E", away)

	_, _, ok = SplitMatchLabel("Final")
	assert.False(t, ok)
}
