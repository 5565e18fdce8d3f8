/* main_test.go
 * Contains tests for the helper functions in the main package
 * Authors: Zachary Bower
 */

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldcup-predictions/api/shared"
)

func TestConvertStrToBool(t *testing.T) {
	val, err := convertStrToBool("true")
	assert.NoError(t, err)
	assert.True(t, val)

	val, err = convertStrToBool("False")
	assert.NoError(t, err)
	assert.False(t, val)

	val, err = convertStrToBool("TRUE")
	assert.NoError(t, err)
	assert.True(t, val)

	_, err = convertStrToBool("yes")
	assert.Error(t, err)

	_, err = convertStrToBool("")
	assert.Error(t, err)
}

func TestSeedFileParsing(t *testing.T) {
	seed := seedFile{
		Teams: []shared.Team{
			{ID: 1, Name: "Avalon", FifaCode: "AVA", GroupLetter: "A"},
		},
		Matches: []shared.Match{
			{MatchNumber: 1, StageID: shared.StageGroup, HomeTeamID: intPtr(1)},
		},
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed seedFile
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Len(t, parsed.Teams, 1)
	assert.Equal(t, "Avalon", parsed.Teams[0].Name)
	assert.Len(t, parsed.Matches, 1)
}

func intPtr(i int) *int {
	return &i
}
