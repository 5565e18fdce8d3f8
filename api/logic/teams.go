/* teams.go
 * Contains fuzzy team name lookup used by the bot commands, so that inputs like
 * "brasil" or "Cote dIvoire" still find the right team.
 * Authors: Zachary Bower
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"worldcup-predictions/api/shared"
)

// FindTeam resolves a user supplied name to a team, matching case
// insensitively against team names and FIFA codes with a fuzzy fallback.
// Postconditions: returns the matched team and true, or false when nothing matches.
func FindTeam(input string, teams []shared.Team) (shared.Team, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return shared.Team{}, false
	}

	lookup := make(map[string]shared.Team, 2*len(teams))
	haystack := make([]string, 0, len(teams))
	for _, t := range teams {
		lower := strings.ToLower(t.Name)
		lookup[lower] = t
		lookup[strings.ToLower(t.FifaCode)] = t
		haystack = append(haystack, lower)
	}

	// Exact name or FIFA code match wins outright.
	if t, ok := lookup[needle]; ok {
		return t, true
	}

	results := fuzzy.RankFind(needle, haystack)
	if len(results) == 0 {
		return shared.Team{}, false
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return lookup[best.Target], true
}

// NormalizeNames resolves a list of user supplied names, returning the matched
// teams and any names that failed to match.
func NormalizeNames(inputs []string, teams []shared.Team) ([]shared.Team, []string) {
	var matched []shared.Team
	var invalid []string
	for _, input := range inputs {
		t, ok := FindTeam(input, teams)
		if !ok {
			invalid = append(invalid, input)
			continue
		}
		matched = append(matched, t)
	}
	return matched, invalid
}
