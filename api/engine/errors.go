/* errors.go
 * Contains the typed errors returned by the standings, third place and bracket code.
 * Callers are expected to distinguish them with errors.As: malformed input and dangling
 * bracket references are configuration bugs, an unresolvable tie is a legitimate rare
 * tournament state that should be logged together with the drawn lot.
 * Authors: Zachary Bower
 */

package engine

import (
	"fmt"
	"strings"
)

// MalformedInputError reports a caller contract violation: wrong cardinality or
// a match/card referencing a team outside the supplied set.
type MalformedInputError struct {
	Reason  string
	Group   string
	TeamIDs []int
}

func (e *MalformedInputError) Error() string {
	msg := e.Reason
	if e.Group != "" {
		msg = fmt.Sprintf("group %s: %s", e.Group, msg)
	}
	if len(e.TeamIDs) > 0 {
		ids := make([]string, len(e.TeamIDs))
		for i, id := range e.TeamIDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		msg = fmt.Sprintf("%s (teams %s)", msg, strings.Join(ids, ", "))
	}
	return "malformed input: " + msg
}

// UnresolvableTieError reports that every tiebreak criterion was exhausted for a
// set of teams and the documented last-resort draw (lowest team id first) was
// applied to order them.
type UnresolvableTieError struct {
	Group   string
	TeamIDs []int
}

func (e *UnresolvableTieError) Error() string {
	ids := make([]string, len(e.TeamIDs))
	for i, id := range e.TeamIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	scope := "third place ranking"
	if e.Group != "" {
		scope = "group " + e.Group
	}
	return fmt.Sprintf("unresolvable tie in %s between teams %s, broken by drawing of lots (lowest id first)",
		scope, strings.Join(ids, ", "))
}

// DanglingBracketError reports a bracket template slot that points at a group or
// match that does not exist in the supplied tournament structure.
type DanglingBracketError struct {
	MatchNumber int
	Label       string
	Reason      string
}

func (e *DanglingBracketError) Error() string {
	return fmt.Sprintf("dangling bracket reference in match %d (%q): %s", e.MatchNumber, e.Label, e.Reason)
}
