/* slot.go
 * Contains the BracketSlot variants and the parser that turns the symbolic side of a
 * knockout match label ("Winner A", "3rd Place C/D/E", "Loser Match 103") into one of
 * them. The variants form a closed set so the resolver can switch over them
 * exhaustively; a label that fits no variant is a template bug, not a soft fallback.
 * Authors: Zachary Bower
 */

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupLetters lists the twelve group letters in tournament order
var GroupLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// BracketSlot is one endpoint of a knockout match before resolution: a rule
// describing how the team filling it will be determined.
type BracketSlot interface {
	// Label returns the canonical symbolic text for this slot
	Label() string

	bracketSlot()
}

// GroupWinner is the slot for the team finishing first in a group
type GroupWinner struct {
	Letter string
}

// GroupRunnerUp is the slot for the team finishing second in a group
type GroupRunnerUp struct {
	Letter string
}

// ThirdPlacePool is the slot for a qualified third placed team drawn from a set
// of candidate groups
type ThirdPlacePool struct {
	Letters []string
}

// PriorMatchWinner is the slot for the decided winner of an earlier knockout match
type PriorMatchWinner struct {
	MatchNumber int
}

// PriorMatchLoser is the slot for the decided loser of an earlier knockout match
type PriorMatchLoser struct {
	MatchNumber int
}

func (s GroupWinner) Label() string      { return "Winner " + s.Letter }
func (s GroupRunnerUp) Label() string    { return "Runner-up " + s.Letter }
func (s ThirdPlacePool) Label() string   { return "3rd Place " + strings.Join(s.Letters, "/") }
func (s PriorMatchWinner) Label() string { return fmt.Sprintf("Winner Match %d", s.MatchNumber) }
func (s PriorMatchLoser) Label() string  { return fmt.Sprintf("Loser Match %d", s.MatchNumber) }

func (GroupWinner) bracketSlot()      {}
func (GroupRunnerUp) bracketSlot()    {}
func (ThirdPlacePool) bracketSlot()   {}
func (PriorMatchWinner) bracketSlot() {}
func (PriorMatchLoser) bracketSlot()  {}

// ParseSlotLabel parses one side of a knockout match label into a BracketSlot.
// Accepted forms: "Winner A", "Runner-up B", "3rd Place C/D/E", "Winner Match 89",
// "Winner 89", "Loser Match 103" and "Loser 103".
func ParseSlotLabel(label string) (BracketSlot, error) {
	text := strings.TrimSpace(label)

	switch {
	case strings.HasPrefix(text, "Winner "):
		ref := strings.TrimPrefix(text, "Winner ")
		if n, ok := parseMatchRef(ref); ok {
			return PriorMatchWinner{MatchNumber: n}, nil
		}
		if isGroupLetter(ref) {
			return GroupWinner{Letter: ref}, nil
		}

	case strings.HasPrefix(text, "Loser "):
		ref := strings.TrimPrefix(text, "Loser ")
		if n, ok := parseMatchRef(ref); ok {
			return PriorMatchLoser{MatchNumber: n}, nil
		}

	case strings.HasPrefix(text, "Runner-up "):
		ref := strings.TrimPrefix(text, "Runner-up ")
		if isGroupLetter(ref) {
			return GroupRunnerUp{Letter: ref}, nil
		}

	case strings.HasPrefix(text, "3rd Place "):
		letters := strings.Split(strings.TrimPrefix(text, "3rd Place "), "/")
		for i := range letters {
			letters[i] = strings.TrimSpace(letters[i])
			if !isGroupLetter(letters[i]) {
				return nil, fmt.Errorf("invalid group letter %q in slot label %q", letters[i], label)
			}
		}
		return ThirdPlacePool{Letters: letters}, nil
	}

	return nil, fmt.Errorf("unrecognised slot label %q", label)
}

// SplitMatchLabel splits a match label of the form "<home> vs <away>" into its
// two side labels
func SplitMatchLabel(label string) (string, string, bool) {
	parts := strings.SplitN(label, " vs ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func parseMatchRef(ref string) (int, bool) {
	ref = strings.TrimSpace(strings.TrimPrefix(ref, "Match "))
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func isGroupLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'L'
}
