// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-position result of a guess (five tiers).
//   - Status: round state (selecting → active → won/lost).
//   - LetterHints: best mark seen per typed glyph.
//   - Session: state for a single player's round.

package game

// MaxGuesses is the number of rows in a round.
const MaxGuesses = 6

// Mark represents the evaluation result for a single position in a guess.
// Values match the tile classes a client renders:
//   - "correct": exact glyph in the exact position.
//   - "blue":    same family in the same position, different vowel order.
//   - "present": exact glyph elsewhere in the target.
//   - "family":  a glyph of the same family elsewhere in the target.
//   - "absent":  none of the above.
type Mark string

const (
	MarkCorrect         Mark = "correct"
	MarkFamilySamePos   Mark = "blue"
	MarkPresent         Mark = "present"
	MarkFamilyElsewhere Mark = "family"
	MarkAbsent          Mark = "absent"
)

// rank orders marks for the cumulative keyboard hints. It differs from the
// per-guess pass order: present outranks both family tiers here.
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 4
	case MarkPresent:
		return 3
	case MarkFamilyElsewhere:
		return 2
	case MarkFamilySamePos:
		return 1
	default:
		return 0
	}
}

// Valid reports whether m is one of the five marks.
func (m Mark) Valid() bool {
	switch m {
	case MarkCorrect, MarkFamilySamePos, MarkPresent, MarkFamilyElsewhere, MarkAbsent:
		return true
	}
	return false
}

// Status is the round's state.
type Status string

const (
	StatusSelecting Status = "selecting"
	StatusActive    Status = "active"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

// Terminal reports whether the round is over.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// LetterHints maps a typed glyph to the best mark it has earned this round.
type LetterHints map[string]Mark

// Disabled returns the glyphs currently marked absent.
func (h LetterHints) Disabled() []string {
	var out []string
	for g, m := range h {
		if m == MarkAbsent {
			out = append(out, g)
		}
	}
	return out
}

// Session holds the state of a single player's round.
type Session struct {
	ID      string      // Round identifier (uuid), empty while selecting.
	Player  string      // Owner; keys the daily lock.
	Date    string      // Calendar day the round belongs to (YYYY-MM-DD).
	Length  int         // Glyphs per word (3, 4 or 5).
	Target  string      // Normalized target word.
	Guesses []string    // Submitted guesses, raw glyphs as typed.
	Marks   [][]Mark    // Marks per submitted guess.
	Current []rune      // Guess in progress.
	Hints   LetterHints // Cumulative keyboard hints.
	Status  Status
}

// NewSession returns an empty session for player in the selecting state.
func NewSession(player string) *Session {
	return &Session{Player: player, Status: StatusSelecting, Hints: LetterHints{}}
}

// Row returns the index of the row being typed (the number of submitted guesses).
func (s *Session) Row() int { return len(s.Guesses) }
