package play

import (
	"sort"

	"github.com/robalobadob/qalat/internal/game"
)

// Row is one submitted guess with its marks.
type Row struct {
	Guess string      `json:"guess"`
	Marks []game.Mark `json:"marks"`
}

// View is the client-facing state of a session. Target is only set once the
// round is over.
type View struct {
	ID         string           `json:"id,omitempty"`
	Date       string           `json:"date,omitempty"`
	Status     game.Status      `json:"status"`
	Length     int              `json:"wordLength,omitempty"`
	MaxGuesses int              `json:"maxGuesses"`
	Row        int              `json:"currentRow"`
	Rows       []Row            `json:"rows"`
	Current    string           `json:"currentGuess"`
	Hints      game.LetterHints `json:"letterHints"`
	Disabled   []string         `json:"disabled"`
	Target     string           `json:"targetWord,omitempty"`
	Message    string           `json:"message,omitempty"`
}

// NewView renders s.
func NewView(s *game.Session) View {
	v := View{
		ID:         s.ID,
		Date:       s.Date,
		Status:     s.Status,
		Length:     s.Length,
		MaxGuesses: game.MaxGuesses,
		Row:        s.Row(),
		Rows:       make([]Row, len(s.Guesses)),
		Current:    string(s.Current),
		Hints:      game.LetterHints{},
		Disabled:   s.Hints.Disabled(),
	}
	for i, g := range s.Guesses {
		v.Rows[i] = Row{Guess: g}
		if i < len(s.Marks) {
			v.Rows[i].Marks = s.Marks[i]
		}
	}
	for k, m := range s.Hints {
		v.Hints[k] = m
	}
	if v.Disabled == nil {
		v.Disabled = []string{}
	}
	sort.Strings(v.Disabled)
	if s.Status.Terminal() {
		v.Target = s.Target
	}
	return v
}
