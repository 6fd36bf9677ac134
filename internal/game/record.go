package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/qalat/internal/letters"
)

// Record is the persisted form of a session: the single "today's game"
// slot of a player.
type Record struct {
	ID          string      `json:"id,omitempty"`
	Player      string      `json:"player"`
	TargetWord  string      `json:"targetWord"`
	WordLength  int         `json:"wordLength"`
	Guesses     []string    `json:"guesses"`
	Marks       [][]Mark    `json:"marks,omitempty"`
	CurrentRow  int         `json:"currentRow"`
	Current     string      `json:"currentGuess,omitempty"`
	LetterHints LetterHints `json:"letterHints"`
	Status      Status      `json:"status"`
	Date        string      `json:"date"`
}

// ErrStale is returned by Restore for a record from another calendar day.
var ErrStale = errors.New("record is not from today")

// ToRecord snapshots s.
func ToRecord(s *Session) Record {
	hints := make(LetterHints, len(s.Hints))
	for k, v := range s.Hints {
		hints[k] = v
	}
	marks := make([][]Mark, len(s.Marks))
	for i, m := range s.Marks {
		marks[i] = append([]Mark(nil), m...)
	}
	return Record{
		ID:          s.ID,
		Player:      s.Player,
		TargetWord:  s.Target,
		WordLength:  s.Length,
		Guesses:     append([]string(nil), s.Guesses...),
		Marks:       marks,
		CurrentRow:  len(s.Guesses),
		Current:     string(s.Current),
		LetterHints: hints,
		Status:      s.Status,
		Date:        s.Date,
	}
}

// Restore rebuilds a session from r if it belongs to today. Marks missing
// from older records are recomputed with Evaluate.
func Restore(r Record, today string) (*Session, error) {
	if r.Date != today {
		return nil, ErrStale
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:      r.ID,
		Player:  r.Player,
		Date:    r.Date,
		Length:  r.WordLength,
		Target:  letters.Normalize(r.TargetWord),
		Guesses: append([]string(nil), r.Guesses...),
		Current: []rune(r.Current),
		Hints:   LetterHints{},
		Status:  r.Status,
	}
	for k, v := range r.LetterHints {
		s.Hints[k] = v
	}
	if len(r.Marks) == len(r.Guesses) {
		for _, m := range r.Marks {
			s.Marks = append(s.Marks, append([]Mark(nil), m...))
		}
	} else {
		target := []rune(s.Target)
		for _, g := range s.Guesses {
			s.Marks = append(s.Marks, Evaluate([]rune(g), target))
		}
	}
	if s.Status == "" {
		s.Status = StatusActive
	}
	return s, nil
}

func (r Record) validate() error {
	switch r.Status {
	case StatusSelecting:
		return fmt.Errorf("%w: record in selecting state", ErrInvalidState)
	case "", StatusActive, StatusWon, StatusLost:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, r.Status)
	}
	if !supported(r.WordLength) {
		return fmt.Errorf("%w: record length %d", ErrInvalidState, r.WordLength)
	}
	if letters.Len(r.TargetWord) != r.WordLength {
		return fmt.Errorf("%w: target length", ErrInvalidState)
	}
	if len(r.Guesses) > MaxGuesses {
		return fmt.Errorf("%w: %d guesses", ErrInvalidState, len(r.Guesses))
	}
	if r.CurrentRow != len(r.Guesses) {
		return fmt.Errorf("%w: current row %d with %d guesses", ErrInvalidState, r.CurrentRow, len(r.Guesses))
	}
	for _, g := range r.Guesses {
		if letters.Len(g) != r.WordLength {
			return fmt.Errorf("%w: guess length", ErrInvalidState)
		}
	}
	if letters.Len(r.Current) > r.WordLength {
		return fmt.Errorf("%w: current guess too long", ErrInvalidState)
	}
	for _, row := range r.Marks {
		if len(row) != r.WordLength {
			return fmt.Errorf("%w: marks length", ErrInvalidState)
		}
		for _, m := range row {
			if !m.Valid() {
				return fmt.Errorf("%w: mark %q", ErrInvalidState, m)
			}
		}
	}
	for g, m := range r.LetterHints {
		if !m.Valid() {
			return fmt.Errorf("%w: hint %q for %s", ErrInvalidState, m, g)
		}
	}
	return r.validateStatus()
}

// validateStatus checks the status against the guesses: a round is active
// until it is won by its last guess or lost on the last row.
func (r Record) validateStatus() error {
	n := len(r.Guesses)
	solved := n > 0 && letters.Normalize(r.Guesses[n-1]) == letters.Normalize(r.TargetWord)
	switch r.Status {
	case "", StatusActive:
		if n == MaxGuesses || solved {
			return fmt.Errorf("%w: active record with %d guesses", ErrInvalidState, n)
		}
	case StatusWon:
		if !solved {
			return fmt.Errorf("%w: won record without a winning guess", ErrInvalidState)
		}
	case StatusLost:
		if n != MaxGuesses || solved {
			return fmt.Errorf("%w: lost record with %d guesses", ErrInvalidState, n)
		}
	}
	return nil
}
