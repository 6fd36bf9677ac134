// internal/game/engine.go
//
// Core game engine for a player's round.
// Responsibilities:
//   - Select a word length and pick a target (selecting → active).
//   - Edit the guess in progress (type a glyph, backspace).
//   - Validate and submit guesses against the normalized dictionary.
//   - Score guesses with the five-pass evaluator and fold marks into hints.
//   - Track state transitions: active → won/lost, marking the daily lock.
//   - Reset back to length selection.
//
// Notes:
//   - The engine owns no session; callers pass the *Session they own.
//   - Dictionary, lock and picker are injected so tests and the terminal
//     client can supply their own.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/letters"
)

// Dictionary is the word source the engine needs.
type Dictionary interface {
	Words(n int) []string
	Contains(n int, word string) bool
}

// Picker chooses a raw target from a word list.
type Picker interface {
	Pick(ws []string, length int, date string) (string, error)
}

// Lengths accepted by SelectLength.
var Lengths = []int{3, 4, 5}

// Engine applies the round's state machine to sessions.
type Engine struct {
	dict  Dictionary
	lock  daily.Lock
	pick  Picker
	now   func() time.Time
	loc   *time.Location
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithLocation sets the zone that defines the calendar day.
func WithLocation(loc *time.Location) Option { return func(e *Engine) { e.loc = loc } }

// NewEngine constructs an engine.
func NewEngine(dict Dictionary, lock daily.Lock, pick Picker, opts ...Option) *Engine {
	e := &Engine{
		dict:  dict,
		lock:  lock,
		pick:  pick,
		now:   time.Now,
		loc:   time.UTC,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Today returns the current calendar day key.
func (e *Engine) Today() string { return daily.DateKey(e.now(), e.loc) }

// Outcome reports the effect of a submitted guess.
type Outcome struct {
	Row     int    // index of the scored row
	Guess   string // raw glyphs as typed
	Marks   []Mark
	Status  Status
	Message string // set when the round ends
}

// SelectLength starts a round of n-glyph words.
//
// Fails with ErrInvalidState unless s is selecting, ErrInvalidLength when n is
// unsupported or has no words, and ErrAlreadyCompletedToday when the lock says
// the player finished this length today. The raw target is normalized before
// it is stored.
func (e *Engine) SelectLength(ctx context.Context, s *Session, n int) error {
	if s.Status != StatusSelecting {
		return fmt.Errorf("%w: select length while %s", ErrInvalidState, s.Status)
	}
	if !supported(n) {
		return &lengthError{kind: ErrInvalidLength, length: n}
	}
	ws := e.dict.Words(n)
	if len(ws) == 0 {
		return &lengthError{kind: ErrInvalidLength, length: n}
	}
	date := e.Today()
	done, err := e.lock.Completed(ctx, s.Player, n, date)
	if err != nil {
		return fmt.Errorf("check daily lock: %w", err)
	}
	if done {
		return &lengthError{kind: ErrAlreadyCompletedToday, length: n}
	}
	raw, err := e.pick.Pick(ws, n, date)
	if err != nil {
		return fmt.Errorf("pick target: %w", err)
	}

	s.ID = e.newID()
	s.Date = date
	s.Length = n
	s.Target = letters.Normalize(raw)
	s.Guesses = nil
	s.Marks = nil
	s.Current = make([]rune, 0, n)
	s.Hints = LetterHints{}
	s.Status = StatusActive
	return nil
}

// TypeLetter appends g to the guess in progress. It is a no-op when the
// guess is already full.
func (e *Engine) TypeLetter(s *Session, g rune) error {
	if s.Status != StatusActive {
		return fmt.Errorf("%w: type while %s", ErrInvalidState, s.Status)
	}
	if len(s.Current) >= s.Length {
		return nil
	}
	s.Current = append(s.Current, g)
	return nil
}

// Backspace removes the last glyph of the guess in progress, if any.
func (e *Engine) Backspace(s *Session) error {
	if s.Status != StatusActive {
		return fmt.Errorf("%w: backspace while %s", ErrInvalidState, s.Status)
	}
	if len(s.Current) > 0 {
		s.Current = s.Current[:len(s.Current)-1]
	}
	return nil
}

// Submit scores the guess in progress.
//
// Validation rules:
//   - Session must be active and the guess complete (ErrInvalidState).
//   - The normalized guess must be in the dictionary (ErrUnknownWord); the
//     session is left untouched so the player can correct it.
//
// State transitions:
//   - normalized guess == target → won, daily lock marked.
//   - sixth guess without a match → lost, daily lock marked.
//
// If marking the lock fails the session is not modified and the error is
// returned, so the submit can be retried.
func (e *Engine) Submit(ctx context.Context, s *Session) (*Outcome, error) {
	if s.Status != StatusActive {
		return nil, fmt.Errorf("%w: submit while %s", ErrInvalidState, s.Status)
	}
	if len(s.Current) != s.Length {
		return nil, fmt.Errorf("%w: guess has %d of %d glyphs", ErrInvalidState, len(s.Current), s.Length)
	}
	guess := string(s.Current)
	if !e.dict.Contains(s.Length, guess) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWord, guess)
	}

	marks := Evaluate(s.Current, []rune(s.Target))
	next := StatusActive
	msg := ""
	switch {
	case letters.Normalize(guess) == s.Target:
		next, msg = StatusWon, msgWon
	case len(s.Guesses)+1 >= MaxGuesses:
		next, msg = StatusLost, fmt.Sprintf(msgLost, s.Target)
	}
	if next.Terminal() {
		err := e.lock.MarkCompleted(ctx, daily.Completion{
			Player:  s.Player,
			Date:    s.Date,
			Length:  s.Length,
			Won:     next == StatusWon,
			Guesses: len(s.Guesses) + 1,
		})
		if err != nil {
			return nil, fmt.Errorf("mark daily lock: %w", err)
		}
	}

	row := len(s.Guesses)
	if s.Hints == nil {
		s.Hints = LetterHints{}
	}
	s.Hints.Merge(s.Current, marks)
	s.Guesses = append(s.Guesses, guess)
	s.Marks = append(s.Marks, marks)
	s.Current = s.Current[:0]
	s.Status = next

	return &Outcome{Row: row, Guess: guess, Marks: marks, Status: next, Message: msg}, nil
}

// CompletedToday reports, per supported length, whether player has finished
// it today.
func (e *Engine) CompletedToday(ctx context.Context, player string) (map[int]bool, error) {
	date := e.Today()
	out := make(map[int]bool, len(Lengths))
	for _, n := range Lengths {
		done, err := e.lock.Completed(ctx, player, n, date)
		if err != nil {
			return nil, fmt.Errorf("check daily lock: %w", err)
		}
		out[n] = done
	}
	return out, nil
}

// Reset returns s to length selection from any state. The daily lock is not
// touched.
func (e *Engine) Reset(s *Session) {
	*s = *NewSession(s.Player)
}

func supported(n int) bool {
	for _, l := range Lengths {
		if l == n {
			return true
		}
	}
	return false
}
