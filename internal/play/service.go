// internal/play/service.go
//
// Application shell around the game engine.
// Responsibilities:
//   - Load a player's saved slot, restoring today's game or discarding a stale one.
//   - Apply one engine operation per call, serialized per player.
//   - Persist the slot after every transition (delete it when back to selection).
//   - Resolve hints, share payloads, letter families and stats.
//
// Notes:
//   - Persistence failures are returned as plain errors; player-facing errors
//     come from the game package's taxonomy.

package play

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/letters"
	"github.com/robalobadob/qalat/internal/store"
)

// ErrHintsUnavailable is returned by Hint when the hint table cannot be
// fetched. It matches game.ErrResourceLoad.
var ErrHintsUnavailable = fmt.Errorf("%w: hint table", game.ErrResourceLoad)

// ErrBadGlyph is returned by TypeLetter for input that is not exactly one glyph.
var ErrBadGlyph = errors.New("play: expected a single Ethiopic glyph")

// HintSource looks up the hint for a target word.
type HintSource interface {
	Lookup(ctx context.Context, word string) (hint string, ok bool, err error)
}

// Service runs games for many players.
type Service struct {
	engine *game.Engine
	store  store.Store
	hints  HintSource
	stats  daily.StatsReader

	mu      sync.Mutex
	players map[string]*playerLock
}

// playerLock serializes one player's operations. refs counts holders and
// waiters; the entry is dropped when it reaches zero.
type playerLock struct {
	sync.Mutex
	refs int
}

// New wires a Service. stats may be nil when the lock cannot summarize history.
func New(engine *game.Engine, st store.Store, hints HintSource, stats daily.StatsReader) *Service {
	return &Service{
		engine:  engine,
		store:   st,
		hints:   hints,
		stats:   stats,
		players: make(map[string]*playerLock),
	}
}

func (svc *Service) lockPlayer(player string) func() {
	svc.mu.Lock()
	pl, ok := svc.players[player]
	if !ok {
		pl = &playerLock{}
		svc.players[player] = pl
	}
	pl.refs++
	svc.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		svc.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(svc.players, player)
		}
		svc.mu.Unlock()
	}
}

// load returns today's session for player, or a fresh selecting session.
// Stale and unreadable slots are discarded.
func (svc *Service) load(ctx context.Context, player string) (*game.Session, error) {
	rec, err := svc.store.Load(ctx, player)
	if errors.Is(err, store.ErrNotFound) {
		return game.NewSession(player), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec.Player = player
	s, err := game.Restore(rec, svc.engine.Today())
	if err == nil {
		return s, nil
	}
	if errors.Is(err, game.ErrStale) {
		log.Debug().Str("player", player).Str("date", rec.Date).Msg("discarding stale session")
	} else {
		log.Warn().Err(err).Str("player", player).Msg("discarding unreadable session")
	}
	if err := svc.store.Delete(ctx, player); err != nil {
		return nil, fmt.Errorf("discard session: %w", err)
	}
	return game.NewSession(player), nil
}

func (svc *Service) save(ctx context.Context, s *game.Session) error {
	if s.Status == game.StatusSelecting {
		return svc.store.Delete(ctx, s.Player)
	}
	if err := svc.store.Save(ctx, game.ToRecord(s)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// apply runs fn on the player's session under the player's lock and saves
// the result when fn succeeds.
func (svc *Service) apply(ctx context.Context, player string, fn func(*game.Session) error) (*game.Session, error) {
	unlock := svc.lockPlayer(player)
	defer unlock()

	s, err := svc.load(ctx, player)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		// Keep a rejected word as the guess in progress so it can be edited.
		if errors.Is(err, game.ErrUnknownWord) {
			if serr := svc.save(ctx, s); serr != nil {
				return s, serr
			}
		}
		return s, err
	}
	return s, svc.save(ctx, s)
}

// Current returns the player's session, resuming today's saved game.
func (svc *Service) Current(ctx context.Context, player string) (View, error) {
	unlock := svc.lockPlayer(player)
	defer unlock()
	s, err := svc.load(ctx, player)
	if err != nil {
		return View{}, err
	}
	return NewView(s), nil
}

// SelectLength starts a round of n-glyph words.
func (svc *Service) SelectLength(ctx context.Context, player string, n int) (View, error) {
	s, err := svc.apply(ctx, player, func(s *game.Session) error {
		return svc.engine.SelectLength(ctx, s, n)
	})
	return viewOf(s), err
}

// TypeLetter appends one glyph to the guess in progress.
func (svc *Service) TypeLetter(ctx context.Context, player, glyph string) (View, error) {
	g := letters.Glyphs(glyph)
	if len(g) != 1 || !letters.IsGlyph(g[0]) {
		return View{}, fmt.Errorf("%w: %q", ErrBadGlyph, glyph)
	}
	s, err := svc.apply(ctx, player, func(s *game.Session) error {
		return svc.engine.TypeLetter(s, g[0])
	})
	return viewOf(s), err
}

// Backspace removes the last glyph of the guess in progress.
func (svc *Service) Backspace(ctx context.Context, player string) (View, error) {
	s, err := svc.apply(ctx, player, svc.engine.Backspace)
	return viewOf(s), err
}

// Submit scores the guess in progress. On ErrUnknownWord the view still
// carries the unchanged guess so the player can edit it.
func (svc *Service) Submit(ctx context.Context, player string) (View, *game.Outcome, error) {
	var out *game.Outcome
	s, err := svc.apply(ctx, player, func(s *game.Session) error {
		var err error
		out, err = svc.engine.Submit(ctx, s)
		return err
	})
	if err != nil {
		return viewOf(s), nil, err
	}
	v := NewView(s)
	v.Message = out.Message
	return v, out, nil
}

// Guess replaces the guess in progress with word and submits it.
func (svc *Service) Guess(ctx context.Context, player, word string) (View, *game.Outcome, error) {
	var out *game.Outcome
	s, err := svc.apply(ctx, player, func(s *game.Session) error {
		if s.Status != game.StatusActive {
			return fmt.Errorf("%w: guess while %s", game.ErrInvalidState, s.Status)
		}
		glyphs := letters.Glyphs(word)
		if len(glyphs) != s.Length {
			return fmt.Errorf("%w: guess has %d of %d glyphs", game.ErrInvalidState, len(glyphs), s.Length)
		}
		s.Current = s.Current[:0]
		for _, g := range glyphs {
			if err := svc.engine.TypeLetter(s, g); err != nil {
				return err
			}
		}
		var err error
		out, err = svc.engine.Submit(ctx, s)
		return err
	})
	if err != nil {
		return viewOf(s), nil, err
	}
	v := NewView(s)
	v.Message = out.Message
	return v, out, nil
}

// Reset abandons the current round and clears the saved slot. The daily
// lock is untouched, so a finished length stays finished.
func (svc *Service) Reset(ctx context.Context, player string) (View, error) {
	s, err := svc.apply(ctx, player, func(s *game.Session) error {
		svc.engine.Reset(s)
		return nil
	})
	return viewOf(s), err
}

// Hint returns the hint for the player's target, or the "no hint" message.
func (svc *Service) Hint(ctx context.Context, player string) (string, error) {
	unlock := svc.lockPlayer(player)
	defer unlock()
	s, err := svc.load(ctx, player)
	if err != nil {
		return "", err
	}
	if s.Status == game.StatusSelecting {
		return "", fmt.Errorf("%w: no round in progress", game.ErrInvalidState)
	}
	hint, ok, err := svc.hints.Lookup(ctx, s.Target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHintsUnavailable, err)
	}
	if !ok {
		return game.NoHintMessage(), nil
	}
	return hint, nil
}

// Share returns the emoji grid for the player's round.
func (svc *Service) Share(ctx context.Context, player string) (string, error) {
	unlock := svc.lockPlayer(player)
	defer unlock()
	s, err := svc.load(ctx, player)
	if err != nil {
		return "", err
	}
	return game.Share(s)
}

// Family returns the members of glyph's consonant family, or nil.
func (svc *Service) Family(glyph string) []string {
	g := letters.Glyphs(glyph)
	if len(g) != 1 {
		return nil
	}
	fam := letters.Family(g[0])
	if fam == nil {
		return nil
	}
	out := make([]string, len(fam))
	for i, r := range fam {
		out[i] = string(r)
	}
	return out
}

// Stats summarizes the player's finished rounds per length.
func (svc *Service) Stats(ctx context.Context, player string) ([]daily.Stat, error) {
	if svc.stats == nil {
		return []daily.Stat{}, nil
	}
	return svc.stats.Stats(ctx, player)
}

// CompletedToday reports which lengths the player has finished today.
func (svc *Service) CompletedToday(ctx context.Context, player string) (map[int]bool, error) {
	return svc.engine.CompletedToday(ctx, player)
}

// Today returns the calendar day key the service plays on.
func (svc *Service) Today() string { return svc.engine.Today() }

// Message extends game.Message with the service's own errors.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrHintsUnavailable):
		return game.HintLoadFailedMessage()
	case errors.Is(err, ErrBadGlyph):
		return game.Message(game.ErrInvalidState)
	default:
		return game.Message(err)
	}
}

func viewOf(s *game.Session) View {
	if s == nil {
		return View{}
	}
	return NewView(s)
}
