// internal/store/memory.go
//
// Persistence of each player's single "today's game" slot.
// The Store interface is implemented three times:
//   - memory (this file): ephemeral, for development and tests.
//   - SQLite (sqlite.go): the sessions table, the default.
//   - Redis (redis.go): JSON values with a TTL.
//
// Characteristics of the memory store:
//   - Records keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/qalat/internal/game"
)

// ErrNotFound is returned by Load when the player has no saved game.
var ErrNotFound = errors.New("store: no saved game")

// Store defines the persistence interface for saved games.
type Store interface {
	// Save persists or replaces the player's record.
	Save(ctx context.Context, r game.Record) error

	// Load retrieves the player's record, or ErrNotFound.
	Load(ctx context.Context, player string) (game.Record, error)

	// Delete clears the player's slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, player string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	records map[string]game.Record // keyed by Record.Player
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]game.Record)}
}

// Save stores a copy so later changes to the caller's slices do not leak in.
func (m *memory) Save(_ context.Context, r game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.Player] = clone(r)
	return nil
}

func (m *memory) Load(_ context.Context, player string) (game.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[player]; ok {
		return clone(r), nil
	}
	return game.Record{}, ErrNotFound
}

func (m *memory) Delete(_ context.Context, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, player)
	return nil
}

func clone(r game.Record) game.Record {
	out := r
	out.Guesses = append([]string(nil), r.Guesses...)
	if r.Marks != nil {
		out.Marks = make([][]game.Mark, len(r.Marks))
		for i, row := range r.Marks {
			out.Marks[i] = append([]game.Mark(nil), row...)
		}
	}
	if r.LetterHints != nil {
		out.LetterHints = make(game.LetterHints, len(r.LetterHints))
		for k, v := range r.LetterHints {
			out.LetterHints[k] = v
		}
	}
	return out
}
