package daily

import (
	"context"
	"sort"
	"sync"
)

type lockKey struct {
	player string
	date   string
	length int
}

// MemoryLock is an in-process Lock; state is lost on restart.
type MemoryLock struct {
	mu   sync.RWMutex
	done map[lockKey]Completion
}

// NewMemoryLock constructs an empty MemoryLock.
func NewMemoryLock() *MemoryLock {
	return &MemoryLock{done: make(map[lockKey]Completion)}
}

func (m *MemoryLock) Completed(_ context.Context, player string, length int, date string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.done[lockKey{player, date, length}]
	return ok, nil
}

// MarkCompleted keeps the first completion for a key.
func (m *MemoryLock) MarkCompleted(_ context.Context, c Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := lockKey{c.Player, c.Date, c.Length}
	if _, ok := m.done[k]; !ok {
		m.done[k] = c
	}
	return nil
}

func (m *MemoryLock) Stats(_ context.Context, player string) ([]Stat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	by := make(map[int]*Stat)
	for k, c := range m.done {
		if k.player != player {
			continue
		}
		st, ok := by[k.length]
		if !ok {
			st = &Stat{Length: k.length}
			by[k.length] = st
		}
		st.Played++
		if c.Won {
			st.Wins++
		}
	}
	out := make([]Stat, 0, len(by))
	for _, st := range by {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Length < out[j].Length })
	return out, nil
}
