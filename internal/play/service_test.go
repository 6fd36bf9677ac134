package play

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/store"
	"github.com/robalobadob/qalat/internal/words"
)

type fixedPicker struct{ word string }

func (p fixedPicker) Pick([]string, int, string) (string, error) { return p.word, nil }

type stubHints struct {
	table map[string]string
	err   error
}

func (h stubHints) Lookup(_ context.Context, word string) (string, bool, error) {
	if h.err != nil {
		return "", false, h.err
	}
	v, ok := h.table[word]
	return v, ok, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc   *Service
	store store.Store
	lock  *daily.MemoryLock
	clock *clock
}

func newFixture(t *testing.T, hints HintSource) *fixture {
	t.Helper()
	dict := words.New(map[int][]string{
		3: {"ፀሐይ", "ሰላም", "እናት", "አባት", "ከተማ", "ወተት", "መኪና", "ሰማይ"},
	})
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	lock := daily.NewMemoryLock()
	st := store.NewMemoryStore()
	eng := game.NewEngine(dict, lock, fixedPicker{"ፀሐይ"}, game.WithClock(c.Now))
	if hints == nil {
		hints = stubHints{table: map[string]string{"ፀሀይ": "በሰማይ ላይ ያበራል"}}
	}
	return &fixture{svc: New(eng, st, hints, lock), store: st, lock: lock, clock: c}
}

func typeAll(t *testing.T, svc *Service, player, word string) {
	t.Helper()
	for _, r := range word {
		_, err := svc.TypeLetter(context.Background(), player, string(r))
		require.NoError(t, err)
	}
}

func TestServiceFreshPlayer(t *testing.T) {
	f := newFixture(t, nil)
	v, err := f.svc.Current(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusSelecting, v.Status)
	assert.Empty(t, v.Rows)
	assert.Equal(t, game.MaxGuesses, v.MaxGuesses)
}

func TestServicePlaysAndPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	v, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, game.StatusActive, v.Status)
	assert.Empty(t, v.Target, "target hidden while playing")

	rec, err := f.store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ፀሀይ", rec.TargetWord)

	typeAll(t, f.svc, "p1", "ሰማይ")
	v, out, err := f.svc.Submit(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusActive, out.Status)
	assert.Len(t, v.Rows, 1)
	assert.Equal(t, []string{"ማ", "ሰ"}, v.Disabled)

	// A second read resumes from the store.
	v, err = f.svc.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Row)
	assert.Equal(t, game.MarkCorrect, v.Hints["ይ"])

	v, out, err = f.svc.Guess(ctx, "p1", "ጸሀይ")
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, out.Status)
	assert.Equal(t, "ፀሀይ", v.Target, "target revealed once the round is over")
	assert.NotEmpty(t, v.Message)

	share, err := f.svc.Share(ctx, "p1")
	require.NoError(t, err)
	assert.Contains(t, share, "2/6")

	stats, err := f.svc.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []daily.Stat{{Length: 3, Played: 1, Wins: 1}}, stats)
}

func TestServiceUnknownWordKeepsGuess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)

	v, _, err := f.svc.Guess(ctx, "p1", "ሰላሰ")
	require.ErrorIs(t, err, game.ErrUnknownWord)
	assert.Equal(t, "ያልታወቀ ቃል!", Message(err))
	assert.Equal(t, "ሰላሰ", v.Current)
	assert.Empty(t, v.Rows)

	v, err = f.svc.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ሰላሰ", v.Current)

	v, err = f.svc.Backspace(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ሰላ", v.Current)
}

func TestServiceRejectsBadGlyphs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)

	for _, in := range []string{"", "ab", "ሰላ", "a", "።", "፩"} {
		_, err := f.svc.TypeLetter(ctx, "p1", in)
		assert.ErrorIs(t, err, ErrBadGlyph, "input %q", in)
	}
}

func TestServiceStaleSlotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	v, err := f.svc.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusSelecting, v.Status)

	_, err = f.store.Load(ctx, "p1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestServiceCorruptSlotIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.store.Save(ctx, game.Record{
		Player:     "p1",
		TargetWord: "ሰላም",
		WordLength: 3,
		CurrentRow: 4,
		Status:     game.StatusActive,
		Date:       "2024-05-01",
	}))

	v, err := f.svc.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusSelecting, v.Status)
}

func TestServiceCompletedLengthStaysLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)
	_, _, err = f.svc.Guess(ctx, "p1", "ፀሐይ")
	require.NoError(t, err)

	v, err := f.svc.Reset(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusSelecting, v.Status)
	_, err = f.store.Load(ctx, "p1")
	assert.ErrorIs(t, err, store.ErrNotFound, "reset clears the slot")

	_, err = f.svc.SelectLength(ctx, "p1", 3)
	require.ErrorIs(t, err, game.ErrAlreadyCompletedToday)
	assert.Contains(t, Message(err), "3")

	// Next day the length opens again.
	f.clock.Advance(24 * time.Hour)
	_, err = f.svc.SelectLength(ctx, "p1", 3)
	assert.NoError(t, err)
}

func TestServiceHint(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a round", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.Hint(ctx, "p1")
		assert.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.SelectLength(ctx, "p1", 3)
		require.NoError(t, err)
		hint, err := f.svc.Hint(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "በሰማይ ላይ ያበራል", hint)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, stubHints{table: map[string]string{}})
		_, err := f.svc.SelectLength(ctx, "p1", 3)
		require.NoError(t, err)
		hint, err := f.svc.Hint(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, game.NoHintMessage(), hint)
	})

	t.Run("load failure", func(t *testing.T) {
		f := newFixture(t, stubHints{err: errors.New("connection refused")})
		_, err := f.svc.SelectLength(ctx, "p1", 3)
		require.NoError(t, err)
		_, err = f.svc.Hint(ctx, "p1")
		require.ErrorIs(t, err, game.ErrResourceLoad)
		assert.Equal(t, game.HintLoadFailedMessage(), Message(err))

		// The round is unaffected.
		v, err := f.svc.Current(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, game.StatusActive, v.Status)
	})
}

func TestServiceFamily(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{"ለ", "ሉ", "ሊ", "ላ", "ሌ", "ል", "ሎ", "ሏ"}, f.svc.Family("ሊ"))
	assert.Nil(t, f.svc.Family("x"))
	assert.Nil(t, f.svc.Family("ለሉ"))
}

func TestServiceConcurrentTyping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.svc.SelectLength(ctx, "p1", 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.TypeLetter(ctx, "p1", "ሰ")
		}()
	}
	wg.Wait()

	v, err := f.svc.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "ሰሰሰ", v.Current, "no update is lost")
}

func TestServiceDropsIdlePlayerLocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player := fmt.Sprintf("guest-%d", i%20)
			_, _ = f.svc.Current(ctx, player)
			_, _ = f.svc.SelectLength(ctx, player, 3)
			_, _ = f.svc.TypeLetter(ctx, player, "ሰ")
		}(i)
	}
	wg.Wait()

	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()
	assert.Empty(t, f.svc.players)
}
