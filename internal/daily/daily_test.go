package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/qalat/assets"
	"github.com/robalobadob/qalat/internal/database"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", DateKey(ts, nil))

	addis := time.FixedZone("EAT", 3*60*60)
	assert.Equal(t, "2024-03-10", DateKey(ts, addis))
}

func TestWordIndex(t *testing.T) {
	a := WordIndex("2024-03-09", 4, "salt", 40)
	assert.Equal(t, a, WordIndex("2024-03-09", 4, "salt", 40), "deterministic")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 40)
	assert.Equal(t, 0, WordIndex("2024-03-09", 4, "salt", 0))

	long := string(make([]byte, 100))
	i := WordIndex("2024-03-09", 4, long, 7)
	assert.Less(t, i, 7)
}

func TestSeededPicker(t *testing.T) {
	ws := []string{"ሰላም", "እናት", "አባት", "ከተማ"}
	p := SeededPicker{Salt: "s"}
	w1, err := p.Pick(ws, 3, "2024-01-01")
	require.NoError(t, err)
	w2, err := p.Pick(ws, 3, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, w1, w2)

	_, err = p.Pick(nil, 3, "2024-01-01")
	assert.Error(t, err)
}

type lockFactory func(t *testing.T) interface {
	Lock
	StatsReader
}

func lockImplementations() map[string]lockFactory {
	return map[string]lockFactory{
		"memory": func(t *testing.T) interface {
			Lock
			StatsReader
		} {
			return NewMemoryLock()
		},
		"sqlite": func(t *testing.T) interface {
			Lock
			StatsReader
		} {
			db, err := database.Open(filepath.Join(t.TempDir(), "lock.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			require.NoError(t, database.Migrate(db, assets.Migrations()))
			return NewSQLiteLock(db)
		},
		"redis": func(t *testing.T) interface {
			Lock
			StatsReader
		} {
			mr := miniredis.RunT(t)
			rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = rdb.Close() })
			return NewRedisLock(rdb, 48*time.Hour)
		},
	}
}

func TestLocks(t *testing.T) {
	for name, factory := range lockImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := factory(t)

			done, err := l.Completed(ctx, "p1", 4, "2024-01-01")
			require.NoError(t, err)
			assert.False(t, done)

			require.NoError(t, l.MarkCompleted(ctx, Completion{Player: "p1", Date: "2024-01-01", Length: 4, Won: true, Guesses: 3}))
			// Duplicate completion is ignored.
			require.NoError(t, l.MarkCompleted(ctx, Completion{Player: "p1", Date: "2024-01-01", Length: 4, Won: false, Guesses: 6}))
			require.NoError(t, l.MarkCompleted(ctx, Completion{Player: "p1", Date: "2024-01-02", Length: 4, Won: false, Guesses: 6}))
			require.NoError(t, l.MarkCompleted(ctx, Completion{Player: "p1", Date: "2024-01-01", Length: 3, Won: true, Guesses: 1}))

			done, err = l.Completed(ctx, "p1", 4, "2024-01-01")
			require.NoError(t, err)
			assert.True(t, done)

			// Other length, other date and other player stay open.
			done, _ = l.Completed(ctx, "p1", 5, "2024-01-01")
			assert.False(t, done)
			done, _ = l.Completed(ctx, "p1", 4, "2024-01-03")
			assert.False(t, done)
			done, _ = l.Completed(ctx, "p2", 4, "2024-01-01")
			assert.False(t, done)

			stats, err := l.Stats(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, []Stat{
				{Length: 3, Played: 1, Wins: 1},
				{Length: 4, Played: 2, Wins: 1},
			}, stats)

			stats, err = l.Stats(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, stats)
		})
	}
}

func TestRedisLockRetriesAfterFailedMark(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := NewRedisLock(rdb, 48*time.Hour)
	c := Completion{Player: "p1", Date: "2024-01-01", Length: 4, Won: true, Guesses: 2}

	// A totals key of the wrong type makes the increments fail.
	require.NoError(t, mr.Set(statsKey("p1"), "not a hash"))
	require.Error(t, l.MarkCompleted(ctx, c))
	done, err := l.Completed(ctx, "p1", 4, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, done, "a failed mark records nothing")

	mr.Del(statsKey("p1"))
	require.NoError(t, l.MarkCompleted(ctx, c))
	done, err = l.Completed(ctx, "p1", 4, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, mr.TTL(doneKey("p1", "2024-01-01", 4)) > 0)

	stats, err := l.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []Stat{{Length: 4, Played: 1, Wins: 1}}, stats)
}
