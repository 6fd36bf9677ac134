package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLock stores completions as keys qalat:done:{player}:{date}:{length}
// and a per-player hash of running totals.
type RedisLock struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisLock returns a RedisLock. Completion keys expire after ttl; the
// totals hash does not.
func NewRedisLock(rdb *redis.Client, ttl time.Duration) *RedisLock {
	return &RedisLock{rdb: rdb, ttl: ttl}
}

func doneKey(player, date string, length int) string {
	return fmt.Sprintf("qalat:done:%s:%s:%d", player, date, length)
}

func statsKey(player string) string { return "qalat:stats:" + player }

func (r *RedisLock) Completed(ctx context.Context, player string, length int, date string) (bool, error) {
	n, err := r.rdb.Exists(ctx, doneKey(player, date, length)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// markScript records a completion and bumps the totals in one step. The
// completion key is written last so a failed increment leaves nothing
// behind and the call can be retried.
//
// KEYS: done, stats. ARGV: payload, ttl ms, length, won (1/0).
var markScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HINCRBY', KEYS[2], 'played:' .. ARGV[3], 1)
if ARGV[4] == '1' then
	redis.call('HINCRBY', KEYS[2], 'wins:' .. ARGV[3], 1)
end
if tonumber(ARGV[2]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

func (r *RedisLock) MarkCompleted(ctx context.Context, c Completion) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	won := "0"
	if c.Won {
		won = "1"
	}
	keys := []string{doneKey(c.Player, c.Date, c.Length), statsKey(c.Player)}
	err = markScript.Run(ctx, r.rdb, keys, payload, r.ttl.Milliseconds(), c.Length, won).Err()
	if err != nil {
		return fmt.Errorf("daily: mark completion: %w", err)
	}
	return nil
}

func (r *RedisLock) Stats(ctx context.Context, player string) ([]Stat, error) {
	fields, err := r.rdb.HGetAll(ctx, statsKey(player)).Result()
	if err != nil {
		return nil, err
	}
	by := make(map[int]*Stat)
	get := func(n int) *Stat {
		if st, ok := by[n]; ok {
			return st
		}
		st := &Stat{Length: n}
		by[n] = st
		return st
	}
	for f, v := range fields {
		var n int
		count, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		switch {
		case scanField(f, "played:", &n):
			get(n).Played = count
		case scanField(f, "wins:", &n):
			get(n).Wins = count
		}
	}
	out := make([]Stat, 0, len(by))
	for _, st := range by {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Length < out[j].Length })
	return out, nil
}

func scanField(field, prefix string, n *int) bool {
	if !strings.HasPrefix(field, prefix) {
		return false
	}
	v, err := strconv.Atoi(strings.TrimPrefix(field, prefix))
	if err != nil {
		return false
	}
	*n = v
	return true
}
