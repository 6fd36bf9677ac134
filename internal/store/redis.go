package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/qalat/internal/game"
)

// redisStore keeps records under qalat:session:{player}. Saved games only
// matter for one calendar day, so every write refreshes a TTL.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a Store backed by rdb. A zero ttl keeps records
// until they are replaced or deleted.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(player string) string { return "qalat:session:" + player }

func (s *redisStore) Save(ctx context.Context, r game.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	return s.rdb.Set(ctx, sessionKey(r.Player), payload, s.ttl).Err()
}

func (s *redisStore) Load(ctx context.Context, player string) (game.Record, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(player)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Record{}, ErrNotFound
	}
	if err != nil {
		return game.Record{}, err
	}
	var r game.Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return game.Record{}, fmt.Errorf("store: decode record: %w", err)
	}
	return r, nil
}

func (s *redisStore) Delete(ctx context.Context, player string) error {
	return s.rdb.Del(ctx, sessionKey(player)).Err()
}
