package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/qalat/assets"
	"github.com/robalobadob/qalat/internal/config"
	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/database"
	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/hints"
	"github.com/robalobadob/qalat/internal/httpserver"
	"github.com/robalobadob/qalat/internal/play"
	"github.com/robalobadob/qalat/internal/resource"
	"github.com/robalobadob/qalat/internal/store"
	"github.com/robalobadob/qalat/internal/words"
)

// redisTTL bounds saved games and completion keys; only today's matter.
const redisTTL = 48 * time.Hour

// lock is the daily lock together with its history summary.
type lock interface {
	daily.Lock
	daily.StatsReader
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx := context.Background()
	fetch := resource.New(cfg.FetchTimeout)
	dict, err := words.Load(ctx, fetch, words.Sources(cfg.Words))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	st, lk, closeFn, err := openBackends(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open store")
	}
	defer closeFn()

	var pick game.Picker = words.RandomPicker{}
	if cfg.PickMode == config.PickDaily {
		pick = daily.SeededPicker{Salt: cfg.DailySalt}
	}
	eng := game.NewEngine(dict, lk, pick, game.WithLocation(cfg.Location))
	svc := play.New(eng, st, hints.NewSource(fetch, cfg.Hints), lk)

	srv := httpserver.New(svc, dict, httpserver.Options{
		TokenSecret:  cfg.TokenSecret,
		TokenTTL:     cfg.TokenTTL,
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.SecureCookies,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.Store).
		Str("pick", cfg.PickMode).
		Str("tz", cfg.Location.String()).
		Msg("starting qalat server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openBackends builds the session store and daily lock for cfg.Store.
func openBackends(ctx context.Context, cfg *config.Config) (store.Store, lock, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("memory store: games and daily locks are lost on restart")
		return store.NewMemoryStore(), daily.NewMemoryLock(), func() {}, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return store.NewRedisStore(rdb, redisTTL), daily.NewRedisLock(rdb, redisTTL), func() { _ = rdb.Close() }, nil

	default:
		db, err := openSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewSQLiteStore(db), daily.NewSQLiteLock(db), func() { _ = db.Close() }, nil
	}
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := database.Migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}
