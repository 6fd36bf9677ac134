// internal/config/config.go
//
// Runtime configuration for the qalat server and terminal client.
// Sources, later ones win:
//   - built-in defaults,
//   - environment variables (a .env file is loaded first by main via godotenv),
//   - an optional YAML file named by QALAT_CONFIG for word and hint locations.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Pick modes.
const (
	PickRandom = "random"
	PickDaily  = "daily"
)

// Config is the resolved configuration.
type Config struct {
	Port     string
	LogLevel string

	Store         string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Words map[int]string // length → location; empty uses the embedded list
	Hints string         // location; empty uses the embedded table

	PickMode  string
	DailySalt string
	Location  *time.Location // calendar day zone

	TokenSecret   string
	TokenTTL      time.Duration
	ClientOrigin  string
	SecureCookies bool
	FetchTimeout  time.Duration
}

// file is the QALAT_CONFIG document.
type file struct {
	Words map[int]string `yaml:"words"`
	Hints string         `yaml:"hints"`
}

// Load reads the environment through getenv (os.Getenv when nil).
func Load(getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	c := &Config{
		Port:          env("PORT", "5175"),
		LogLevel:      env("LOG_LEVEL", "info"),
		Store:         strings.ToLower(env("STORE", StoreSQLite)),
		DBPath:        env("DB_PATH", "./data/qalat.db"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		Words:         map[int]string{},
		Hints:         env("HINTS_SOURCE", ""),
		PickMode:      strings.ToLower(env("PICK_MODE", PickRandom)),
		DailySalt:     env("DAILY_SALT", "local_dev_salt"),
		TokenSecret:   env("TOKEN_SECRET", "dev_secret_change_me"),
		ClientOrigin:  env("CLIENT_ORIGIN", "http://localhost:5173"),
	}
	for _, n := range []int{3, 4, 5} {
		if v := env(fmt.Sprintf("WORDS_%d", n), ""); v != "" {
			c.Words[n] = v
		}
	}

	var err error
	if c.SecureCookies, err = strconv.ParseBool(env("COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("config: COOKIE_SECURE: %w", err)
	}
	if c.RedisDB, err = strconv.Atoi(env("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: REDIS_DB: %w", err)
	}
	days, err := strconv.Atoi(env("TOKEN_DAYS", "180"))
	if err != nil {
		return nil, fmt.Errorf("config: TOKEN_DAYS: %w", err)
	}
	c.TokenTTL = time.Duration(days) * 24 * time.Hour
	if c.FetchTimeout, err = time.ParseDuration(env("FETCH_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("config: FETCH_TIMEOUT: %w", err)
	}
	if c.Location, err = time.LoadLocation(env("GAME_TZ", "UTC")); err != nil {
		return nil, fmt.Errorf("config: GAME_TZ: %w", err)
	}

	if path := env("QALAT_CONFIG", ""); path != "" {
		if err := c.merge(path); err != nil {
			return nil, err
		}
	}
	return c, c.Validate()
}

func (c *Config) merge(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	for n, loc := range f.Words {
		if loc != "" {
			c.Words[n] = loc
		}
	}
	if f.Hints != "" {
		c.Hints = f.Hints
	}
	return nil
}

// Validate rejects unknown modes and unusable values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORE %q", c.Store))
	}
	switch c.PickMode {
	case PickRandom, PickDaily:
	default:
		errs = append(errs, fmt.Errorf("config: unknown PICK_MODE %q", c.PickMode))
	}
	for n := range c.Words {
		if n < 3 || n > 5 {
			errs = append(errs, fmt.Errorf("config: word source for unsupported length %d", n))
		}
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("config: TOKEN_DAYS must be positive"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("config: FETCH_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
