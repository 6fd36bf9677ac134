// internal/database/database.go
//
// SQLite access for the session store and the daily lock.
// Responsibilities:
//   - Open a database file with WAL journaling, a busy timeout and foreign keys.
//   - Apply the embedded *.sql migrations once each, in name order, recording
//     them in schema_migrations.

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Open opens path, creating it and its parent directory when missing.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("database: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}
	return db, nil
}

// Migrate applies every *.sql file at the root of migrations that is not yet
// recorded. Each file runs in its own transaction together with its record.
func Migrate(db *sql.DB, migrations fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("database: create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("database: list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var one int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name=?`, name).Scan(&one)
		switch {
		case err == nil:
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("database: query schema_migrations: %w", err)
		}

		script, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("database: read %s: %w", name, err)
		}
		if err := apply(db, name, string(script)); err != nil {
			return err
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

func apply(db *sql.DB, name, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return fmt.Errorf("database: apply %s: %w", name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(name, applied_at) VALUES (?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("database: record %s: %w", name, err)
	}
	return tx.Commit()
}
