package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/qalat/internal/game"
)

// sqliteStore keeps one row per player in the sessions table, the record
// serialized as JSON.
type sqliteStore struct{ db *sql.DB }

// NewSQLiteStore returns a Store over a migrated database.
func NewSQLiteStore(db *sql.DB) Store { return &sqliteStore{db: db} }

func (s *sqliteStore) Save(ctx context.Context, r game.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions(player_id, date, record, updated_at) VALUES(?,?,?,?)
		ON CONFLICT(player_id) DO UPDATE SET
			date=excluded.date, record=excluded.record, updated_at=excluded.updated_at`,
		r.Player, r.Date, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *sqliteStore) Load(ctx context.Context, player string) (game.Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM sessions WHERE player_id=?`, player,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Record{}, ErrNotFound
	}
	if err != nil {
		return game.Record{}, err
	}
	var r game.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return game.Record{}, fmt.Errorf("store: decode record: %w", err)
	}
	return r, nil
}

func (s *sqliteStore) Delete(ctx context.Context, player string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE player_id=?`, player)
	return err
}
