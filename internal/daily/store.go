package daily

import (
	"context"
	"database/sql"
)

// SQLiteLock persists completions in the daily_completions table.
type SQLiteLock struct{ db *sql.DB }

func NewSQLiteLock(db *sql.DB) *SQLiteLock { return &SQLiteLock{db: db} }

func (s *SQLiteLock) Completed(ctx context.Context, player string, length int, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_completions WHERE player_id=? AND date=? AND word_length=?",
		player, date, length,
	).Scan(&cnt)
	return cnt > 0, err
}

// MarkCompleted inserts the completion; a second insert for the same key is ignored.
func (s *SQLiteLock) MarkCompleted(ctx context.Context, c Completion) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_completions(player_id, date, word_length, won, guesses)
		VALUES(?,?,?,?,?)`, c.Player, c.Date, c.Length, c.Won, c.Guesses,
	)
	return err
}

func (s *SQLiteLock) Stats(ctx context.Context, player string) ([]Stat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word_length, COUNT(1), COALESCE(SUM(won), 0)
		FROM daily_completions
		WHERE player_id=?
		GROUP BY word_length
		ORDER BY word_length ASC`, player,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Stat{}
	for rows.Next() {
		var st Stat
		if err := rows.Scan(&st.Length, &st.Played, &st.Wins); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
