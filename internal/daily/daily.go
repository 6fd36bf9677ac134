// Package daily tracks one completion per word length per calendar day and
// chooses target words.
package daily

import (
	"context"
	"encoding/binary"
	"errors"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD for t in loc (UTC when loc is nil).
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// Completion is one finished round.
type Completion struct {
	Player  string `json:"player"`
	Date    string `json:"date"`
	Length  int    `json:"length"`
	Won     bool   `json:"won"`
	Guesses int    `json:"guesses"`
}

// Lock records which (length, date) pairs a player has completed.
type Lock interface {
	Completed(ctx context.Context, player string, length int, date string) (bool, error)
	MarkCompleted(ctx context.Context, c Completion) error
}

// Stat summarizes a player's completions for one word length.
type Stat struct {
	Length int `json:"length"`
	Played int `json:"played"`
	Wins   int `json:"wins"`
}

// StatsReader is implemented by locks that can summarize history.
type StatsReader interface {
	Stats(ctx context.Context, player string) ([]Stat, error)
}

// SeededPicker gives every player the same target for a (date, length).
type SeededPicker struct {
	Salt string
}

// Pick returns ws[WordIndex(...)].
func (p SeededPicker) Pick(ws []string, length int, date string) (string, error) {
	if len(ws) == 0 {
		return "", errors.New("daily: empty list")
	}
	return ws[WordIndex(date, length, p.Salt, len(ws))], nil
}

// WordIndex returns a deterministic index using a blake2b MAC keyed by salt
// over "date|length", reduced modulo n.
func WordIndex(date string, length int, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		return 0
	}
	h.Write([]byte(date + "|" + strconv.Itoa(length)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
