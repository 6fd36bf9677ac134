// Package hints serves free-text hints for target words.
//
// The hint table is fetched on the first Lookup, not at startup. A failed
// fetch is returned to the caller and retried on the next Lookup.
package hints

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/robalobadob/qalat/internal/letters"
	"github.com/robalobadob/qalat/internal/resource"
)

// DefaultAsset is the embedded hint table.
const DefaultAsset = "hints.json"

// ErrMalformed is returned when the hint document is not a JSON object or
// array.
var ErrMalformed = errors.New("hints: malformed hint table")

// Source lazily loads and caches the hint table.
type Source struct {
	fetch    *resource.Fetcher
	location string

	mu     sync.Mutex
	loaded bool
	table  map[string]string // normalized word → hint
}

// NewSource returns a Source reading from location (empty = embedded).
func NewSource(f *resource.Fetcher, location string) *Source {
	return &Source{fetch: f, location: location}
}

// Lookup returns the hint for word. ok is false when the table has no entry.
func (s *Source) Lookup(ctx context.Context, word string) (hint string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		if err := s.load(ctx); err != nil {
			log.Warn().Err(err).Str("location", s.location).Msg("hint table load failed")
			return "", false, err
		}
	}
	hint, ok = s.table[letters.Normalize(letters.Clean(word))]
	return hint, ok, nil
}

func (s *Source) load(ctx context.Context) error {
	data, err := s.fetch.Fetch(ctx, s.location, DefaultAsset)
	if err != nil {
		return err
	}
	table, err := Parse(data)
	if err != nil {
		return err
	}
	s.table, s.loaded = table, true
	log.Info().Int("hints", len(table)).Msg("hint table loaded")
	return nil
}

// Parse reads either {"word": "hint", ...} or [{"word": "...", "hint": "..."}, ...].
// Keys are normalized so lookups match normalized targets.
func Parse(data []byte) (map[string]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}
	doc := gjson.ParseBytes(data)
	out := make(map[string]string)
	switch {
	case doc.IsObject():
		doc.ForEach(func(k, v gjson.Result) bool {
			add(out, k.String(), v.String())
			return true
		})
	case doc.IsArray():
		doc.ForEach(func(_, v gjson.Result) bool {
			add(out, v.Get("word").String(), v.Get("hint").String())
			return true
		})
	default:
		return nil, ErrMalformed
	}
	return out, nil
}

func add(m map[string]string, word, hint string) {
	word = letters.Normalize(letters.Clean(word))
	if word == "" || hint == "" {
		return
	}
	m[word] = hint
}
