// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load one word list per supported length (3, 4, 5) from a location
//     (URL, file path, or the embedded defaults).
//   - Keep the raw list for target selection and a normalized set for
//     membership tests.
//   - Supply utility functions like RandomWord, Contains, and Stats.
//
// List formats:
//   - one word per line (blank lines and "#" comments ignored), or
//   - a JSON array of strings.
//
// Constraints:
//   • Words are NFC-composed and trimmed.
//   • Words whose glyph count differs from the list's length are dropped.
//   • Membership is tested on the normalized form.

package words

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/robalobadob/qalat/internal/letters"
	"github.com/robalobadob/qalat/internal/resource"
)

// Lengths lists the supported word lengths.
var Lengths = []int{3, 4, 5}

// Sources maps a word length to the location of its list. Missing entries
// fall back to the embedded default for that length.
type Sources map[int]string

// list holds the words of one length.
type list struct {
	raw        []string            // as loaded, for target selection
	normalized map[string]struct{} // normalized forms, for lookup
}

// Dictionary is the read-only set of valid words per length.
type Dictionary struct {
	lists map[int]*list
}

// New builds a Dictionary from in-memory lists.
func New(byLength map[int][]string) *Dictionary {
	d := &Dictionary{lists: make(map[int]*list, len(byLength))}
	for n, ws := range byLength {
		d.lists[n] = newList(n, ws)
	}
	return d
}

// Load fetches and parses every supported length. Any fetch failure aborts
// the whole load; empty lists are kept and reported by Len.
func Load(ctx context.Context, f *resource.Fetcher, src Sources) (*Dictionary, error) {
	byLength := make(map[int][]string, len(Lengths))
	for _, n := range Lengths {
		data, err := f.Fetch(ctx, src[n], DefaultAsset(n))
		if err != nil {
			return nil, fmt.Errorf("words: load %d-letter list: %w", n, err)
		}
		byLength[n] = Parse(data)
	}
	d := New(byLength)
	for _, n := range Lengths {
		if d.Len(n) == 0 {
			log.Warn().Int("length", n).Msg("word list is empty")
		}
	}
	log.Info().Interface("counts", d.Stats()).Msg("word lists loaded")
	return d, nil
}

// DefaultAsset names the embedded list for length n.
func DefaultAsset(n int) string { return fmt.Sprintf("words%d.txt", n) }

// Parse splits data into words. A leading '[' selects the JSON array form.
func Parse(data []byte) []string {
	trimmed := bytes.TrimSpace(data)
	var out []string
	if len(trimmed) > 0 && trimmed[0] == '[' {
		gjson.ParseBytes(trimmed).ForEach(func(_, v gjson.Result) bool {
			if w := letters.Clean(v.String()); w != "" {
				out = append(out, w)
			}
			return true
		})
		return out
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		w := letters.Clean(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out
}

func newList(n int, ws []string) *list {
	l := &list{normalized: make(map[string]struct{}, len(ws))}
	seen := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		w = letters.Clean(w)
		if letters.Len(w) != n {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		l.raw = append(l.raw, w)
		l.normalized[letters.Normalize(w)] = struct{}{}
	}
	return l
}

// Words returns the raw words of length n. The slice must not be modified.
func (d *Dictionary) Words(n int) []string {
	if l, ok := d.lists[n]; ok {
		return l.raw
	}
	return nil
}

// Len returns the number of words of length n.
func (d *Dictionary) Len(n int) int { return len(d.Words(n)) }

// Contains reports whether word is valid for length n once normalized.
func (d *Dictionary) Contains(n int, word string) bool {
	l, ok := d.lists[n]
	if !ok {
		return false
	}
	_, ok = l.normalized[letters.Normalize(letters.Clean(word))]
	return ok
}

// Stats returns the word count per length.
func (d *Dictionary) Stats() map[int]int {
	out := make(map[int]int, len(d.lists))
	for n, l := range d.lists {
		out[n] = len(l.raw)
	}
	return out
}

// Supported returns the lengths that have at least one word, ascending.
func (d *Dictionary) Supported() []int {
	var out []int
	for n, l := range d.lists {
		if len(l.raw) > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// RandomPicker selects targets uniformly with crypto/rand.
type RandomPicker struct{}

// Pick returns a random entry of ws. date and length are ignored.
func (RandomPicker) Pick(ws []string, _ int, _ string) (string, error) {
	if len(ws) == 0 {
		return "", fmt.Errorf("words: empty list")
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(ws))))
	if err != nil {
		return "", err
	}
	return ws[nBig.Int64()], nil
}
