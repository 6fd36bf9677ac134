// internal/letters/letters.go
//
// Letter classification for the Ethiopic script.
// Responsibilities:
//   - Base: collapse historically interchangeable glyphs (ሠ→ሰ, ሐ/ኀ→ሀ, ዐ→አ, ጸ→ፀ)
//     to one canonical glyph. Used for dictionary lookup and the win check.
//   - Family: group glyphs sharing a consonant root across its vowel orders
//     (ለ ሉ ሊ ላ ሌ ል ሎ ሏ). Used only for the family feedback tiers.
//   - Normalize: map Base over every glyph of a word.
//
// Both tables are built once at package init and never mutated; callers only
// see them through the functions below.
package letters

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type tables struct {
	base    map[rune]rune   // glyph → canonical glyph
	family  map[rune]rune   // canonical glyph → family representative
	members map[rune][]rune // family representative → members in vowel order
}

var tbl = build()

func build() *tables {
	t := &tables{
		base:    make(map[rune]rune),
		family:  make(map[rune]rune),
		members: make(map[rune][]rune, len(families)),
	}
	for _, row := range families {
		glyphs := []rune(row)
		rep := glyphs[0]
		t.members[rep] = glyphs
		for _, g := range glyphs {
			t.base[g] = g
			t.family[g] = rep
		}
	}
	for _, v := range variants {
		from, to := []rune(v.from), []rune(v.to)
		for i := range from {
			t.base[from[i]] = to[i]
			t.base[to[i]] = to[i]
		}
	}
	return t
}

// Base returns the canonical glyph for g, or g itself when g has no entry.
func Base(g rune) rune {
	if b, ok := tbl.base[g]; ok {
		return b
	}
	return g
}

// Family returns the glyphs of g's consonant family in vowel order, or nil
// when g belongs to no family. Variant glyphs resolve through Base first, so
// ሠ reports the ሰ family. The returned slice is a copy.
func Family(g rune) []rune {
	rep, ok := tbl.family[Base(g)]
	if !ok {
		return nil
	}
	m := tbl.members[rep]
	out := make([]rune, len(m))
	copy(out, m)
	return out
}

// familyOf returns the family representative of g, or 0.
func familyOf(g rune) rune {
	return tbl.family[Base(g)]
}

// SameFamily reports whether a and b share a defined consonant family.
func SameFamily(a, b rune) bool {
	fa := familyOf(a)
	return fa != 0 && fa == familyOf(b)
}

// Related reports whether a and b are the same letter up to normalization or
// vowel order: equal canonical glyphs, or members of one family.
func Related(a, b rune) bool {
	return Base(a) == Base(b) || SameFamily(a, b)
}

// Families returns every family representative in table order.
func Families() []rune {
	out := make([]rune, 0, len(families))
	for _, row := range families {
		r, _ := utf8.DecodeRuneInString(row)
		out = append(out, r)
	}
	return out
}

// Glyphs splits s into glyphs after trimming and NFC composition.
func Glyphs(s string) []rune {
	return []rune(Clean(s))
}

// Clean trims surrounding whitespace and composes s to NFC so that
// decomposed input maps onto the same table keys as precomposed input.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalize rewrites word glyph by glyph with Base. Length and order are kept
// and Normalize(Normalize(w)) == Normalize(w).
func Normalize(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		b.WriteRune(Base(r))
	}
	return b.String()
}

// NormalizeGlyphs is Normalize over a glyph slice; the input is not modified.
func NormalizeGlyphs(g []rune) []rune {
	out := make([]rune, len(g))
	for i, r := range g {
		out[i] = Base(r)
	}
	return out
}

// Len returns the number of glyphs in word.
func Len(word string) int { return utf8.RuneCountInString(word) }

// IsGlyph reports whether r is an Ethiopic syllable. Combining marks,
// punctuation and numerals (U+135D and up) are not.
func IsGlyph(r rune) bool {
	return r >= 0x1200 && r <= 0x135A && unicode.IsLetter(r)
}
