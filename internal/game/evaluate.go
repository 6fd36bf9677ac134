package game

import "github.com/robalobadob/qalat/internal/letters"

// Evaluate classifies every position of guess against target.
//
// Five passes run in order, each over the positions still unlabeled:
//
//  1. correct: guess[i] == target[i]
//  2. blue:    target[i] is related to guess[i] but not equal
//  3. present: earliest unused j with target[j] == guess[i]
//  4. family:  earliest unused j with target[j] related to guess[i]
//  5. absent:  everything left
//
// A target position matched by a pass is consumed and cannot be matched
// again, so repeated glyphs are credited once per occurrence. Equality is on
// raw glyphs; "related" is letters.Related. Exactly len(guess) marks are
// returned.
func Evaluate(guess, target []rune) []Mark {
	n := len(guess)
	marks := make([]Mark, n)
	used := make([]bool, len(target))

	// Pass 1: exact matches.
	for i := 0; i < n && i < len(target); i++ {
		if guess[i] == target[i] {
			marks[i] = MarkCorrect
			used[i] = true
		}
	}

	// Pass 2: same slot, related glyph.
	for i := 0; i < n && i < len(target); i++ {
		if marks[i] != "" || used[i] {
			continue
		}
		if guess[i] != target[i] && letters.Related(guess[i], target[i]) {
			marks[i] = MarkFamilySamePos
			used[i] = true
		}
	}

	// Pass 3: exact glyph elsewhere.
	for i := 0; i < n; i++ {
		if marks[i] != "" {
			continue
		}
		if j := firstUnused(target, used, func(t rune) bool { return t == guess[i] }); j >= 0 {
			marks[i] = MarkPresent
			used[j] = true
		}
	}

	// Pass 4: related glyph elsewhere.
	for i := 0; i < n; i++ {
		if marks[i] != "" {
			continue
		}
		if j := firstUnused(target, used, func(t rune) bool { return letters.Related(guess[i], t) }); j >= 0 {
			marks[i] = MarkFamilyElsewhere
			used[j] = true
		}
	}

	// Pass 5: the rest.
	for i := range marks {
		if marks[i] == "" {
			marks[i] = MarkAbsent
		}
	}
	return marks
}

// firstUnused returns the lowest unconsumed index of target satisfying match, or -1.
func firstUnused(target []rune, used []bool, match func(rune) bool) int {
	for j, t := range target {
		if !used[j] && match(t) {
			return j
		}
	}
	return -1
}

// Merge folds one guess's marks into h. A glyph's hint only moves up the
// rank order (correct > present > family > blue > absent); absent is only
// recorded for a glyph with no hint yet.
func (h LetterHints) Merge(guess []rune, marks []Mark) {
	for i, g := range guess {
		if i >= len(marks) {
			return
		}
		key := string(g)
		cur, seen := h[key]
		m := marks[i]
		if m == MarkAbsent {
			if !seen {
				h[key] = MarkAbsent
			}
			continue
		}
		if !seen || m.rank() > cur.rank() {
			h[key] = m
		}
	}
}
