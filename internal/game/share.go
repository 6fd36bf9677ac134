package game

import (
	"fmt"
	"strings"
)

var tiles = map[Mark]string{
	MarkCorrect:         "🟩",
	MarkPresent:         "🟨",
	MarkFamilyElsewhere: "🟪",
	MarkFamilySamePos:   "🟦",
	MarkAbsent:          "⬛",
}

// Share renders the spoiler-free result grid a player can paste into chat:
//
//	ቃላት (4 ፊደላት) - 3/6
//	⬛🟨⬛🟦
//	...
func Share(s *Session) (string, error) {
	if s.Status == StatusSelecting {
		return "", fmt.Errorf("%w: nothing to share", ErrInvalidState)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "ቃላት (%d ፊደላት) - %d/%d\n", s.Length, len(s.Guesses), MaxGuesses)
	for _, row := range s.Marks {
		for _, m := range row {
			t, ok := tiles[m]
			if !ok {
				t = tiles[MarkAbsent]
			}
			b.WriteString(t)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
