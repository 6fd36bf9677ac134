package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/qalat/internal/game"
)

var (
	tileColors = map[game.Mark]*color.Color{
		game.MarkCorrect:         color.New(color.BgGreen, color.FgBlack, color.Bold),
		game.MarkFamilySamePos:   color.New(color.BgBlue, color.FgWhite, color.Bold),
		game.MarkPresent:         color.New(color.BgYellow, color.FgBlack, color.Bold),
		game.MarkFamilyElsewhere: color.New(color.BgMagenta, color.FgWhite, color.Bold),
		game.MarkAbsent:          color.New(color.BgHiBlack, color.FgWhite),
	}
	red   = color.New(color.FgRed, color.Bold)
	green = color.New(color.FgGreen)
	cyan  = color.New(color.FgCyan)
)

// printRow writes glyphs as coloured tiles followed by the mark names.
func printRow(w io.Writer, glyphs []rune, marks []game.Mark) {
	labels := make([]string, len(marks))
	for i, m := range marks {
		c, ok := tileColors[m]
		if !ok {
			c = tileColors[game.MarkAbsent]
		}
		g := "?"
		if i < len(glyphs) {
			g = string(glyphs[i])
		}
		c.Fprintf(w, " %s ", g)
		labels[i] = string(m)
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(labels, " "))
}

// printError writes a player-facing message in red to stderr and returns an
// error carrying it for cobra.
func printError(title string, err error) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
	}
	return fmt.Errorf("%s", title)
}
