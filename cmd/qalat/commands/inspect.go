package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/letters"
	"github.com/robalobadob/qalat/internal/words"
)

var checkCmd = &cobra.Command{
	Use:   "check GUESS TARGET",
	Short: "Mark a guess against a target without playing",
	Long: `Mark GUESS against TARGET the way a game would and print the tiles.

The target is normalized first, so variant spellings (ሠ/ሰ, ሐ/ኀ/ሀ, ዐ/አ, ጸ/ፀ)
of the same word match. Neither word needs to be in the dictionary.

Example:
  qalat check ጸሀይ ፀሐይ`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		guess := letters.Glyphs(args[0])
		target := letters.Glyphs(args[1])
		if len(guess) != len(target) {
			return printError(fmt.Sprintf("%s has %d glyphs, %s has %d", args[0], len(guess), args[1], len(target)), nil)
		}
		marks := game.Evaluate(guess, letters.NormalizeGlyphs(target))
		printRow(cmd.OutOrStdout(), guess, marks)
		return nil
	},
}

var familyCmd = &cobra.Command{
	Use:   "family GLYPH",
	Short: "List the glyphs of a consonant family",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := letters.Glyphs(args[0])
		if len(g) != 1 {
			return printError("expected a single glyph", nil)
		}
		fam := letters.Family(g[0])
		if fam == nil {
			return printError(fmt.Sprintf("%s belongs to no family", args[0]), nil)
		}
		for _, r := range fam {
			if r == letters.Base(g[0]) {
				cyan.Fprintf(cmd.OutOrStdout(), "[%s]", string(r))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), " %s ", string(r))
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize WORD...",
	Short: "Print the canonical spelling used for lookup",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, w := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", w, letters.Normalize(letters.Clean(w)))
		}
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show dictionary sizes per word length",
	Long: `Load the word lists the server would use (WORDS_3, WORDS_4, WORDS_5,
QALAT_CONFIG or the embedded defaults) and print how many words each has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return printError("invalid configuration", err)
		}
		dict, _, err := loadDictionary(cmd.Context(), cfg)
		if err != nil {
			return printError(game.Message(fmt.Errorf("%w: %v", game.ErrResourceLoad, err)), err)
		}
		for _, n := range words.Lengths {
			c := green
			if dict.Len(n) == 0 {
				c = red
			}
			c.Fprintf(cmd.OutOrStdout(), "%d ፊደላት: %d\n", n, dict.Len(n))
		}
		return nil
	},
}
