package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/qalat/assets"
	"github.com/robalobadob/qalat/internal/config"
	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/database"
	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/hints"
	"github.com/robalobadob/qalat/internal/play"
	"github.com/robalobadob/qalat/internal/store"
	"github.com/robalobadob/qalat/internal/words"
)

var playLength int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's round interactively",
	Long: `Play a round in the terminal. Type a whole word per line.

Commands:
  :hint   show the hint for the word
  :share  print the result grid
  :reset  abandon the round (a finished length stays finished today)
  :quit   leave; an unfinished round resumes next time

Examples:
  qalat play --length 4
  qalat play --memory --length 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return printError("invalid configuration", err)
		}
		svc, closeFn, err := openService(cmd.Context(), cfg)
		if err != nil {
			return printError(game.Message(err), err)
		}
		defer closeFn()
		return runPlay(cmd.Context(), svc, player, playLength, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().IntVarP(&playLength, "length", "l", 4, "Word length (3, 4 or 5)")
}

// openService wires a play.Service over sqlite, or memory with --memory.
func openService(ctx context.Context, cfg *config.Config) (*play.Service, func(), error) {
	dict, fetch, err := loadDictionary(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", game.ErrResourceLoad, err)
	}

	var (
		st      store.Store
		lk      daily.Lock
		stats   daily.StatsReader
		closeFn = func() {}
	)
	if memory {
		ml := daily.NewMemoryLock()
		st, lk, stats = store.NewMemoryStore(), ml, ml
	} else {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, assets.Migrations()); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		sl := daily.NewSQLiteLock(db)
		st, lk, stats = store.NewSQLiteStore(db), sl, sl
		closeFn = func() { _ = db.Close() }
	}

	var pick game.Picker = words.RandomPicker{}
	if cfg.PickMode == config.PickDaily {
		pick = daily.SeededPicker{Salt: cfg.DailySalt}
	}
	eng := game.NewEngine(dict, lk, pick, game.WithLocation(cfg.Location))
	return play.New(eng, st, hints.NewSource(fetch, cfg.Hints), stats), closeFn, nil
}

// runPlay drives one round from lines read on in.
func runPlay(ctx context.Context, svc *play.Service, player string, length int, in io.Reader, out io.Writer) error {
	v, err := svc.Current(ctx, player)
	if err != nil {
		return printError(game.Message(err), err)
	}
	switch {
	case v.Status == game.StatusSelecting:
		if v, err = svc.SelectLength(ctx, player, length); err != nil {
			return printError(game.Message(err), err)
		}
		fmt.Fprintf(out, "ቃላት: %d ፊደላት, %d ሙከራዎች\n", v.Length, v.MaxGuesses)
	case v.Status.Terminal():
		renderBoard(out, v)
		fmt.Fprintln(out, "Round already finished today. Use :reset to choose another length.")
	default:
		fmt.Fprintf(out, "Resuming %d-glyph round\n", v.Length)
		renderBoard(out, v)
	}

	sc := bufio.NewScanner(in)
	for {
		if v.Status == game.StatusActive {
			fmt.Fprintf(out, "%d/%d> ", v.Row+1, v.MaxGuesses)
		} else {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":hint":
			hint, err := svc.Hint(ctx, player)
			if err != nil {
				red.Fprintln(out, play.Message(err))
				continue
			}
			cyan.Fprintln(out, hint)
			continue
		case ":share":
			text, err := svc.Share(ctx, player)
			if err != nil {
				red.Fprintln(out, play.Message(err))
				continue
			}
			fmt.Fprint(out, text)
			continue
		case ":reset":
			if _, err := svc.Reset(ctx, player); err != nil {
				red.Fprintln(out, play.Message(err))
				continue
			}
			if v, err = svc.SelectLength(ctx, player, length); err != nil {
				red.Fprintln(out, play.Message(err))
				return nil
			}
			fmt.Fprintf(out, "New %d-glyph round\n", v.Length)
			continue
		}

		next, outcome, err := svc.Guess(ctx, player, line)
		switch {
		case errors.Is(err, game.ErrUnknownWord):
			red.Fprintln(out, play.Message(err))
			continue
		case errors.Is(err, game.ErrInvalidState) && next.Status == game.StatusActive:
			red.Fprintf(out, "%d ፊደላት ያስገቡ\n", next.Length)
			continue
		case err != nil:
			red.Fprintln(out, play.Message(err))
			continue
		}
		v = next
		printRow(out, []rune(outcome.Guess), outcome.Marks)
		if outcome.Status.Terminal() {
			green.Fprintln(out, outcome.Message)
			if text, err := svc.Share(ctx, player); err == nil {
				fmt.Fprint(out, text)
			}
			return nil
		}
	}
}

func renderBoard(out io.Writer, v play.View) {
	for _, row := range v.Rows {
		printRow(out, []rune(row.Guess), row.Marks)
	}
	if v.Target != "" {
		fmt.Fprintf(out, "ቃሉ: %s\n", v.Target)
	}
}
