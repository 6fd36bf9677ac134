package commands

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/qalat/internal/config"
	"github.com/robalobadob/qalat/internal/resource"
	"github.com/robalobadob/qalat/internal/words"
)

var (
	dbPath  string
	player  string
	memory  bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qalat",
	Short: "ቃላት - an Ethiopic-script word puzzle in the terminal",
	Long: `qalat plays the ቃላት word puzzle in the terminal.

Guess a 3, 4 or 5 glyph Amharic word in six tries. Each glyph is marked:
  green   - right glyph, right place
  blue    - same consonant family, right place
  yellow  - right glyph, wrong place
  magenta - same consonant family, wrong place
  grey    - not in the word

Games and daily completions are kept in the same SQLite database the
server uses, so a length finished here is finished there too.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) { rootCmd.Version = v }

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database (default $DB_PATH or ./data/qalat.db)")
	rootCmd.PersistentFlags().StringVar(&player, "player", "local", "Player ID for saved games and daily locks")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "Keep nothing on disk")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(playCmd, checkCmd, familyCmd, normalizeCmd, wordsCmd)
}

// loadConfig reads the environment the same way the server does.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func loadDictionary(ctx context.Context, cfg *config.Config) (*words.Dictionary, *resource.Fetcher, error) {
	fetch := resource.New(cfg.FetchTimeout)
	dict, err := words.Load(ctx, fetch, words.Sources(cfg.Words))
	return dict, fetch, err
}
