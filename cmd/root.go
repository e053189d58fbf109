package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/cardiz/internal/config"
	"github.com/abhisek/cardiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cardiz [flags] <deck paths...>",
	Short: "Adaptive flashcard quiz",
	Long: "cardiz quizzes you on flashcard decks in the terminal. Cards you miss come up more\n" +
		"often; cards you know come up less. Paths may be deck files or directories.",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuiz,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	f := rootCmd.Flags()
	f.IntP("count", "c", 0, "Number of problems to ask (0 means no limit)")
	f.StringArrayP("faces", "f", nil, "Only ask questions on these faces (repeatable)")
	f.Bool("line", false, "Show a sparkline of the card weights")
	f.StringP("mode", "m", "match", "Quiz mode: match, flash or type")
	f.Bool("plain", false, "Use the line-mode prompt instead of the terminal UI")
	f.String("log", "", "Write logs to this file")
	f.String("log-level", "info", "Log level: debug, info, warn or error")

	pf := rootCmd.PersistentFlags()
	pf.String("store", "json", "Stats backend: json or sqlite")
	pf.String("stats", "", "Path to the stats file (overrides CARDIZ_STATS)")
	pf.String("db", "", "Path to the SQLite database file (overrides CARDIZ_DB)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the flags that were set on
// the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("faces") {
		cfg.Faces, _ = flags.GetStringArray("faces")
	}
	if flags.Changed("line") {
		cfg.Line, _ = flags.GetBool("line")
	}
	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("plain") {
		cfg.Plain, _ = flags.GetBool("plain")
	}
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("stats") {
		cfg.Stats, _ = flags.GetString("stats")
	}
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("log") {
		cfg.LogPath, _ = flags.GetString("log")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path using the --db flag or
// CARDIZ_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
