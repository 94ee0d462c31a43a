package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathbuddy",
	Short: "AI word-problem practice for primary school",
	Long:  "Mathbuddy serves LLM-generated Primary 5 arithmetic word problems, grades answers and tracks progress.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file found, using environment variables")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHBUDDY_DB env var)")
	serveFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then fallback, then MATHBUDDY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, fallback string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if fallback != "" {
		return fallback, store.EnsureDir(fallback)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command, fallback string) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, fallback)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
