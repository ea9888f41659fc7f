package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindcheck",
	Short: "Workplace mental health self-check",
	Long: "mindcheck asks 21 short questions about you and your workplace and " +
		"estimates whether you may be at risk of a mental health condition. " +
		"It is not a diagnosis.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDCHECK_DB env var)")
	rootCmd.PersistentFlags().String("model", "", "Path to model artifact JSON (overrides MINDCHECK_MODEL env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded at startup if present")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv loads the env file without overriding variables already set.
// A missing file is not an error.
func loadDotEnv(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINDCHECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadPredictor loads the artifact named by --model or MINDCHECK_MODEL,
// or the embedded default.
func loadPredictor(cmd *cobra.Command) (*model.Predictor, error) {
	flag, _ := cmd.Flags().GetString("model")
	p, err := model.Load(model.ResolvePath(flag), model.Options{})
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return p, nil
}

// notice prints a degraded-feature message to stderr.
func notice(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}
