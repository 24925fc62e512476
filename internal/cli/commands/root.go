// Package commands implements the tripprep CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeoSousa155/DataScience/internal/cli/config"
)

// NewRootCommand builds the tripprep command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripprep",
		Short:         "Prepare ride-trip records for modeling",
		Long:          "tripprep loads raw trip records from SQLite, splits them into\nindependent train/test partitions, cleans both, and derives\nengineered features without leaking statistics across partitions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (default tripprep.yaml)")
	pf.String("database", "", "Path to the SQLite trips database")
	pf.Int("limit", 0, "Maximum trip rows to load (0 = all)")
	pf.String("target_column", "", "Label column separated before splitting")
	pf.Float64("test_fraction", 0, "Fraction of rows assigned to the test partition")
	pf.Int64("seed", -1, "Shuffle seed (negative = non-deterministic)")
	pf.String("missing_strategy", "", "Missing-value policy: mean|median|most_frequent|constant|drop")
	pf.Float64("fill_constant", 0, "Fill value for the constant strategy")
	pf.Float64("outlier_threshold", 0, "Absolute z-score for outlier removal (0 disables)")
	pf.Bool("verbose", false, "Enable debug logging")

	root.AddCommand(
		NewRunCommand(),
		NewPreviewCommand(),
		NewInitCommand(),
		NewVersionCommand(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig merges configuration for the given command and validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the CLI logger; debug level when verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}
