package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeoSousa155/DataScience/internal/store"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the first rows of the raw trips table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg.Verbose)

			st := store.New(logger)
			if err := st.Open(cfg.Database); err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if err := st.Migrate(); err != nil {
				return err
			}

			raw, err := st.LoadTrips(context.Background(), cfg.Limit)
			if err != nil {
				return err
			}
			if raw.NumRows() == 0 {
				return fmt.Errorf("no trips found in %s", cfg.Database)
			}
			raw.Render(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows to render")
	return cmd
}
