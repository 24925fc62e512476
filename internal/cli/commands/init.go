package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/LeoSousa155/DataScience/internal/cli/config"
)

const initFileName = "tripprep.yaml"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter tripprep.yaml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(initFileName); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", initFileName)
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return err
			}
			if err := os.WriteFile(initFileName, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", initFileName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", initFileName)
			return nil
		},
	}
}
