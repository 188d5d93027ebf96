package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default modconcat.yaml configuration file",
		Long: `Create a modconcat.yaml in the current working directory populated with the
current defaults so it can be edited manually.

The bundle section holds extensions, compilers (extension without the dot
mapped to a loader: json, js, jsx, ts, tsx), exclude_files,
exclude_node_modules, exclude_packages, browser, allow_unresolved, parallel
and manifest. The log section configures the rotating log file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
