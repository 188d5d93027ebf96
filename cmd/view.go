package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modconcat.dev/pkg/modconcat/internal/domain"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

var errMissingManifest = errors.New("no manifest given and bundle.manifest is not configured")

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [manifest]",
		Short: "View a bundle manifest",
		Long: `View a manifest written by "bundle --manifest". Without an argument the
manifest path from the configuration (bundle.manifest) is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := viper.GetString(manifestConfigKey)
			if len(args) == 1 {
				manifest = args[0]
			}

			if manifest == "" {
				return errMissingManifest
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Manifest: m.Path(manifest)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
