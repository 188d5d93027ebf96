package cmd

import (
	"github.com/spf13/cobra"

	"modconcat.dev/pkg/modconcat/internal/domain"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <entry>",
		Short: "List the modules an entry point pulls in",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := bundleOptionsFromConfig()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Entry:   m.Path(args[0]),
				Options: opts,
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
