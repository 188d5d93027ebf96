package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modconcat.dev/pkg/modconcat/internal/domain"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

var parallelFlag int
var manifestFlag string

// bundleCmd represents the bundle command.
var bundleCmd = newBundleCmd()

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <entry> <output> [<entry> <output>...]",
		Short: "Bundle entry points into single files",
		Long:  bundleLongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			_, err := parseTargets(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseTargets(args)
			if err != nil {
				return err
			}

			opts, err := bundleOptionsFromConfig()
			if err != nil {
				return err
			}

			return workflow.Bundle(cmd.Context(), domain.BundleArgs{
				Targets:  targets,
				Options:  opts,
				Parallel: viper.GetInt(parallelConfigKey),
				Manifest: m.Path(viper.GetString(manifestConfigKey)),
			})
		},
	}

	configureBundleFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}

func configureBundleFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of targets bundled concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVarP(&manifestFlag, manifestFlagName, "m", viper.GetString(manifestConfigKey), "write a YAML manifest of the produced bundles to this path")
	bindFlagToConfig(cmd.Flags().Lookup(manifestFlagName), manifestConfigKey)
}
