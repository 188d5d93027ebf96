// Package cmd provides the root command and CLI setup for modconcat.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	"modconcat.dev/pkg/modconcat/internal/controller"
	"modconcat.dev/pkg/modconcat/internal/domain"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var resolver adapter.ModuleResolver
var manifestStore adapter.ManifestStore
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by the commands that walk a module graph.
var (
	extensionsFlag         []string
	compilersFlag          map[string]string
	excludeFilesFlag       []string
	excludeNodeModulesFlag bool
	excludePackagesFlag    []string
	browserFlag            bool
	allowUnresolvedFlag    bool
	verboseFlag            bool
	logFileFlag            string
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()

	localResolver, err := adapter.NewLocalModuleResolver(fsAdapter)
	cobra.CheckErr(err)

	resolver = localResolver
	manifestStore = adapter.NewManifestStore()
	workflow = domain.NewWorkflow(
		fsAdapter,
		resolver,
		manifestStore,
		ui,
	)
}

const specifierHelp = `Only static require() calls with a single string literal are followed.
Builtins, native addons (.node) and excluded files are left for the host
require at run time.`

const rootLongDescription = `modconcat concatenates a CommonJS program and every module it statically
requires into a single self-contained JavaScript file.

` + specifierHelp

const bundleLongDescription = `Bundle each <entry> into the <output> that follows it. Several pairs may be
given; they are bundled concurrently (see --parallel).

` + specifierHelp

const listLongDescription = `List the modules that would be bundled from <entry>, in identifier order,
without writing anything.

` + specifierHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "modconcat",
		Short:        "CommonJS module concatenator",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringSliceVarP(&extensionsFlag, extensionFlagName, "e", viper.GetStringSlice(extensionsConfigKey), "extensions probed when resolving (can be repeated)")
	bindFlagToConfig(flags.Lookup(extensionFlagName), extensionsConfigKey)

	flags.StringToStringVar(&compilersFlag, compilerFlagName, nil, "compile an extension with a loader, e.g. ts=ts (loaders: json, js, jsx, ts, tsx)")
	bindFlagToConfig(flags.Lookup(compilerFlagName), compilersConfigKey)

	flags.StringArrayVar(&excludeFilesFlag, excludeFileFlagName, viper.GetStringSlice(excludeFilesConfigKey), "file left out of the bundle (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFileFlagName), excludeFilesConfigKey)

	flags.BoolVar(&excludeNodeModulesFlag, excludeNodeModulesFlagName, viper.GetBool(excludeNodeModulesConfigKey), "leave every package from node_modules out of the bundle")
	bindFlagToConfig(flags.Lookup(excludeNodeModulesFlagName), excludeNodeModulesConfigKey)

	flags.StringArrayVar(&excludePackagesFlag, excludePackageFlagName, viper.GetStringSlice(excludePackagesConfigKey), "package left out of the bundle (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludePackageFlagName), excludePackagesConfigKey)

	flags.BoolVar(&browserFlag, browserFlagName, viper.GetBool(browserConfigKey), "bundle for browsers: honour package.json \"browser\" and bundle builtin shims")
	bindFlagToConfig(flags.Lookup(browserFlagName), browserConfigKey)

	flags.BoolVar(&allowUnresolvedFlag, allowUnresolvedFlagName, viper.GetBool(allowUnresolvedConfigKey), "leave unresolvable require() calls in place instead of failing")
	bindFlagToConfig(flags.Lookup(allowUnresolvedFlagName), allowUnresolvedConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFileFlag, logFileFlagName, "", "log file (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// parseTargets pairs positional arguments as entry/output.
func parseTargets(args []string) ([]m.Target, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("expected <entry> <output> pairs, got %d argument(s)", len(args))
	}

	paths := parsePaths(args)
	targets := make([]m.Target, 0, len(paths)/2)

	for i := 0; i < len(paths); i += 2 {
		targets = append(targets, m.Target{Entry: paths[i], Output: paths[i+1]})
	}

	return targets, nil
}
