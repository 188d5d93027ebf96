package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "modconcat"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	extensionFlagName          = "extension"
	compilerFlagName           = "compiler"
	excludeFileFlagName        = "exclude-file"
	excludeNodeModulesFlagName = "exclude-node-modules"
	excludePackageFlagName     = "exclude-package"
	browserFlagName            = "browser"
	allowUnresolvedFlagName    = "allow-unresolved"
	parallelFlagName           = "parallel"
	manifestFlagName           = "manifest"
	verboseFlagName            = "verbose"
	logFileFlagName            = "log-file"

	extensionsConfigKey         = "bundle.extensions"
	compilersConfigKey          = "bundle.compilers"
	excludeFilesConfigKey       = "bundle.exclude_files"
	excludeNodeModulesConfigKey = "bundle.exclude_node_modules"
	excludePackagesConfigKey    = "bundle.exclude_packages"
	browserConfigKey            = "bundle.browser"
	allowUnresolvedConfigKey    = "bundle.allow_unresolved"
	parallelConfigKey           = "bundle.parallel"
	manifestConfigKey           = "bundle.manifest"

	defaultParallel = 1
	defaultManifest = ""

	envPrefix = "MODCONCAT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".modconcat.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultCompilers maps extensions (without the leading dot, since viper
// splits keys on dots) to compiler loader names.
var defaultCompilers = map[string]string{
	"json": adapter.LoaderJSON,
}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(extensionsConfigKey, []string{".js", ".json"})
	viper.SetDefault(compilersConfigKey, defaultCompilers)
	viper.SetDefault(excludeFilesConfigKey, []string{})
	viper.SetDefault(excludeNodeModulesConfigKey, false)
	viper.SetDefault(excludePackagesConfigKey, []string{})
	viper.SetDefault(browserConfigKey, false)
	viper.SetDefault(allowUnresolvedConfigKey, false)
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(manifestConfigKey, defaultManifest)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// bundleOptionsFromConfig assembles bundle options from flags, env and the
// config file, in viper's precedence order.
func bundleOptionsFromConfig() (m.BundleOptions, error) {
	compilers, err := compilersFromConfig(viper.GetStringMapString(compilersConfigKey))
	if err != nil {
		return m.BundleOptions{}, err
	}

	excludeFiles := viper.GetStringSlice(excludeFilesConfigKey)
	files := make([]m.Path, 0, len(excludeFiles))

	for _, file := range excludeFiles {
		files = append(files, m.Path(file))
	}

	packages := viper.GetStringSlice(excludePackagesConfigKey)

	vendor := m.ExcludeNoPackages

	switch {
	case viper.GetBool(excludeNodeModulesConfigKey):
		vendor = m.ExcludeAllPackages
	case len(packages) > 0:
		vendor = m.ExcludeNamedPackages
	}

	return m.BundleOptions{
		Extensions:       viper.GetStringSlice(extensionsConfigKey),
		Compilers:        compilers,
		ExcludeFiles:     files,
		VendorExclusion:  vendor,
		ExcludedPackages: packages,
		Browser:          viper.GetBool(browserConfigKey),
		AllowUnresolved:  viper.GetBool(allowUnresolvedConfigKey),
	}, nil
}

func compilersFromConfig(loaders map[string]string) (map[string]m.Compiler, error) {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	compilers := make(map[string]m.Compiler, len(loaders))

	for _, ext := range exts {
		compiler, err := adapter.CompilerForLoader(loaders[ext])
		if err != nil {
			return nil, fmt.Errorf("compiler for %q: %w", ext, err)
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		compilers[ext] = compiler
	}

	return compilers, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
