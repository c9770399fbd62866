package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goiconindex/internal/config"
	"github.com/dbsmedya/goiconindex/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile        string
	logLevel       string
	logFormat      string
	validExt       []string
	pathExclusions []string
	sortKey        string
	noColor        bool
)

var rootCmd = &cobra.Command{
	Use:   "goiconindex",
	Short: "Image resource indexer and browser",
	Long: `A CLI tool that enumerates image resources in a directory, zip archive
or S3-compatible bucket and groups the size variants of each logical image.

Features:
  - Size suffix grouping (icon_16.png, icon_32.png, icon.png -> icon)
  - Extension filters and path prefix exclusions
  - Case-insensitive sorting by name or path, search by name
  - Image dimensions for every variant (PNG, JPEG, GIF, BMP, TIFF, WebP, SVG)
  - JSON and YAML export`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	ctx := setupSignalHandler()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "goiconindex.yaml",
		"Path to configuration file (defaults are used if it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Index overrides
	rootCmd.PersistentFlags().StringSliceVar(&validExt, "ext", nil,
		"Override valid extensions, e.g. --ext .png,.svg")
	rootCmd.PersistentFlags().StringSliceVar(&pathExclusions, "exclude", nil,
		"Additional path prefixes to exclude")

	// Output overrides
	rootCmd.PersistentFlags().StringVar(&sortKey, "sort", "",
		"Override sort key (name, path)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		ValidExt:       validExt,
		PathExclusions: pathExclusions,
		Sort:           sortKey,
		NoColor:        noColor,
	}
}

// loadConfig loads the config file, applies CLI overrides and an optional
// root argument, and validates the result.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	overrides.Root = root
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration and creates the logger for a command.
func setup(root string) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
