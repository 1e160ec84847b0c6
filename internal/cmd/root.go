package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/pathsieve/internal/config"
	"github.com/harrison/pathsieve/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pathsieve
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathsieve",
		Short: "Pathspec translation and chunked stream processing",
		Long: `Pathsieve works with git-style pathspecs and chunked data streams.

It parses pathspec arguments (including long-form magic such as
:(top,icase)pattern), rewrites them for subdirectory scopes, and runs
incremental processing pipelines over byte streams: decoding, line
splitting, boundary-safe re-chunking, and JSON line parsing.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to config file (default .pathsieve/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log verbosity: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("color", "", "colorize output: auto, always, never")
	cmd.PersistentFlags().Bool("quiet", false, "suppress progress logging and run summaries")

	// Add subcommands
	cmd.AddCommand(NewParseCommand())
	cmd.AddCommand(NewTranslateCommand())
	cmd.AddCommand(NewSubdirsCommand())
	cmd.AddCommand(NewStreamCommand())

	return cmd
}

// loadConfigForCommand resolves the effective configuration for a command
// invocation: config file (or defaults) overlaid with persistent flags.
func loadConfigForCommand(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.MergeWithFlags(&level, nil, nil, nil, nil)
	}
	if mode, _ := cmd.Flags().GetString("color"); mode != "" {
		cfg.MergeWithFlags(nil, &mode, nil, nil, nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	applyColorMode(cfg.Color)
	return cfg, nil
}

// applyColorMode maps the configured color mode onto the color library's
// global switch. "auto" keeps its TTY detection untouched.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// newCommandLogger builds the logger used by command implementations.
// Progress goes to the command's error stream so data output stays
// clean; --quiet swaps in the discarding logger.
func newCommandLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return logger.NewNoOpLogger()
	}
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
}
