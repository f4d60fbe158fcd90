package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cfonb/internal/buildinfo"
	"github.com/cleared-dev/cfonb/internal/config"
	"github.com/cleared-dev/cfonb/internal/logging"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
	pretty     bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "cfonb",
		Short:   "Decode CFONB 120 statements and 240 transfer files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <repo>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "human readable logs")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newImportsCommand(opts))

	return rootCmd
}

// load reads the config for repoRoot and applies the environment and flags.
func (o *options) load(repoRoot string) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = filepath.Join(repoRoot, config.FileName)
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(repoRoot, ".env")); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.pretty {
		cfg.Log.Pretty = true
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return logging.New(cmd.ErrOrStderr(), logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	}).With().Str("command", cmd.Name()).Logger()
}
