package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/config"
	"github.com/mj1618/switcheroo/internal/logger"
	"github.com/mj1618/switcheroo/internal/output"
	"github.com/mj1618/switcheroo/internal/version"
)

var (
	// cfg and log are set by the root command before any subcommand runs.
	cfg *config.Config
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "switcheroo",
	Short: "List and switch between windows across spaces and displays",
	Long: `switcheroo enumerates the windows of running applications on every space
and display, and brings any of them to the foreground, switching space if needed.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/switcheroo/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if err := log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
}

func setup(cmd *cobra.Command, args []string) error {
	format, _ := rootCmd.PersistentFlags().GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	loaded, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
		loaded.LogLevel = level
	}
	cfg = loaded

	l, err := newLogger(cfg)
	if err != nil {
		return err
	}
	log = l
	log.Debug("config loaded", "path", path, "probe_limit", cfg.ProbeLimit, "icon_size", cfg.IconSize)
	return nil
}

func newLogger(c *config.Config) (*logger.Logger, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []logger.Option{logger.WithConsole(), logger.WithLevel(level)}
	if c.LogFile != "" {
		opts = append(opts, logger.WithFile(c.LogFile))
	}
	return logger.New(opts...)
}
