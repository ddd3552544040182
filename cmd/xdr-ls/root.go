package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/drebelsky/xdr-ls/config"
	"github.com/drebelsky/xdr-ls/index"
)

var (
	cfgPath string
	verbose bool
	quiet   bool
	noColor bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xdr-ls",
	Short: "Indexer and language server for XDR interface definitions",
	Long: `xdr-ls indexes XDR interface definition files (RFC 4506) and answers
where a name is defined and where it is used. It can run as a stdio
language server, build an index from the command line, or query a
previously saved index.`,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "xdr-ls.toml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// initConfig loads the config file and sets up the process-wide logger.
// A missing file only matters when --config named it explicitly.
func initConfig(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(cfgPath); err != nil {
			return fmt.Errorf("config file %s: %w", cfgPath, err)
		}
	}
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	// Logs go to stderr so the serve command keeps stdout clean for the
	// protocol stream.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return fmt.Errorf("log file %s: %w", cfg.Log.File, err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("log file %s: %w", cfg.Log.File, err)
		}
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

	if noColor {
		color.NoColor = true
	}
	return nil
}

// indexOptions maps the loaded config onto index options.
func indexOptions() index.Options {
	return index.Options{
		Extensions: cfg.Index.Extension,
		Exclude:    cfg.Index.Exclude,
		Workers:    cfg.Index.Workers,
		Logger:     slog.Default(),
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
