package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchema/internal/config"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/library"
)

var (
	// Global flags
	configPath  string
	logLevel    string
	metricsAddr string
	libDir      string

	// Set up by the root pre-run hook
	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "schview <library.lib> <schematic.sch>",
	Short: "Legacy KiCad (EESchema) schematic viewer",
	Long: `schview opens a KiCad 4/5 schematic (.sch) together with the symbol
library (.lib) it uses and shows it in an interactive window.

Controls: left-drag to pan | scroll to zoom | F to fit | R to rotate the
component under the cursor | V to rotate the view | Q or Esc to quit

Examples:
  schview kicad.lib kicad.sch                    # Open the viewer
  schview --lib-dir ~/kicad/library a.lib a.sch  # Also search a library tree
  schview info kicad.lib kicad.sch               # Print a summary without a window
  schview config                                 # Write the effective settings`,
	Args:              cobra.ExactArgs(2),
	PersistentPreRunE: setup,
	RunE:              runView,
	Version:           "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the per-user config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&libDir, "lib-dir", "", "also load every .lib file under this directory")
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if metricsAddr != "" {
		loaded.Metrics.Address = metricsAddr
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger, err = newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// load reads the library and the schematic named on the command line,
// plus any libraries under --lib-dir.
func load(libPath, schPath string) (*library.Libraries, *legacy.Schematic, error) {
	libs := library.New(logger)
	if err := libs.LoadFiles(libPath); err != nil {
		logger.Warn("library failed to load", "path", libPath, "error", err)
		return nil, nil, fmt.Errorf("open library: %w", err)
	}
	if libDir != "" {
		if err := libs.LoadDir(libDir); err != nil {
			logger.Warn("library directory failed to load", "path", libDir, "error", err)
			return nil, nil, fmt.Errorf("open library directory: %w", err)
		}
	}

	file, err := legacy.ParseSchematicFile(schPath)
	if err != nil {
		logger.Warn("schematic failed to load", "path", schPath, "error", err)
		return nil, nil, fmt.Errorf("open schematic: %w", err)
	}
	return libs, file, nil
}
