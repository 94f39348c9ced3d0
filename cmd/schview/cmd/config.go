package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchema/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the effective configuration",
	Long: `Write the settings in effect, after flag overrides, as YAML. The file
goes to path when given, else to --config, else to the per-user location.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Debug("config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
