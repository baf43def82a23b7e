package cmd

import (
	"fmt"

	"github.com/hpkotak/buildrun/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	source := config.Path()
	if !config.Exists() {
		source += " (not found, showing defaults)"
	}
	_, _ = fmt.Fprintf(ioOut, "Config file: %s\n\n", source)
	_, _ = fmt.Fprint(ioOut, string(data))
	return nil
}
