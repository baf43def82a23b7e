package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hpkotak/buildrun/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Supported keys:
  compiler  Compiler executable (e.g., g++, clang++)
  source    C++ source file (e.g., test.cpp)
  std       Language standard without -std= (e.g., c++20, gnu++17)
  warnings  Warning flags, space separated (e.g., "-Wall -Wextra")
  output    Binary name without extension (e.g., test)
  log_file  Log file path, empty to log to stderr
  verbose   Debug logging (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Default()
	}

	switch key {
	case "compiler":
		cfg.Compiler = strings.TrimSpace(value)
	case "source":
		cfg.Source = strings.TrimSpace(value)
	case "std":
		cfg.Std = strings.TrimPrefix(strings.TrimSpace(value), "-std=")
	case "warnings":
		cfg.Warnings = strings.Join(strings.Fields(value), " ")
	case "output":
		cfg.Output = strings.TrimSpace(value)
	case "log_file":
		cfg.LogFile = strings.TrimSpace(value)
	case "verbose":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", value, err)
		}
		cfg.Verbose = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
	return nil
}
