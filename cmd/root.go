package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hpkotak/buildrun/internal/build"
	"github.com/hpkotak/buildrun/internal/config"
	"github.com/hpkotak/buildrun/internal/executor"
	"github.com/hpkotak/buildrun/internal/log"
	"github.com/hpkotak/buildrun/internal/platform"
	"github.com/spf13/cobra"
)

var (
	sourceFlag   string
	stdFlag      string
	compilerFlag string
	outputFlag   string
	logFileFlag  string
	verboseFlag  bool
)

// Package-level function variables for testability.
// Tests override these to avoid spawning the compiler.
var (
	runRoutine = func(ctx context.Context, r build.Routine) build.Result {
		return build.Run(ctx, r, executor.New())
	}
	hostOS           = platform.OS
	logOut io.Writer = os.Stderr
	ioIn   io.Reader = os.Stdin
	ioOut  io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "buildrun",
	Short: "Compile a C++ file, run it, and delete the binary",
	Long: `buildrun compiles test.cpp with g++ -std=c++20 -Wall, runs the produced
binary, and removes it afterward. On Windows the binary is test.exe.

Compiler and program output go straight to the console. Exit codes are
not inspected: every step runs even if an earlier one failed.

Examples:
  buildrun
  buildrun --source main.cpp --std c++17
  buildrun --verbose`,
	Args:              cobra.NoArgs,
	RunE:              runBuild,
	DisableAutoGenTag: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&sourceFlag, "source", "", "C++ source file to compile (default from config, test.cpp)")
	f.StringVar(&stdFlag, "std", "", "language standard passed as -std= (default from config, c++20)")
	f.StringVar(&compilerFlag, "compiler", "", "compiler executable (default from config, g++)")
	f.StringVar(&outputFlag, "output", "", "binary name without extension (default from config, test)")
	f.StringVar(&logFileFlag, "log-file", "", "write logs to this file instead of stderr")
	f.BoolVar(&verboseFlag, "verbose", false, "log each step at debug level")
}

func Execute() error {
	return rootCmd.Execute()
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logger.Flush()

	ctx := log.ToContext(context.Background(), logger)

	r := build.ForOS(hostOS(), cfg)
	res := runRoutine(ctx, r)

	for _, s := range res.Steps {
		logger.Debugf("%s: exit code %d", s.Name, s.ExitCode)
	}
	return nil
}

// applyFlags overrides config values with any flags set for this run.
func applyFlags(cfg *config.Config) {
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if stdFlag != "" {
		cfg.Std = stdFlag
	}
	if compilerFlag != "" {
		cfg.Compiler = compilerFlag
	}
	if outputFlag != "" {
		cfg.Output = outputFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
}
