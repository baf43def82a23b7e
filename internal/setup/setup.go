// Package setup handles first-run checks: locating the compiler and writing
// a default config file. Writing the config requires explicit user consent.
package setup

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/hpkotak/buildrun/internal/build"
	"github.com/hpkotak/buildrun/internal/config"
	"github.com/hpkotak/buildrun/internal/executor"
	"github.com/hpkotak/buildrun/internal/platform"
)

// Package-level function variables for testability.
var (
	lookPath   = exec.LookPath
	platformOS = platform.OS
)

// Run executes the interactive setup flow.
// in and out are injectable for testability.
func Run(in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "buildrun setup")
	_, _ = fmt.Fprintln(out, "==============")
	_, _ = fmt.Fprintf(out, "Platform: %s\n\n", platformOS())

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := ensureCompiler(cfg.Compiler, out); err != nil {
		return err
	}

	r := build.ForOS(platformOS(), cfg)
	_, _ = fmt.Fprintf(out, "[ok] Build command: %s\n", r.CommandLine())
	_, _ = fmt.Fprintf(out, "[ok] Binary: %s (removed after each run)\n", r.RunPath())

	if config.Exists() {
		_, _ = fmt.Fprintf(out, "[ok] Config found at %s\n", config.Path())
		return nil
	}

	if !executor.Confirm(fmt.Sprintf("Write default config to %s?", config.Path()), true, in, out) {
		_, _ = fmt.Fprintln(out, "Skipped. Built-in defaults will be used.")
		return nil
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfig saved to %s\n", config.Path())
	_, _ = fmt.Fprintln(out, "Ready! Try: buildrun")
	return nil
}

func ensureCompiler(compiler string, out io.Writer) error {
	if path, err := lookPath(compiler); err == nil {
		_, _ = fmt.Fprintf(out, "[ok] %s found at %s\n", compiler, path)
		return nil
	}

	_, _ = fmt.Fprintf(out, "[!!] %s not found\n", compiler)
	_, _ = fmt.Fprintf(out, "     %s\n", installHint(platformOS()))
	return fmt.Errorf("compiler %s is required", compiler)
}

func installHint(goos string) string {
	switch goos {
	case "darwin":
		return "Install it with: xcode-select --install (or brew install gcc)"
	case "linux":
		return "Install it with your package manager, e.g. sudo apt install g++"
	case platform.Windows:
		return "Install MinGW-w64 (e.g. via MSYS2) and add its bin directory to PATH"
	default:
		return "Install a C++ compiler and make sure it is on PATH"
	}
}
