// Package build runs the compile, run, cleanup sequence for one C++ source file.
//
// The sequence never stops early: exit codes and start failures are recorded
// on the Result and logged, and every step is attempted regardless.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpkotak/buildrun/internal/config"
	"github.com/hpkotak/buildrun/internal/executor"
	"github.com/hpkotak/buildrun/internal/log"
	"github.com/hpkotak/buildrun/internal/platform"
)

// Step names, in execution order.
const (
	StepCompile = "compile"
	StepRun     = "run"
	StepCleanup = "cleanup"
)

// Executor starts a process and waits for it. Implemented by *executor.Runner.
type Executor interface {
	Run(ctx context.Context, dir, name string, args ...string) (int, error)
}

// removeFile is swapped in tests.
var removeFile = os.Remove

// Routine is the fixed build for one OS family.
type Routine struct {
	OS       string
	Compiler string
	Source   string
	Std      string
	Warnings string

	// Binary is the output file name, including any executable extension.
	Binary string

	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// ForOS picks the routine for goos: Windows-family hosts get the .exe
// routine, every other host the Unix/Mac one.
func ForOS(goos string, cfg *config.Config) Routine {
	if platform.IsWindows(goos) {
		return windowsRoutine(cfg)
	}
	return unixRoutine(goos, cfg)
}

func windowsRoutine(cfg *config.Config) Routine {
	r := fromConfig(platform.Windows, cfg)
	r.Binary = platform.BinaryName(platform.Windows, cfg.Output)
	return r
}

func unixRoutine(goos string, cfg *config.Config) Routine {
	r := fromConfig(goos, cfg)
	r.Binary = cfg.Output
	return r
}

func fromConfig(goos string, cfg *config.Config) Routine {
	return Routine{
		OS:       goos,
		Compiler: cfg.Compiler,
		Source:   cfg.Source,
		Std:      cfg.Std,
		Warnings: cfg.Warnings,
	}
}

// CompileArgs returns the compiler arguments, e.g.
//
//	test.cpp -std=c++20 -Wall -o test
func (r Routine) CompileArgs() []string {
	args := []string{r.Source, "-std=" + r.Std}
	args = append(args, strings.Fields(r.Warnings)...)
	return append(args, "-o", r.Binary)
}

// CommandLine renders the compile command for display.
func (r Routine) CommandLine() string {
	return r.Compiler + " " + strings.Join(r.CompileArgs(), " ")
}

// RunPath is the path the produced binary is invoked by.
func (r Routine) RunPath() string {
	return platform.RunPath(r.OS, r.Binary)
}

// BinaryPath is the location of the produced binary on disk.
func (r Routine) BinaryPath() string {
	return filepath.Join(r.Dir, r.Binary)
}

// Step is the outcome of one stage of a run.
type Step struct {
	Name string

	// ExitCode is executor.NoExitCode when the process never ran.
	ExitCode int
	Err      error
}

// OK reports whether the step exited zero without error.
func (s Step) OK() bool {
	return s.Err == nil && s.ExitCode == 0
}

// Result collects the steps of one run in order.
type Result struct {
	Binary string
	Steps  []Step
}

// Step returns the recorded step with the given name.
func (res Result) Step(name string) (Step, bool) {
	for _, s := range res.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Run compiles, runs, and deletes the binary, in that order, without
// inspecting any intermediate status.
func Run(ctx context.Context, r Routine, exe Executor) Result {
	logger := log.Extract(ctx)
	res := Result{Binary: r.BinaryPath()}

	logger.Debugf("compiling: %s", r.CommandLine())
	res.Steps = append(res.Steps, record(logger, StepCompile, func() (int, error) {
		return exe.Run(ctx, r.Dir, r.Compiler, r.CompileArgs()...)
	}))

	logger.Debugf("running: %s", r.RunPath())
	res.Steps = append(res.Steps, record(logger, StepRun, func() (int, error) {
		return exe.Run(ctx, r.Dir, r.RunPath())
	}))

	logger.Debugf("removing: %s", res.Binary)
	res.Steps = append(res.Steps, record(logger, StepCleanup, func() (int, error) {
		return 0, cleanup(res.Binary)
	}))

	return res
}

func record(logger *log.Logger, name string, fn func() (int, error)) Step {
	code, err := fn()
	step := Step{Name: name, ExitCode: code, Err: err}

	l := logger.With("step", name)
	switch {
	case err != nil:
		l.Warnf("%s failed: %s", name, err)
	case code != 0:
		l.Warnf("%s exited with code %d", name, code)
	default:
		l.Debugf("%s done", name)
	}
	return step
}

// cleanup removes the binary. A binary that was never produced is not an error.
func cleanup(path string) error {
	err := removeFile(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("removing %s: %w", path, err)
}

var _ Executor = (*executor.Runner)(nil)
