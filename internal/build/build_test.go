package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpkotak/buildrun/internal/config"
	"github.com/hpkotak/buildrun/internal/executor"
)

type call struct {
	dir  string
	name string
	args []string
}

// fakeExecutor records calls and replies with canned results keyed by command name.
type fakeExecutor struct {
	calls  []call
	codes  map[string]int
	errs   map[string]error
	onCall func(name string)
}

func (f *fakeExecutor) Run(_ context.Context, dir, name string, args ...string) (int, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	if f.onCall != nil {
		f.onCall(name)
	}
	if err := f.errs[name]; err != nil {
		return executor.NoExitCode, err
	}
	return f.codes[name], nil
}

func TestForOS(t *testing.T) {
	tests := []struct {
		goos        string
		wantBinary  string
		wantRunPath string
		wantCommand string
	}{
		{"windows", "test.exe", `.\test.exe`, "g++ test.cpp -std=c++20 -Wall -o test.exe"},
		{"linux", "test", "./test", "g++ test.cpp -std=c++20 -Wall -o test"},
		{"darwin", "test", "./test", "g++ test.cpp -std=c++20 -Wall -o test"},
		{"freebsd", "test", "./test", "g++ test.cpp -std=c++20 -Wall -o test"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			r := ForOS(tt.goos, config.Default())

			assert.Equal(t, tt.wantBinary, r.Binary)
			assert.Equal(t, tt.wantRunPath, r.RunPath())
			assert.Equal(t, tt.wantCommand, r.CommandLine())
		})
	}
}

func TestCompileArgs_MultipleWarnings(t *testing.T) {
	cfg := config.Default()
	cfg.Warnings = "-Wall  -Wextra"
	cfg.Std = "c++17"

	r := ForOS("linux", cfg)

	assert.Equal(t, []string{"test.cpp", "-std=c++17", "-Wall", "-Wextra", "-o", "test"}, r.CompileArgs())
}

func TestCompileArgs_NoWarnings(t *testing.T) {
	cfg := config.Default()
	cfg.Warnings = ""

	r := ForOS("linux", cfg)

	assert.Equal(t, []string{"test.cpp", "-std=c++20", "-o", "test"}, r.CompileArgs())
}

func TestRun_StepOrder(t *testing.T) {
	dir := t.TempDir()
	r := ForOS("linux", config.Default())
	r.Dir = dir

	fake := &fakeExecutor{
		onCall: func(name string) {
			if name == "g++" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "test"), []byte("bin"), 0o755))
			}
		},
	}

	res := Run(context.Background(), r, fake)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, call{dir: dir, name: "g++", args: r.CompileArgs()}, fake.calls[0])
	assert.Equal(t, dir, fake.calls[1].dir)
	assert.Equal(t, "./test", fake.calls[1].name)
	assert.Empty(t, fake.calls[1].args)

	require.Len(t, res.Steps, 3)
	assert.Equal(t, StepCompile, res.Steps[0].Name)
	assert.Equal(t, StepRun, res.Steps[1].Name)
	assert.Equal(t, StepCleanup, res.Steps[2].Name)
	for _, s := range res.Steps {
		assert.True(t, s.OK(), "step %s: %+v", s.Name, s)
	}

	assert.NoFileExists(t, filepath.Join(dir, "test"))
}

func TestRun_ContinuesAfterCompileFailure(t *testing.T) {
	dir := t.TempDir()
	r := ForOS("linux", config.Default())
	r.Dir = dir

	fake := &fakeExecutor{
		codes: map[string]int{"g++": 1},
		errs:  map[string]error{"./test": errors.New("no such file or directory")},
	}

	res := Run(context.Background(), r, fake)

	assert.Len(t, fake.calls, 2, "run step must be attempted after a failed compile")

	compile, ok := res.Step(StepCompile)
	require.True(t, ok)
	assert.Equal(t, 1, compile.ExitCode)
	assert.False(t, compile.OK())

	run, ok := res.Step(StepRun)
	require.True(t, ok)
	assert.Equal(t, executor.NoExitCode, run.ExitCode)
	assert.Error(t, run.Err)

	cleanupStep, ok := res.Step(StepCleanup)
	require.True(t, ok)
	assert.True(t, cleanupStep.OK(), "cleanup of a missing binary is a no-op")
}

func TestRun_ContinuesAfterRunFailure(t *testing.T) {
	dir := t.TempDir()
	r := ForOS("linux", config.Default())
	r.Dir = dir
	require.NoError(t, os.WriteFile(r.BinaryPath(), []byte("bin"), 0o755))

	fake := &fakeExecutor{codes: map[string]int{"./test": 42}}

	res := Run(context.Background(), r, fake)

	run, _ := res.Step(StepRun)
	assert.Equal(t, 42, run.ExitCode)
	assert.NoFileExists(t, r.BinaryPath())
}

func TestRun_CleanupErrorIsRecorded(t *testing.T) {
	orig := removeFile
	defer func() { removeFile = orig }()
	removeFile = func(string) error { return os.ErrPermission }

	r := ForOS("linux", config.Default())
	r.Dir = t.TempDir()

	res := Run(context.Background(), r, &fakeExecutor{})

	cleanupStep, ok := res.Step(StepCleanup)
	require.True(t, ok)
	assert.ErrorIs(t, cleanupStep.Err, os.ErrPermission)
	assert.False(t, cleanupStep.OK())
}

func TestRun_WindowsBinaryPath(t *testing.T) {
	r := ForOS("windows", config.Default())
	r.Dir = t.TempDir()

	res := Run(context.Background(), r, &fakeExecutor{})

	assert.Equal(t, filepath.Join(r.Dir, "test.exe"), res.Binary)
}

func TestResult_StepMissing(t *testing.T) {
	_, ok := Result{}.Step(StepRun)

	assert.False(t, ok)
}
