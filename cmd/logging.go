package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpkotak/buildrun/internal/config"
	"github.com/hpkotak/buildrun/internal/log"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging logs to a rotating file when log_file is set, otherwise to stderr.
func setupLogging(cfg *config.Config) (*log.Logger, error) {
	if cfg.LogFile == "" {
		return log.New(logOut, log.WithVerbose(cfg.Verbose), log.WithOS(hostOS()), log.WithConsole()), nil
	}

	path, err := homedir.Expand(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("expanding log file path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating log file directory %q: %w", dir, err)
	}

	dest := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    log.MaxLogFileSize,
		MaxBackups: log.MaxNumberOfBackups,
	}
	return log.New(dest, log.WithVerbose(cfg.Verbose), log.WithOS(hostOS())), nil
}
