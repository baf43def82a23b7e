// Package log wraps a zap logger with the small surface buildrun needs.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hpkotak/buildrun/internal/platform"
)

const (
	// MaxLogFileSize is the maximum size of the log file in megabytes.
	MaxLogFileSize = 10
	// MaxNumberOfBackups is the maximum number of rotated log files kept.
	MaxNumberOfBackups = 3
)

// Logger is the log entry.
type Logger struct {
	entry         *zap.Logger
	atomicLevel   zap.AtomicLevel
	currentOutput io.Writer
}

// New creates a new Logger that writes to dest. A nil dest discards output.
func New(dest io.Writer, opts ...Option) *Logger {
	if dest == nil {
		dest = io.Discard
	}

	o := options{goos: platform.OS()}
	for _, option := range opts {
		option(&o)
	}

	atom := zap.NewAtomicLevel()

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "now"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.MessageKey = "message"

	var encoder zapcore.Encoder
	if o.console {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	l := zap.New(
		zapcore.NewCore(encoder, zapcore.AddSync(dest), atom),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	l = l.With(zap.String("os", o.goos))

	logger := &Logger{
		entry:         l,
		atomicLevel:   atom,
		currentOutput: dest,
	}
	logger.SetVerbose(o.verbose)

	return logger
}

// SetVerbose sets log level to debug if enabled.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.atomicLevel.SetLevel(zap.DebugLevel)
	} else {
		l.atomicLevel.SetLevel(zap.InfoLevel)
	}
}

// Flush flushes the log output and closes it if it is a file other than
// stdout or stderr.
func (l *Logger) Flush() {
	_ = l.entry.Sync()

	if l.currentOutput == os.Stdout || l.currentOutput == os.Stderr {
		return
	}
	if closer, ok := l.currentOutput.(io.Closer); ok {
		_ = closer.Close()
	}
}

// With returns a child logger carrying the given field.
func (l *Logger) With(key string, value any) *Logger {
	child := *l
	child.entry = l.entry.With(zap.Any(key, value))
	return &child
}

// Debugf logs a message at level Debug.
func (l *Logger) Debugf(format string, args ...any) {
	l.entry.Log(zapcore.DebugLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a message at level Warn.
func (l *Logger) Warnf(format string, args ...any) {
	l.entry.Log(zapcore.WarnLevel, fmt.Sprintf(format, args...))
}
