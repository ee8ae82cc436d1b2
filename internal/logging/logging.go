// Package logging wraps go.uber.org/zap behind interfaces.Logger so
// components depend on the port, not the library. The host wires a
// concrete *ZapLogger at startup and threads it through every constructor;
// nothing in this module reaches for a package-level logger.
package logging

import (
	"go.uber.org/zap"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// ZapLogger adapts a *zap.SugaredLogger to interfaces.Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a production JSON logger at the given level name
// (debug|info|warn|error; unrecognized values fall back to info).
func New(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewDevelopment builds a human-readable console logger, used by the CLI
// bootstrap's --verbose flag and by component tests that want readable
// failure output instead of JSON.
func NewDevelopment() (*ZapLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewNop returns a logger that discards everything, for tests that need an
// interfaces.Logger value but don't care about its output.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *ZapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *ZapLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *ZapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *ZapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *ZapLogger) With(keysAndValues ...interface{}) interfaces.Logger {
	return &ZapLogger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes buffered log entries; the CLI bootstrap defers this at
// process exit.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

func parseLevel(level string) zap.AtomicLevel {
	lvl := zap.NewAtomicLevel()
	switch level {
	case "debug":
		lvl.SetLevel(zap.DebugLevel)
	case "warn":
		lvl.SetLevel(zap.WarnLevel)
	case "error":
		lvl.SetLevel(zap.ErrorLevel)
	default:
		lvl.SetLevel(zap.InfoLevel)
	}
	return lvl
}

var _ interfaces.Logger = (*ZapLogger)(nil)
