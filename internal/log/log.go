package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Prefix is prepended to every line written by the plain handler.
const Prefix = "kk"

var (
	logger    atomic.Pointer[slog.Logger]
	level     = new(slog.LevelVar)
	verbosity atomic.Int32
)

func init() {
	// Warnings to stderr until the CLI applies -v and --log-format
	InitWithOutput(VerbosityWarn, FormatPlain, os.Stderr)
}

// InitWithOutput points the global logger at w with the given verbosity and format.
func InitWithOutput(v int, format string, w io.Writer) {
	verbosity.Store(int32(v))
	level.Set(VerbosityToLevel(v))

	l := slog.New(NewHandler(HandlerOptions{
		Level:  level,
		Format: format,
		Output: w,
		Prefix: Prefix,
	}))
	logger.Store(l)
	slog.SetDefault(l)
}

// Warn logs at warn level (v=1).
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Info logs at info level (v=2).
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Debug logs at debug level (v=3).
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Trace logs at trace level (v=4).
func Trace(msg string, args ...any) {
	logger.Load().Log(context.Background(), LevelTrace, msg, args...)
}

// V returns the logger when -v is at least v, and a discarding logger otherwise.
func V(v int) *slog.Logger {
	if int(verbosity.Load()) >= v {
		return logger.Load()
	}
	return slog.New(discardHandler{})
}

// Component returns a logger tagged with a component name.
func Component(name string) *slog.Logger {
	return logger.Load().With("component", name)
}
