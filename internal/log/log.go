package log

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var initOnce sync.Once

// Setup routes slog output to a rotating JSON log file. The hook owns
// stdout (advisories only), so diagnostics must never go there.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    1, // MB; the hook logs a handful of lines per tool call
			MaxBackups: 1,
			MaxAge:     30, // days
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level: level,
		})

		slog.SetDefault(slog.New(logger))
	})
}

// RecoverPanic absorbs a panic and logs it with a stack trace. The hook
// contract is an unconditional success exit, so a panic must not surface
// to the host as a failure.
func RecoverPanic(name string) {
	if r := recover(); r != nil {
		slog.Error("panic recovered",
			"name", name,
			"panic", r,
			"stack", string(debug.Stack()),
		)
	}
}
