package dockgui

import (
	"fmt"
	"log/slog"
	"os"
)

// logLevel controls the log level for docking debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// verbose returns true if debug logging is enabled.
func verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// defaultLogger is used when no logger is supplied with WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// assert reports a violated structural invariant. With DebugAsserts it panics,
// otherwise it logs and lets the caller continue with a best-effort fallback.
func (ctx *Context) assert(cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	if ctx.Config.DebugAsserts {
		panic(fmt.Sprintf("dockgui: invariant violated: %s %v", msg, args))
	}
	ctx.logger.Error("invariant violated: "+msg, args...)
	return false
}
