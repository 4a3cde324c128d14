package tui

import (
	"io"
	"log/slog"
	"os"
)

// debugLog is a no-op unless CRAVEBOARD_TUI_DEBUG_LOG names a file. The
// terminal is owned by bubbletea while the dashboard runs, so diagnostics
// have to go somewhere else.
var debugLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func initDebugLog() func() {
	path := os.Getenv("CRAVEBOARD_TUI_DEBUG_LOG")
	if path == "" {
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() {}
	}
	debugLog = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return func() { _ = f.Close() }
}
