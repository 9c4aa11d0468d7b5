package lib

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv turns on per-token debug logging for tokenizers built without an
// explicit logger.
const DebugEnv = "SMASM_DEBUG_LEXER"

// NewLogger returns a text logger without timestamps or levels, which keeps
// token traces readable.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func defaultLogger() *slog.Logger {
	return NewLogger(os.Stderr, os.Getenv(DebugEnv) != "")
}
