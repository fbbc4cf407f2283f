package engine

import (
	"log"
	"os"

	"github.com/dustin/go-humanize"
)

// Logger receives operational diagnostics. Context.GC logs one line per
// explicit collection; heap-limit crossings and hashmap rebuilds are not
// logged.
type Logger interface {
	Printf(format string, args ...any)
}

// stderrLogger is the default Logger, writing to stderr via the stdlib
// log package.
type stderrLogger struct {
	l *log.Logger
}

// NewStderrLogger returns the default diagnostics logger.
func NewStderrLogger() Logger {
	return &stderrLogger{l: log.New(os.Stderr, "jerryscript-sub010: ", log.LstdFlags)}
}

func (s *stderrLogger) Printf(format string, args ...any) {
	s.l.Printf(format, args...)
}

// NopLogger discards every message, useful for embeddings that don't want
// core diagnostics on stderr.
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}

// FormatBytes renders a byte count the way the engine's diagnostics do
// (humanize.Bytes), used by callers logging arena/heap pressure.
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}
