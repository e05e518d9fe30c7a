// Package logging hands out tagged subsystem loggers that share one backend.
package logging

import (
	"io"
	"sync"

	"github.com/decred/slog"
)

// Subsystem tags.
const (
	Party  = "PRTY"
	Sync   = "SYNC"
	Net    = "NETW"
	Server = "SRVR"
	Game   = "GAME"
	Audio  = "AUDO"
)

// Loggers is the logging root of a process.
type Loggers struct {
	mu      sync.Mutex
	backend *slog.Backend
	level   slog.Level
	loggers map[string]slog.Logger
}

// New writes to w at the named level ("debug", "info", ...); unknown names
// fall back to info.
func New(w io.Writer, level string) *Loggers {
	return &Loggers{
		backend: slog.NewBackend(w),
		level:   ParseLevel(level),
		loggers: map[string]slog.Logger{},
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	l, _ := slog.LevelFromString(s)
	return l
}

// Logger returns the logger for a subsystem tag, creating it on first use.
func (l *Loggers) Logger(tag string) slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lg, ok := l.loggers[tag]; ok {
		return lg
	}
	lg := l.backend.Logger(tag)
	lg.SetLevel(l.level)
	l.loggers[tag] = lg
	return lg
}

// SetLevel changes the level of every subsystem.
func (l *Loggers) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLevel(level)
	for _, lg := range l.loggers {
		lg.SetLevel(l.level)
	}
}

// OrDisabled returns lg, or slog.Disabled when lg is nil.
func OrDisabled(lg slog.Logger) slog.Logger {
	if lg == nil {
		return slog.Disabled
	}
	return lg
}
