// Package ux provides user-facing notification plumbing for the ECHO AI
// client. Notifications are the terminal equivalent of the web app's toast
// popups: short, non-blocking, and never required for correctness.
package ux

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// String returns the display name for a level.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a single user-visible notification.
type Notice struct {
	Level   Level
	Message string
	Time    time.Time
}

// Notifier receives user-visible notifications. Implementations must be
// non-blocking; a notification is advisory and never carries control flow.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Feed is a bounded, most-recent-first notice buffer consumed by the TUI
// status line. It implements Notifier.
type Feed struct {
	mu      sync.Mutex
	notices []Notice
	limit   int
}

// NewFeed creates a feed retaining at most limit notices.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 32
	}
	return &Feed{limit: limit}
}

func (f *Feed) push(level Level, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notices = append(f.notices, Notice{Level: level, Message: msg, Time: time.Now()})
	if len(f.notices) > f.limit {
		f.notices = f.notices[len(f.notices)-f.limit:]
	}
}

// Success records a success notice.
func (f *Feed) Success(msg string) { f.push(LevelSuccess, msg) }

// Error records an error notice.
func (f *Feed) Error(msg string) { f.push(LevelError, msg) }

// Info records an informational notice.
func (f *Feed) Info(msg string) { f.push(LevelInfo, msg) }

// Latest returns the most recent notice, if any.
func (f *Feed) Latest() (Notice, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.notices) == 0 {
		return Notice{}, false
	}
	return f.notices[len(f.notices)-1], true
}

// All returns a copy of the buffered notices, oldest first.
func (f *Feed) All() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notice, len(f.notices))
	copy(out, f.notices)
	return out
}

// LogNotifier routes notices to a zap logger. Used by one-shot CLI commands
// where there is no status line to render into.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Success logs at info level.
func (n *LogNotifier) Success(msg string) { n.logger.Info(msg) }

// Error logs at warn level; a notice is user-facing, not a process failure.
func (n *LogNotifier) Error(msg string) { n.logger.Warn(msg) }

// Info logs at info level.
func (n *LogNotifier) Info(msg string) { n.logger.Info(msg) }

// Nop is a Notifier that discards everything.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
func (Nop) Info(string)    {}
