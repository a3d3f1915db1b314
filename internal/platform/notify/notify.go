// Package notify delivers transient user-facing notices (toasts). Delivery is
// fire-and-forget: nothing in the core waits on or inspects the result.
package notify

import (
	"sync"

	"studyquest/internal/platform/logger"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(Notice) {}

// LogNotifier records notices in the structured log.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) LogNotifier {
	return LogNotifier{log: log}
}

func (n LogNotifier) Notify(notice Notice) {
	if notice.Level == LevelError {
		n.log.Warn("notice", "title", notice.Title, "message", notice.Message)
		return
	}
	n.log.Info("notice", "level", string(notice.Level), "title", notice.Title, "message", notice.Message)
}

// Channel buffers notices for a consumer such as the TUI. Notices arriving
// while the buffer is full are dropped.
type Channel struct {
	ch chan Notice
}

func NewChannel(size int) *Channel {
	if size < 1 {
		size = 1
	}
	return &Channel{ch: make(chan Notice, size)}
}

func (c *Channel) Notify(n Notice) {
	select {
	case c.ch <- n:
	default:
	}
}

// C exposes the receive side.
func (c *Channel) C() <-chan Notice {
	return c.ch
}

// Fanout forwards to every notifier in order.
type Fanout struct {
	mu      sync.RWMutex
	targets []Notifier
}

func NewFanout(targets ...Notifier) *Fanout {
	return &Fanout{targets: targets}
}

func (f *Fanout) Add(n Notifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, n)
}

func (f *Fanout) Notify(n Notice) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.targets {
		t.Notify(n)
	}
}
