// Package notify shows one transient status message at a time.
package notify

import (
	"sync"
	"time"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

const DefaultDuration = 3500 * time.Millisecond

type Notification struct {
	Message  string
	Severity Severity
}

// Display renders the current notification. Hide is called when it expires.
type Display interface {
	Show(n Notification)
	Hide()
}

// Sink keeps a single visible notification. A new one replaces the current
// one at once and restarts the hide timer; a timer armed for an older
// notification never hides a newer one.
type Sink struct {
	display  Display
	duration time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	current *Notification
}

// NewSink returns a sink that hides notifications after d (DefaultDuration
// when d <= 0).
func NewSink(display Display, d time.Duration) *Sink {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Sink{display: display, duration: d}
}

func (s *Sink) Notify(message string, severity Severity) {
	s.NotifyFor(message, severity, s.duration)
}

func (s *Sink) NotifyFor(message string, severity Severity, d time.Duration) {
	n := Notification{Message: message, Severity: severity}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = &n
	s.display.Show(n)
	s.timer = time.AfterFunc(d, func() { s.expire(gen) })
	s.mu.Unlock()
}

func (s *Sink) Info(message string)    { s.Notify(message, Info) }
func (s *Sink) Success(message string) { s.Notify(message, Success) }
func (s *Sink) Error(message string)   { s.Notify(message, Error) }

// Current returns the visible notification, if any.
func (s *Sink) Current() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}

func (s *Sink) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.current = nil
	s.timer = nil
	s.display.Hide()
}
