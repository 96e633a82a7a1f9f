// Package tags keeps the tags attached to the next upload.
package tags

import (
	"encoding/json"
	"strings"
	"sync"
)

// Set is an insertion-ordered set of tags. It is safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	order []string
}

func NewSet(initial ...string) *Set {
	s := &Set{}
	for _, t := range initial {
		s.Add(t)
	}
	return s
}

// Add appends tag unless it is empty or already present. It reports whether
// the set changed.
func (s *Set) Add(tag string) bool {
	if tag == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(tag) >= 0 {
		return false
	}
	s.order = append(s.order, tag)
	return true
}

// Remove deletes tag if present.
func (s *Set) Remove(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(tag)
	if i < 0 {
		return false
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	return true
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns the tags in insertion order. The slice is a copy.
func (s *Set) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set) Clear() {
	s.mu.Lock()
	s.order = nil
	s.mu.Unlock()
}

// JSON is the snapshot as a JSON array string, the form the upload
// endpoint expects.
func (s *Set) JSON() string {
	b, _ := json.Marshal(s.Snapshot())
	return string(b)
}

func (s *Set) indexOf(tag string) int {
	for i, t := range s.order {
		if t == tag {
			return i
		}
	}
	return -1
}

// Editor turns keystrokes into tags. Characters accumulate in a buffer;
// Enter or comma commits the trimmed buffer to the set.
type Editor struct {
	set *Set
	buf strings.Builder
}

func NewEditor(set *Set) *Editor {
	return &Editor{set: set}
}

func isCommit(r rune) bool {
	return r == '\n' || r == '\r' || r == ','
}

// Key feeds one keystroke.
func (e *Editor) Key(r rune) {
	if !isCommit(r) {
		e.buf.WriteRune(r)
		return
	}
	tag := strings.TrimSpace(e.buf.String())
	e.buf.Reset()
	e.set.Add(tag)
}

// Type feeds every rune of text in order.
func (e *Editor) Type(text string) {
	for _, r := range text {
		e.Key(r)
	}
}
