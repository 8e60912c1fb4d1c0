// Package logging collects log output into a bounded buffer shown in the
// console pane.
package logging

import (
	"bytes"
	"strings"
	"sync"
)

// DefaultCapacity is the number of lines kept by NewConsole(0)
const DefaultCapacity = 500

// Console is an append-only log buffer that keeps the most recent lines.
// It is an io.Writer and safe for concurrent use.
type Console struct {
	mu       sync.Mutex
	lines    []string
	partial  []byte
	capacity int
	version  uint64
}

// NewConsole returns a console holding at most capacity lines
func NewConsole(capacity int) *Console {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Console{capacity: capacity}
}

// Write appends p, splitting it into lines. A trailing fragment without a
// newline is held until the rest of the line arrives.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := append(c.partial, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		c.push(string(data[:i]))
		data = data[i+1:]
	}
	c.partial = append([]byte(nil), data...)
	return len(p), nil
}

// Append adds a single line
func (c *Console) Append(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range strings.Split(strings.TrimSuffix(line, "\n"), "\n") {
		c.push(l)
	}
}

func (c *Console) push(line string) {
	c.lines = append(c.lines, strings.TrimSuffix(line, "\r"))
	if over := len(c.lines) - c.capacity; over > 0 {
		c.lines = append(c.lines[:0:0], c.lines[over:]...)
	}
	c.version++
}

// Lines returns a copy of the buffered lines, oldest first
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Version changes every time a line is added
func (c *Console) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Len returns the number of buffered lines
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
