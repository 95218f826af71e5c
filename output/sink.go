// Package output holds the instruction streams a compiled program is
// written to.
package output

import (
	"errors"
	"strings"
)

var (
	ErrNotOpen     = errors.New("output stream is not open")
	ErrAlreadyOpen = errors.New("output stream is already open")
)

// Sink receives the instruction text of one program, one line at a time.
type Sink interface {
	Open(name string) error
	WriteLine(line string) error
	Close() error
}

// Buffer keeps the emitted program in memory.
type Buffer struct {
	name   string
	lines  []string
	open   bool
	closed bool
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Open(name string) error {
	if b.open {
		return ErrAlreadyOpen
	}
	b.name = name
	b.open = true
	b.closed = false
	return nil
}

func (b *Buffer) WriteLine(line string) error {
	if !b.open {
		return ErrNotOpen
	}
	b.lines = append(b.lines, line)
	return nil
}

func (b *Buffer) Close() error {
	if !b.open {
		return nil
	}
	b.open = false
	b.closed = true
	return nil
}

// Name is the program name the buffer was opened with.
func (b *Buffer) Name() string { return b.name }

// Lines returns a copy of the emitted lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Closed reports whether the stream was opened and then closed.
func (b *Buffer) Closed() bool { return b.closed }

func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}
