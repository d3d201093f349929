//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

// Package bufrw lets a single io.ReadWriter be read from and written to in
// any order while both directions stay buffered.
//
// A bufio.Writer has to be flushed before the resource underneath it can be
// read, and a bufio.Reader holds read-ahead that is out of place once a write
// happens. The wrappers in this package hold exactly one of the two at a time
// and switch between them on demand:
//
//	Neither ──Read──▶ Reading ──Write──▶ Writing ──Read──▶ Reading ...
//
// Writing → Reading always flushes first. Reading → Writing depends on the
// resource: RandomAccess discards the read-ahead and seeks back to the logical
// position, Sequential keeps the read-ahead aside and returns it first once
// reading resumes.
//
// Wrappers are not safe for concurrent use.
package bufrw

import (
	"bufio"
	"errors"
	"io"

	"github.com/fredli74/bufrw/pkg/core"
)

const (
	// DefaultBufferSize matches the bufio default.
	DefaultBufferSize = 4096
	// MinBufferSize is the smallest buffer bufio.Reader accepts.
	MinBufferSize = 16
)

// ErrClosed is returned by operations on a wrapper after Close, Drop or IntoInner.
var ErrClosed = errors.New("bufrw: wrapper is closed")

// Mode is the buffering discipline currently active in a wrapper.
type Mode int

const (
	Neither Mode = iota
	Reading
	Writing
)

func (m Mode) String() string {
	switch m {
	case Neither:
		return "neither"
	case Reading:
		return "reading"
	case Writing:
		return "writing"
	}
	return "invalid"
}

// policy is the resource specific half of a mode transition.
type policy interface {
	// source is what the read buffer fills from.
	source() io.Reader
	// leaveReading takes care of the unread bytes in br before writing starts.
	// On error nothing has changed and the holder stays in Reading.
	leaveReading(br *bufio.Reader) error
	// retained counts unread bytes kept outside the read buffer.
	retained() int
}

type holder[T io.ReadWriter] struct {
	rw     T
	size   int
	mode   Mode
	br     *bufio.Reader
	bw     *writeBuffer
	policy policy
	closed bool
}

func bufferSize(size int) int {
	if size <= 0 {
		return DefaultBufferSize
	}
	if size < MinBufferSize {
		return MinBufferSize
	}
	return size
}

func (h *holder[T]) init(rw T, size int, p policy) {
	h.rw = rw
	h.size = bufferSize(size)
	h.policy = p
}

func (h *holder[T]) setMode(m Mode) {
	if core.LogEnabled(core.LogTrace) {
		core.Log(core.LogTrace, "bufrw: %s -> %s", h.mode, m)
	}
	h.mode = m
}

func (h *holder[T]) startReading() error {
	switch h.mode {
	case Reading:
		return nil
	case Writing:
		if err := h.bw.Flush(); err != nil {
			return err
		}
	}
	if h.br == nil {
		h.br = bufio.NewReaderSize(h.policy.source(), h.size)
	} else {
		h.br.Reset(h.policy.source())
	}
	h.setMode(Reading)
	return nil
}

func (h *holder[T]) startWriting() error {
	switch h.mode {
	case Writing:
		return nil
	case Reading:
		if err := h.policy.leaveReading(h.br); err != nil {
			return err
		}
		h.br.Reset(nil)
	}
	if h.bw == nil {
		h.bw = newWriteBuffer(h.rw, h.size)
	} else {
		h.bw.Reset(h.rw)
	}
	h.setMode(Writing)
	return nil
}

// Read reads into p, switching to Reading first if needed.
func (h *holder[T]) Read(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if err := h.startReading(); err != nil {
		return 0, err
	}
	return h.br.Read(p)
}

// ReadByte reads a single byte, switching to Reading first if needed.
func (h *holder[T]) ReadByte() (byte, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if err := h.startReading(); err != nil {
		return 0, err
	}
	return h.br.ReadByte()
}

// Write buffers p, switching to Writing first if needed.
func (h *holder[T]) Write(p []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if err := h.startWriting(); err != nil {
		return 0, err
	}
	return h.bw.Write(p)
}

// WriteString buffers s, switching to Writing first if needed.
func (h *holder[T]) WriteString(s string) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if err := h.startWriting(); err != nil {
		return 0, err
	}
	return h.bw.WriteString(s)
}

// WriteByte buffers c, switching to Writing first if needed.
func (h *holder[T]) WriteByte(c byte) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.startWriting(); err != nil {
		return err
	}
	return h.bw.WriteByte(c)
}

// Flush writes any buffered data to the resource. The wrapper stays in
// Writing. Outside of Writing it does nothing. A failed flush keeps whatever
// the resource did not accept, and a later Flush tries again.
func (h *holder[T]) Flush() error {
	if h.closed {
		return ErrClosed
	}
	if h.mode != Writing {
		return nil
	}
	return h.bw.Flush()
}

// Mode returns the active buffering mode.
func (h *holder[T]) Mode() Mode {
	return h.mode
}

// Buffered returns the number of live bytes held by the wrapper: unread bytes
// while Reading, unflushed bytes while Writing.
func (h *holder[T]) Buffered() int {
	switch h.mode {
	case Reading:
		return h.br.Buffered() + h.policy.retained()
	case Writing:
		return h.bw.Buffered()
	}
	return 0
}

// BufferSize returns the capacity used for both directions.
func (h *holder[T]) BufferSize() int {
	return h.size
}

// Inner returns the wrapped resource. Moving its cursor or doing I/O on it
// directly desynchronizes the wrapper.
func (h *holder[T]) Inner() T {
	return h.rw
}

// Close flushes pending writes and closes the resource if it is an
// io.Closer. The resource is closed even if the flush fails; the flush error
// is returned in that case.
func (h *holder[T]) Close() error {
	if h.closed {
		return ErrClosed
	}
	err := h.Flush()
	h.release()
	if c, ok := any(h.rw).(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Drop is Close for deferred teardown where nobody is left to handle the
// error. Any failure is logged and otherwise ignored, so data still sitting in
// the write buffer can be lost without notice. Use Close when that matters.
func (h *holder[T]) Drop() {
	if h.closed {
		return
	}
	if err := h.Close(); err != nil {
		core.Log(core.LogWarning, "bufrw: error ignored on drop: %v", err)
	}
}

func (h *holder[T]) release() {
	h.closed = true
	h.mode = Neither
	h.br = nil
	h.bw = nil
}
