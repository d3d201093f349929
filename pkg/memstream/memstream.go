//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

// Package memstream provides in-memory sequential streams.
package memstream

import (
	"io"

	"github.com/fredli74/bytearray"
)

// Loopback is a first-in first-out byte stream: everything written can be
// read back once, in order. It cannot seek. The zero value is an empty stream
// ready to use. A Loopback is not safe for concurrent use.
type Loopback struct {
	data   bytearray.ByteArray
	unread int
}

// Write appends p to the stream.
func (l *Loopback) Write(p []byte) (n int, err error) {
	n, err = l.data.Write(p)
	l.unread += n
	return n, err
}

// Read consumes up to len(p) bytes. It returns io.EOF once every written byte
// has been read.
func (l *Loopback) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.unread == 0 {
		return 0, io.EOF
	}
	if len(p) > l.unread {
		p = p[:l.unread]
	}
	// ByteArray reports io.EOF on short reads, the unread count is what matters here.
	n, _ = l.data.Read(p)
	l.unread -= n
	if l.unread == 0 {
		l.data.Truncate(0)
	}
	return n, nil
}

// Len returns the number of unread bytes.
func (l *Loopback) Len() int {
	return l.unread
}

// Release returns the memory held by the stream to the bytearray slabs.
func (l *Loopback) Release() {
	l.data.Release()
	l.unread = 0
}

// Close releases the stream; it is here so a Loopback can stand in for a connection.
func (l *Loopback) Close() error {
	l.Release()
	return nil
}
