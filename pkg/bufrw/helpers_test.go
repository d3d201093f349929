//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package bufrw

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// memFile is a seekable in-memory resource that records every call reaching it.
type memFile struct {
	data   []byte
	pos    int64
	writes []int64 // offset of every Write
	reads  int
	seeks  int
	closed bool

	readErr  error
	writeErr error
	seekErr  error
	writeMax int // accept at most this many bytes per Write when set
}

func newMemFile(data []byte) *memFile {
	return &memFile{data: append([]byte(nil), data...)}
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	m.reads++
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	var err error
	if m.writeMax > 0 && len(p) > m.writeMax {
		p, err = p[:m.writeMax], io.ErrShortWrite
	}
	m.writes = append(m.writes, m.pos)
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), err
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	if m.seekErr != nil {
		return 0, m.seekErr
	}
	m.seeks++
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	}
	if abs < 0 {
		return 0, errors.New("memFile: negative position")
	}
	m.pos = abs
	return abs, nil
}

func (m *memFile) Close() error {
	m.closed = true
	return nil
}

// chunkStream is a sequential resource handing out one chunk per Read, the
// way data arrives on a socket.
type chunkStream struct {
	chunks   [][]byte
	out      bytes.Buffer
	writes   int
	writeErr error
}

func (s *chunkStream) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks[0] = s.chunks[0][n:]
	if len(s.chunks[0]) == 0 {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *chunkStream) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.writes++
	return s.out.Write(p)
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func readFull(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("read %d bytes: %v", n, err)
	}
	return buf
}

func write(t *testing.T, w io.Writer, p []byte) {
	t.Helper()
	n, err := w.Write(p)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != len(p) {
		t.Fatalf("expected Write to return: %d, got: %d", len(p), n)
	}
}
