//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package bufrw

import "io"

// writeBuffer is a fixed capacity write-behind buffer with the flush rules of
// bufio.Writer, except that errors do not stick. A failed or short flush keeps
// the bytes the resource did not take at the front of the buffer, and the
// next Flush offers them again.
type writeBuffer struct {
	buf []byte // pending bytes, cap(buf) is the capacity
	w   io.Writer
}

func newWriteBuffer(w io.Writer, size int) *writeBuffer {
	return &writeBuffer{buf: make([]byte, 0, size), w: w}
}

// Reset discards pending bytes and switches to w.
func (b *writeBuffer) Reset(w io.Writer) {
	b.buf = b.buf[:0]
	b.w = w
}

func (b *writeBuffer) Buffered() int {
	return len(b.buf)
}

func (b *writeBuffer) Available() int {
	return cap(b.buf) - len(b.buf)
}

// fill copies as much of s as fits and returns the count.
func (b *writeBuffer) fill(s string) int {
	n := copy(b.buf[len(b.buf):cap(b.buf)], s)
	b.buf = b.buf[:len(b.buf)+n]
	return n
}

func (b *writeBuffer) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	n, err := b.w.Write(b.buf)
	if n < 0 || n > len(b.buf) {
		n = 0
	}
	if n < len(b.buf) && err == nil {
		err = io.ErrShortWrite
	}
	if n > 0 {
		b.buf = b.buf[:copy(b.buf, b.buf[n:])]
	}
	return err
}

// Write accepts p, flushing whenever the buffer fills up. Writes larger than
// the buffer go straight to the resource when nothing is pending. The count
// returned is what was either buffered or written.
func (b *writeBuffer) Write(p []byte) (nn int, err error) {
	for len(p) > b.Available() {
		var n int
		if len(b.buf) == 0 {
			n, err = b.w.Write(p)
			if n < 0 || n > len(p) {
				n = 0
			}
			if n < len(p) && err == nil {
				err = io.ErrShortWrite
			}
		} else {
			n = copy(b.buf[len(b.buf):cap(b.buf)], p)
			b.buf = b.buf[:len(b.buf)+n]
			err = b.Flush()
		}
		nn += n
		p = p[n:]
		if err != nil {
			return nn, err
		}
	}
	n := copy(b.buf[len(b.buf):cap(b.buf)], p)
	b.buf = b.buf[:len(b.buf)+n]
	return nn + n, nil
}

func (b *writeBuffer) WriteString(s string) (nn int, err error) {
	for len(s) > b.Available() {
		n := b.fill(s)
		nn += n
		s = s[n:]
		if err = b.Flush(); err != nil {
			return nn, err
		}
	}
	return nn + b.fill(s), nil
}

func (b *writeBuffer) WriteByte(c byte) error {
	if b.Available() == 0 {
		if err := b.Flush(); err != nil {
			return err
		}
	}
	b.buf = append(b.buf, c)
	return nil
}
