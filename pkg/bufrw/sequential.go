//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package bufrw

import (
	"bufio"
	"io"
	"net"
)

// Sequential buffers reads and writes on a resource that cannot seek, such as
// a network connection. Read-ahead that is still unread when writing starts
// cannot be fetched again, so it is kept and handed out before anything new
// once reading resumes.
type Sequential[T io.ReadWriter] struct {
	holder[T]
	retain *retainPolicy
}

var _ io.ReadWriteCloser = (*Sequential[net.Conn])(nil)

// prefixReader serves prefix before reading from r.
type prefixReader struct {
	prefix []byte
	r      io.Reader
}

func (p *prefixReader) Read(b []byte) (int, error) {
	if len(p.prefix) > 0 {
		n := copy(b, p.prefix)
		p.prefix = p.prefix[n:]
		return n, nil
	}
	return p.r.Read(b)
}

type retainPolicy struct {
	src prefixReader
}

func (p *retainPolicy) source() io.Reader {
	return &p.src
}

// leaveReading moves the read buffer contents in front of whatever was
// retained earlier and not yet pulled back into the buffer.
func (p *retainPolicy) leaveReading(br *bufio.Reader) error {
	n := br.Buffered()
	if n == 0 {
		return nil
	}
	unread, err := br.Peek(n)
	if err != nil {
		return err
	}
	kept := make([]byte, 0, n+len(p.src.prefix))
	kept = append(kept, unread...)
	kept = append(kept, p.src.prefix...)
	p.src.prefix = kept
	return nil
}

func (p *retainPolicy) retained() int {
	return len(p.src.prefix)
}

// NewSequential wraps rw with buffers of DefaultBufferSize.
func NewSequential[T io.ReadWriter](rw T) *Sequential[T] {
	return NewSequentialSize(rw, DefaultBufferSize)
}

// NewSequentialSize wraps rw with buffers of the given size.
func NewSequentialSize[T io.ReadWriter](rw T, size int) *Sequential[T] {
	w := &Sequential[T]{retain: &retainPolicy{src: prefixReader{r: rw}}}
	w.init(rw, size, w.retain)
	return w
}

// Retained returns how many bytes were read from the resource, are not yet
// delivered, and sit outside the active read buffer.
func (w *Sequential[T]) Retained() int {
	return w.retain.retained()
}

// IntoInner flushes pending writes and hands the resource back together with
// the bytes already read from it but not yet delivered to the caller. On
// error the wrapper stays open with the unwritten bytes still buffered, so
// the call can be retried.
func (w *Sequential[T]) IntoInner() (T, []byte, error) {
	var zero T
	if w.closed {
		return zero, nil, ErrClosed
	}
	if err := w.Flush(); err != nil {
		return zero, nil, err
	}
	if w.mode == Reading {
		if err := w.retain.leaveReading(w.br); err != nil {
			return zero, nil, err
		}
	}
	unread := w.retain.src.prefix
	w.retain.src.prefix = nil
	w.release()
	return w.rw, unread, nil
}
