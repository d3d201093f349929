//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package bufrw

import (
	"bufio"
	"io"
	"os"
)

// RandomAccess buffers reads and writes on a seekable resource, typically an
// *os.File. Switching from reading to writing drops the unread read-ahead and
// seeks the resource back to where the caller stopped reading.
type RandomAccess[T io.ReadWriteSeeker] struct {
	holder[T]
}

var _ io.ReadWriteSeeker = (*RandomAccess[*os.File])(nil)
var _ io.Closer = (*RandomAccess[*os.File])(nil)

type seekPolicy struct {
	s io.ReadSeeker
}

func (p seekPolicy) source() io.Reader {
	return p.s
}

func (p seekPolicy) leaveReading(br *bufio.Reader) error {
	if unread := br.Buffered(); unread > 0 {
		if _, err := p.s.Seek(-int64(unread), io.SeekCurrent); err != nil {
			return err
		}
	}
	return nil
}

func (seekPolicy) retained() int {
	return 0
}

// NewRandomAccess wraps rw with buffers of DefaultBufferSize.
func NewRandomAccess[T io.ReadWriteSeeker](rw T) *RandomAccess[T] {
	return NewRandomAccessSize(rw, DefaultBufferSize)
}

// NewRandomAccessSize wraps rw with buffers of the given size.
func NewRandomAccessSize[T io.ReadWriteSeeker](rw T, size int) *RandomAccess[T] {
	w := &RandomAccess[T]{}
	w.init(rw, size, seekPolicy{rw})
	return w
}

// Seek sets the logical position for the next Read or Write. Pending writes
// are flushed first; read-ahead is discarded, except for Seek(0,
// io.SeekCurrent) which only reports the position.
func (w *RandomAccess[T]) Seek(offset int64, whence int) (int64, error) {
	if w.closed {
		return 0, ErrClosed
	}
	switch w.mode {
	case Writing:
		if err := w.bw.Flush(); err != nil {
			return 0, err
		}
	case Reading:
		unread := int64(w.br.Buffered())
		if whence == io.SeekCurrent {
			if offset == 0 {
				pos, err := w.rw.Seek(0, io.SeekCurrent)
				if err != nil {
					return 0, err
				}
				return pos - unread, nil
			}
			offset -= unread
		}
		pos, err := w.rw.Seek(offset, whence)
		if err != nil {
			return 0, err
		}
		w.br.Reset(w.rw)
		return pos, nil
	}
	return w.rw.Seek(offset, whence)
}

// settle empties the active buffer and leaves the resource cursor on the
// logical position.
func (w *RandomAccess[T]) settle() error {
	switch w.mode {
	case Writing:
		if err := w.bw.Flush(); err != nil {
			return err
		}
	case Reading:
		if err := w.policy.leaveReading(w.br); err != nil {
			return err
		}
		w.br.Reset(nil)
	}
	w.setMode(Neither)
	return nil
}

// IntoInner flushes pending writes, moves the resource cursor to the logical
// position and hands the resource back. On error the wrapper stays open with
// the unwritten bytes still buffered, so the call can be retried.
func (w *RandomAccess[T]) IntoInner() (T, error) {
	if w.closed {
		var zero T
		return zero, ErrClosed
	}
	if err := w.settle(); err != nil {
		var zero T
		return zero, err
	}
	w.release()
	return w.rw, nil
}
