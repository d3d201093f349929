//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

package bufrw

import (
	"os"

	"github.com/fredli74/bufrw/pkg/lockablefile"
)

//********************************************************************************//
//                                      File                                      //
//********************************************************************************//

// File is a file on disk, exclusively locked for as long as it is open, with
// buffered reads and writes in any order.
type File struct {
	Path string
	*RandomAccess[*lockablefile.LockableFile]
}

// OpenFile opens path for reading and writing, whatever access mode flag
// asks for, and blocks until it holds an exclusive lock on it. O_APPEND is
// dropped, writes always land at the current position. Seek to io.SeekEnd to
// append.
func OpenFile(path string, buffersize int, flag int, perm os.FileMode) (*File, error) {
	flag = flag&^(os.O_RDONLY|os.O_WRONLY|os.O_RDWR|os.O_APPEND) | os.O_RDWR
	lf, err := lockablefile.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	if err := lf.Lock(); err != nil {
		lf.Close()
		return nil, err
	}
	return &File{Path: path, RandomAccess: NewRandomAccessSize(lf, buffersize)}, nil
}

// Size flushes pending writes and returns the file length.
func (f *File) Size() (int64, error) {
	if err := f.Flush(); err != nil {
		return 0, err
	}
	info, err := f.Inner().Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Sync flushes pending writes and commits the file to stable storage.
func (f *File) Sync() error {
	if err := f.Flush(); err != nil {
		return err
	}
	return f.Inner().Sync()
}

// Truncate changes the file length. The logical position is kept, reading
// past the new end returns io.EOF.
func (f *File) Truncate(size int64) error {
	if f.closed {
		return ErrClosed
	}
	if err := f.settle(); err != nil {
		return err
	}
	return f.Inner().Truncate(size)
}
