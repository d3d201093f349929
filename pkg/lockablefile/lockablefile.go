//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

// Package lockablefile wraps an *os.File with advisory whole-file locking.
package lockablefile

import (
	"os"

	"github.com/fredli74/bufrw/pkg/core"
)

// LockableFile is an *os.File with lock helpers. The file embeds *os.File so
// it can be handed to anything expecting an io.ReadWriteSeeker.
type LockableFile struct {
	*os.File
	locked bool
}

// OpenFile wraps os.OpenFile with the provided flags/perm and returns a LockableFile without taking the lock.
func OpenFile(path string, flag int, perm os.FileMode) (*LockableFile, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return &LockableFile{File: f}, nil
}

// Locked reports whether this handle currently holds a lock.
func (l *LockableFile) Locked() bool {
	return l.locked
}

// Close releases any lock (via close) and closes the file.
func (l *LockableFile) Close() error {
	core.ASSERT(l != nil && l.File != nil, "Close called on nil file")
	l.locked = false
	return l.File.Close()
}
