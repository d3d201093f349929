//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

//go:build unix

package lockablefile

import (
	"errors"
	"io"

	"github.com/fredli74/bufrw/pkg/core"
	"golang.org/x/sys/unix"
)

func (l *LockableFile) fcntl(cmd int, typ int16) error {
	flock := unix.Flock_t{
		Type:   typ,
		Whence: int16(io.SeekStart),
		Start:  0,
		Len:    0, // whole file
	}
	return unix.FcntlFlock(l.Fd(), cmd, &flock)
}

// Lock acquires an exclusive advisory lock, blocking until it is available.
func (l *LockableFile) Lock() error {
	core.ASSERT(l != nil && l.File != nil, "Lock called on nil file")
	core.ASSERT(!l.locked, "Lock called on already locked file")
	if err := l.fcntl(unix.F_SETLKW, unix.F_WRLCK); err != nil {
		return err
	}
	l.locked = true
	return nil
}

// TryLock attempts an exclusive lock without blocking. It returns false if
// another process holds a conflicting lock.
func (l *LockableFile) TryLock() (bool, error) {
	core.ASSERT(l != nil && l.File != nil, "TryLock called on nil file")
	core.ASSERT(!l.locked, "TryLock called on already locked file")
	err := l.fcntl(unix.F_SETLK, unix.F_WRLCK)
	if err == nil {
		l.locked = true
		return true, nil
	}
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EACCES) {
		return false, nil
	}
	return false, err
}

// Unlock releases the advisory lock.
func (l *LockableFile) Unlock() error {
	core.ASSERT(l != nil && l.File != nil, "Unlock called on nil file")
	core.ASSERT(l.locked, "Unlock called on unlocked file")
	if err := l.fcntl(unix.F_SETLK, unix.F_UNLCK); err != nil {
		return err
	}
	l.locked = false
	return nil
}
