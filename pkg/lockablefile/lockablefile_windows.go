//	 ,+---+
//	+---+´|    HASHBOX SOURCE
//	| # | |    Copyright 2015-2026
//	+---+´

//go:build windows

package lockablefile

import (
	"errors"

	"github.com/fredli74/bufrw/pkg/core"
	"golang.org/x/sys/windows"
)

// Lock acquires an exclusive lock on the file using LockFileEx.
func (l *LockableFile) Lock() error {
	return l.lock(windows.LOCKFILE_EXCLUSIVE_LOCK)
}

// TryLock attempts an exclusive lock without blocking.
func (l *LockableFile) TryLock() (bool, error) {
	core.ASSERT(l != nil && l.File != nil, "TryLock called on nil file")
	core.ASSERT(!l.locked, "TryLock called on already locked file")
	err := lockFileEx(l.Fd(), windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY)
	if err == nil {
		l.locked = true
		return true, nil
	}
	if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
		return false, nil
	}
	return false, err
}

// Unlock releases the lock using UnlockFileEx.
func (l *LockableFile) Unlock() error {
	core.ASSERT(l != nil && l.File != nil, "Unlock called on nil file")
	core.ASSERT(l.locked, "Unlock called on unlocked file")
	var ol windows.Overlapped
	if err := windows.UnlockFileEx(windows.Handle(l.Fd()), 0, 1, 0, &ol); err != nil {
		return err
	}
	l.locked = false
	return nil
}

func lockFileEx(fd uintptr, flags uint32) error {
	var ol windows.Overlapped
	return windows.LockFileEx(windows.Handle(fd), flags, 0, 1, 0, &ol)
}

func (l *LockableFile) lock(flags uint32) error {
	core.ASSERT(l != nil && l.File != nil, "Lock called on nil file")
	core.ASSERT(!l.locked, "Lock called on already locked file")
	if err := lockFileEx(l.Fd(), flags); err != nil {
		return err
	}
	l.locked = true
	return nil
}
