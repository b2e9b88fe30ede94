// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package os

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RunLock is an exclusive flock held for the duration of a mutating run so
// that two concurrent invocations cannot interleave their filesystem edits.
type RunLock struct {
	file *os.File
}

func AcquireRunLock(path string) (*RunLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("another invocation holds the lock at %s", path)
	}
	return &RunLock{file: f}, nil
}

func (l *RunLock) Release() error {
	defer l.file.Close()
	return unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
}
