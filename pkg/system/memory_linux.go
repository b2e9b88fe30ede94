// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package system

import (
	"github.com/docker/go-units"
	"golang.org/x/sys/unix"
)

func sysinfoAvailableGiB() (float64, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return 0, err
	}
	free := uint64(si.Freeram) * uint64(si.Unit)
	return float64(free) / units.GiB, nil
}
