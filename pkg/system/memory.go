// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/afero"

	"tcptune/pkg/utils"
)

const memInfoPath = "/proc/meminfo"

// AvailableMemoryGiB reports the memory the kernel considers available for
// new allocations, preferring MemAvailable from /proc/meminfo and falling
// back to sysinfo(2) free RAM.
func AvailableMemoryGiB(fs afero.Fs) (float64, error) {
	kib, err := readMemAvailableKiB(fs)
	if err == nil {
		return float64(kib) * units.KiB / units.GiB, nil
	}
	return sysinfoAvailableGiB()
}

func readMemAvailableKiB(fs afero.Fs) (uint64, error) {
	lines, err := utils.ReadFileLines(fs, memInfoPath)
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kib, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unable to parse MemAvailable value %q: %w", fields[1], err)
		}
		return kib, nil
	}
	return 0, fmt.Errorf("no MemAvailable entry in %s", memInfoPath)
}
