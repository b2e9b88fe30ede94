// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"tcptune/pkg/utils"
)

const procRoutePath = "/proc/net/route"

// DefaultRouteInterface returns the interface carrying the default IPv4
// route.
func DefaultRouteInterface(fs afero.Fs) (string, error) {
	lines, err := utils.ReadFileLines(fs, procRoutePath)
	if err != nil {
		return "", err
	}
	for i, line := range lines {
		if i == 0 {
			// header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[1] == "00000000" {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no default route in %s", procRoutePath)
}
