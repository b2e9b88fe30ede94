// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package system

import "errors"

func sysinfoAvailableGiB() (float64, error) {
	return 0, errors.New("memory detection is only supported on linux")
}
