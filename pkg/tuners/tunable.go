// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package tuners

type Tunable interface {
	CheckIfSupported() (supported bool, reason string)
	Tune() TuneResult
}
