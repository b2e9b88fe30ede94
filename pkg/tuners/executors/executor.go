// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package executors

import "tcptune/pkg/tuners/executors/commands"

// Executor runs mutating commands. A lazy executor renders each command's
// textual form instead of executing it, so a run wired to one performs no
// filesystem or kernel mutation at all.
type Executor interface {
	Execute(commands.Command) error
	IsLazy() bool
}
