// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands wraps every mutating operation in an object that can
// either execute for real or render itself as shell, which is what makes
// the preview mode a byte-accurate description of the commit mode.
package commands

import "bufio"

type Command interface {
	Execute() error
	RenderScript(w *bufio.Writer) error
}
