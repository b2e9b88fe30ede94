// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package executors

import (
	"bufio"
	"io"

	"tcptune/pkg/tuners/executors/commands"
)

type scriptRenderingExecutor struct {
	w *bufio.Writer
}

// NewScriptRenderingExecutor returns a lazy executor that renders every
// command as the shell it would have run, writing to w.
func NewScriptRenderingExecutor(w io.Writer) Executor {
	return &scriptRenderingExecutor{w: bufio.NewWriter(w)}
}

func (e *scriptRenderingExecutor) Execute(cmd commands.Command) error {
	return cmd.RenderScript(e.w)
}

func (e *scriptRenderingExecutor) IsLazy() bool {
	return true
}
