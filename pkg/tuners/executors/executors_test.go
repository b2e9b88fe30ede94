// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package executors_test

import (
	"bufio"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tcptune/pkg/tuners/executors"
)

type countingCommand struct {
	executed int
}

func (c *countingCommand) Execute() error {
	c.executed++
	return nil
}

func (c *countingCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintln(w, "echo would-run")
	return w.Flush()
}

func TestDirectExecutorExecutes(t *testing.T) {
	e := executors.NewDirectExecutor()
	require.False(t, e.IsLazy())

	cmd := &countingCommand{}
	require.NoError(t, e.Execute(cmd))
	require.Equal(t, 1, cmd.executed)
}

func TestScriptRenderingExecutorOnlyRenders(t *testing.T) {
	var buf bytes.Buffer
	e := executors.NewScriptRenderingExecutor(&buf)
	require.True(t, e.IsLazy())

	cmd := &countingCommand{}
	require.NoError(t, e.Execute(cmd))
	require.Zero(t, cmd.executed)
	require.Equal(t, "echo would-run\n", buf.String())
}
