// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"tcptune/pkg/os"
)

type executeCommand struct {
	cmd     string
	args    []string
	proc    os.Proc
	timeout time.Duration
}

// NewLaunchCmd runs an external system utility.
func NewLaunchCmd(
	proc os.Proc, timeout time.Duration, cmd string, args ...string,
) Command {
	return &executeCommand{
		cmd:     cmd,
		args:    args,
		proc:    proc,
		timeout: timeout,
	}
}

func (c *executeCommand) Execute() error {
	_, err := c.proc.Run(c.timeout, c.cmd, c.args...)
	return err
}

func (c *executeCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintf(w, "%s %s\n", c.cmd, strings.Join(c.args, " "))
	return w.Flush()
}
