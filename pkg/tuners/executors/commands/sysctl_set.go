// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"

	sysctl "github.com/lorenzosaino/go-sysctl"
	"go.uber.org/zap"
)

type sysctlSetCommand struct {
	key   string
	value string
}

// NewSysctlSetCmd applies a kernel parameter immediately, without waiting
// for a configuration reload.
func NewSysctlSetCmd(key, value string) Command {
	return &sysctlSetCommand{key: key, value: value}
}

func (c *sysctlSetCommand) Execute() error {
	zap.L().Sugar().Debugf("Setting sysctl '%s' to '%s'", c.key, c.value)
	return sysctl.Set(c.key, c.value)
}

func (c *sysctlSetCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintf(w, "sysctl -w '%s=%s'\n", c.key, c.value)
	return w.Flush()
}
