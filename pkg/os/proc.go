// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package os

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Proc runs external commands with a timeout, capturing their output.
type Proc interface {
	Run(timeout time.Duration, command string, args ...string) ([]string, error)
}

func NewProc() Proc {
	return &proc{}
}

type proc struct{}

func (*proc) Run(
	timeout time.Duration, command string, args ...string,
) ([]string, error) {
	zap.L().Sugar().Debugf("Running command '%s' with arguments '%s'", command, args)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, command, args...)
	var out bytes.Buffer
	var errout bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errout
	cmd.Env = os.Environ()
	err := cmd.Run()
	if err != nil {
		return nil, fmt.Errorf("err=%w, stderr=%s", err, errout.String())
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return strings.Split(out.String(), "\n"), nil
}
