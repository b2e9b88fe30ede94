// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type moveFileCommand struct {
	fs  afero.Fs
	src string
	dst string
}

// NewMoveFileCmd relocates src to dst in full. Nothing is deleted: the
// destination is the file's new home and keeps its content byte for byte.
func NewMoveFileCmd(fs afero.Fs, src, dst string) Command {
	return &moveFileCommand{fs: fs, src: src, dst: dst}
}

func (c *moveFileCommand) Execute() error {
	zap.L().Sugar().Debugf("Moving '%s' to '%s'", c.src, c.dst)
	return c.fs.Rename(c.src, c.dst)
}

func (c *moveFileCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintf(w, "mv %s %s\n", c.src, c.dst)
	return w.Flush()
}
