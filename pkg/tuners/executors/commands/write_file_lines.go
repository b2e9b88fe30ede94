// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tcptune/pkg/utils"
)

type writeFileLinesCommand struct {
	fs    afero.Fs
	path  string
	lines []string
	mode  os.FileMode
}

// NewWriteFileLinesCmd rewrites path with lines, keeping mode. Callers that
// rewrite an existing file pass its stat'd mode so the rewrite does not
// change permissions.
func NewWriteFileLinesCmd(fs afero.Fs, path string, lines []string, mode os.FileMode) Command {
	return &writeFileLinesCommand{
		fs:    fs,
		path:  path,
		lines: lines,
		mode:  mode,
	}
}

func (c *writeFileLinesCommand) Execute() error {
	zap.L().Sugar().Debugf("Writing %d lines to file '%s'", len(c.lines), c.path)
	if err := utils.WriteFileLines(c.fs, c.lines, c.path); err != nil {
		return err
	}
	return c.fs.Chmod(c.path, c.mode)
}

func (c *writeFileLinesCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintf(w, "cat << EOF > %s\n", c.path)
	for _, line := range c.lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, "EOF")
	fmt.Fprintf(w, "chmod %o %s\n", uint32(c.mode), c.path)
	return w.Flush()
}
