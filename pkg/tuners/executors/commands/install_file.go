// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultMode os.FileMode = 0o644

type installFileCommand struct {
	fs      afero.Fs
	path    string
	content string
	mode    os.FileMode
}

// NewInstallFileCmd writes content to a staging file next to path and then
// renames it into place, so readers never observe a half-written file.
func NewInstallFileCmd(fs afero.Fs, path, content string) Command {
	return &installFileCommand{fs: fs, path: path, content: content, mode: defaultMode}
}

func (c *installFileCommand) staged() string {
	return c.path + ".tmp"
}

func (c *installFileCommand) Execute() error {
	zap.L().Sugar().Debugf("Installing file '%s'", c.path)
	staged := c.staged()
	if err := afero.WriteFile(c.fs, staged, []byte(c.content), c.mode); err != nil {
		return err
	}
	if err := c.fs.Rename(staged, c.path); err != nil {
		c.fs.Remove(staged)
		return fmt.Errorf("unable to install %s: %w", c.path, err)
	}
	return nil
}

func (c *installFileCommand) RenderScript(w *bufio.Writer) error {
	staged := c.staged()
	fmt.Fprintf(w, "cat << EOF > %s\n", staged)
	fmt.Fprint(w, c.content)
	fmt.Fprintln(w, "EOF")
	fmt.Fprintf(w, "chmod %o %s\n", uint32(c.mode), staged)
	fmt.Fprintf(w, "mv %s %s\n", staged, c.path)
	return w.Flush()
}
