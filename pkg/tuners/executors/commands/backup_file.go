// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tcptune/pkg/utils"
)

type backupFileCommand struct {
	fs   afero.Fs
	path string
	now  time.Time
}

// NewBackupFileCmd copies path to its timestamped backup location. It is
// always executed before the command that mutates path.
func NewBackupFileCmd(fs afero.Fs, path string, now time.Time) Command {
	return &backupFileCommand{fs: fs, path: path, now: now}
}

func (c *backupFileCommand) Execute() error {
	zap.L().Sugar().Debugf("Creating backup of '%s'", c.path)
	rec, err := utils.BackupFile(c.fs, c.path, c.now)
	if err == nil {
		zap.L().Sugar().Debugf("Backup created '%s'", rec.BackupPath)
	}
	return err
}

func (c *backupFileCommand) RenderScript(w *bufio.Writer) error {
	fmt.Fprintf(w, "cp %s %s\n", c.path, utils.BackupPath(c.path, c.now))
	return w.Flush()
}
