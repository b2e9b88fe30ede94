// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package commands_test

import (
	"bufio"
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"tcptune/pkg/tuners/executors/commands"
	"tcptune/pkg/utils"
)

var testTime = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func render(t *testing.T, cmd commands.Command) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cmd.RenderScript(bufio.NewWriter(&buf)))
	return buf.String()
}

func TestBackupFileCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sysctl.conf", []byte("a = 1\n"), 0o644))

	cmd := commands.NewBackupFileCmd(fs, "/etc/sysctl.conf", testTime)
	require.NoError(t, cmd.Execute())

	backup := utils.BackupPath("/etc/sysctl.conf", testTime)
	data, err := afero.ReadFile(fs, backup)
	require.NoError(t, err)
	require.Equal(t, "a = 1\n", string(data))

	// Original stays in place.
	data, err = afero.ReadFile(fs, "/etc/sysctl.conf")
	require.NoError(t, err)
	require.Equal(t, "a = 1\n", string(data))

	require.Contains(t, render(t, cmd), "cp /etc/sysctl.conf "+backup)
}

func TestBackupFileCmdFailsOnMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmd := commands.NewBackupFileCmd(fs, "/etc/sysctl.conf", testTime)
	require.Error(t, cmd.Execute())
}

func TestMoveFileCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sysctl.d/10-a.conf", []byte("x = 1\n"), 0o644))

	cmd := commands.NewMoveFileCmd(fs, "/etc/sysctl.d/10-a.conf", "/etc/sysctl.d/10-a.conf.bk")
	require.NoError(t, cmd.Execute())

	exists, err := afero.Exists(fs, "/etc/sysctl.d/10-a.conf")
	require.NoError(t, err)
	require.False(t, exists)
	data, err := afero.ReadFile(fs, "/etc/sysctl.d/10-a.conf.bk")
	require.NoError(t, err)
	require.Equal(t, "x = 1\n", string(data))

	require.Equal(t, "mv /etc/sysctl.d/10-a.conf /etc/sysctl.d/10-a.conf.bk\n", render(t, cmd))
}

func TestInstallFileCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmd := commands.NewInstallFileCmd(fs, "/etc/sysctl.d/99-tcptune.conf", "k = v\n")
	require.NoError(t, cmd.Execute())

	data, err := afero.ReadFile(fs, "/etc/sysctl.d/99-tcptune.conf")
	require.NoError(t, err)
	require.Equal(t, "k = v\n", string(data))

	// No staging file left behind.
	exists, err := afero.Exists(fs, "/etc/sysctl.d/99-tcptune.conf.tmp")
	require.NoError(t, err)
	require.False(t, exists)

	script := render(t, cmd)
	require.Contains(t, script, "cat << EOF > /etc/sysctl.d/99-tcptune.conf.tmp")
	require.Contains(t, script, "mv /etc/sysctl.d/99-tcptune.conf.tmp /etc/sysctl.d/99-tcptune.conf")
}

func TestInstallFileCmdOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sysctl.d/99-tcptune.conf", []byte("old\n"), 0o644))

	cmd := commands.NewInstallFileCmd(fs, "/etc/sysctl.d/99-tcptune.conf", "new\n")
	require.NoError(t, cmd.Execute())
	data, err := afero.ReadFile(fs, "/etc/sysctl.d/99-tcptune.conf")
	require.NoError(t, err)
	require.Equal(t, "new\n", string(data))
}

func TestWriteFileLinesCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmd := commands.NewWriteFileLinesCmd(fs, "/etc/sysctl.conf", []string{"a = 1", "# b = 2"}, 0o600)
	require.NoError(t, cmd.Execute())

	data, err := afero.ReadFile(fs, "/etc/sysctl.conf")
	require.NoError(t, err)
	require.Equal(t, "a = 1\n# b = 2\n", string(data))
	info, err := fs.Stat("/etc/sysctl.conf")
	require.NoError(t, err)
	require.Equal(t, "0600", fmt.Sprintf("%04o", info.Mode().Perm()))

	script := render(t, cmd)
	require.Contains(t, script, "cat << EOF > /etc/sysctl.conf")
	require.Contains(t, script, "# b = 2\n")
	require.Contains(t, script, "chmod 600 /etc/sysctl.conf")
}

func TestSysctlSetCmdRender(t *testing.T) {
	cmd := commands.NewSysctlSetCmd("net.ipv4.tcp_rmem", "4096 87380 33554432")
	require.Equal(t, "sysctl -w 'net.ipv4.tcp_rmem=4096 87380 33554432'\n", render(t, cmd))
}
