// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd(afero.NewMemMapFs())

	dryRun := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRun)
	require.Equal(t, "true", dryRun.DefValue)

	apply := cmd.Flags().Lookup("apply")
	require.NotNil(t, apply)
	require.Equal(t, "false", apply.DefValue)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	require.Equal(t, "y", yes.Shorthand)

	require.NotNil(t, cmd.Flags().Lookup("output-script"))
	require.NotNil(t, cmd.Flags().Lookup("bandwidth"))
	require.NotNil(t, cmd.Flags().Lookup("rtt"))
	require.NotNil(t, cmd.Flags().Lookup("memory"))
}

func TestRootCmdRejectsArguments(t *testing.T) {
	cmd := NewRootCmd(afero.NewMemMapFs())
	require.Error(t, cmd.Args(cmd, []string{"unexpected"}))
	require.NoError(t, cmd.Args(cmd, nil))
}

func TestExecutionModeString(t *testing.T) {
	require.Equal(t, "preview", ModePreview.String())
	require.Equal(t, "commit", ModeCommit.String())
}
