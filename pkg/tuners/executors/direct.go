// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package executors

import "tcptune/pkg/tuners/executors/commands"

type directExecutor struct{}

func NewDirectExecutor() Executor {
	return &directExecutor{}
}

func (*directExecutor) Execute(cmd commands.Command) error {
	return cmd.Execute()
}

func (*directExecutor) IsLazy() bool {
	return false
}
