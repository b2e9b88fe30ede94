// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "tcptune/pkg/cli"

func main() {
	cli.Execute()
}
