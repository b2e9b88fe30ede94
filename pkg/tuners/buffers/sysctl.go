// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package buffers

import (
	sysctl "github.com/lorenzosaino/go-sysctl"
)

// CurrentValues reads the live kernel values of the managed keys, for the
// plan's current-vs-proposed comparison. Best effort: unreadable keys are
// simply absent.
func CurrentValues() map[string]string {
	current := make(map[string]string, len(ManagedKeys()))
	for _, key := range ManagedKeys() {
		v, err := sysctl.Get(key)
		if err != nil {
			continue
		}
		current[key] = v
	}
	return current
}
