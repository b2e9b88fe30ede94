// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package buffers

import (
	"fmt"
	"strings"
)

// ConfPath is the drop-in file this tool owns. Everything else under the
// sysctl hierarchy is somebody else's.
const ConfPath = "/etc/sysctl.d/99-tcptune.conf"

const (
	// CongestionControl and Qdisc are fixed selections, not derived.
	CongestionControl = "bbr"
	Qdisc             = "fq"
)

// KV is a single sysctl directive.
type KV struct {
	Key   string
	Value string
}

// Directives returns the managed directives in emission order: the eight
// tuned keys followed by the two fixed ones.
func Directives(p Params) []KV {
	return []KV{
		{"net.core.rmem_max", fmt.Sprint(p.MaxBytes)},
		{"net.core.wmem_max", fmt.Sprint(p.MaxBytes)},
		{"net.core.rmem_default", fmt.Sprint(p.RmemDefault)},
		{"net.core.wmem_default", fmt.Sprint(p.WmemDefault)},
		{"net.ipv4.tcp_rmem", fmt.Sprintf("%d %d %d", TCPRmemMin, TCPRmemDefault, p.MaxBytes)},
		{"net.ipv4.tcp_wmem", fmt.Sprintf("%d %d %d", TCPWmemMin, TCPWmemDefault, p.MaxBytes)},
		{"net.ipv4.tcp_congestion_control", CongestionControl},
		{"net.core.default_qdisc", Qdisc},
		{"net.ipv4.tcp_fastopen", "3"},
		{"net.ipv4.tcp_mtu_probing", "1"},
	}
}

// ManagedKeys lists the kernel parameters this tool owns. A line setting
// one of these in any other sysctl source is a conflict candidate.
func ManagedKeys() []string {
	keys := make([]string, 0, 8)
	for _, kv := range Directives(Params{}) {
		if kv.Key == "net.ipv4.tcp_fastopen" || kv.Key == "net.ipv4.tcp_mtu_probing" {
			continue
		}
		keys = append(keys, kv.Key)
	}
	return keys
}

// Render produces the configuration file body. Identical inputs render
// identical bytes; nothing time- or host-dependent goes in here.
func Render(in Inputs, p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by tcptune. Do not edit; rerun tcptune to regenerate.\n")
	fmt.Fprintf(&b, "#\n")
	fmt.Fprintf(&b, "# inputs: memory=%.2f GiB, bandwidth=%d Mbps, rtt=%d ms\n",
		in.MemoryGiB, in.BandwidthMbps, in.RTTMs)
	fmt.Fprintf(&b, "# bdp = %d Mbps x 125 x %d ms = %d bytes\n",
		in.BandwidthMbps, in.RTTMs, p.BDPBytes)
	fmt.Fprintf(&b, "# cap = min(2 x bdp, 3%% of memory, 64 MiB) = %d bytes -> %d MiB bucket\n",
		p.CapBytes, p.BucketMB)
	fmt.Fprintf(&b, "\n")
	for _, kv := range Directives(p) {
		fmt.Fprintf(&b, "%s = %s\n", kv.Key, kv.Value)
	}
	return b.String()
}
