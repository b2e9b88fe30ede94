// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestReadMemAvailableKiB(t *testing.T) {
	fs := afero.NewMemMapFs()
	meminfo := `MemTotal:       16311996 kB
MemFree:         1103852 kB
MemAvailable:    8388608 kB
Buffers:          517964 kB
`
	require.NoError(t, afero.WriteFile(fs, "/proc/meminfo", []byte(meminfo), 0o444))

	kib, err := readMemAvailableKiB(fs)
	require.NoError(t, err)
	require.Equal(t, uint64(8388608), kib)

	gib, err := AvailableMemoryGiB(fs)
	require.NoError(t, err)
	require.InDelta(t, 8.0, gib, 0.001)
}

func TestReadMemAvailableKiBMissingEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proc/meminfo", []byte("MemTotal: 1 kB\n"), 0o444))
	_, err := readMemAvailableKiB(fs)
	require.Error(t, err)
}

func TestPeerFromEnv(t *testing.T) {
	peer, ok := PeerFromEnv("203.0.113.7 52184 198.51.100.3 22")
	require.True(t, ok)
	require.Equal(t, "203.0.113.7", peer)

	_, ok = PeerFromEnv("")
	require.False(t, ok)
	_, ok = PeerFromEnv("   ")
	require.False(t, ok)
}

func TestParsePingRTTMs(t *testing.T) {
	out := []string{
		"PING 1.1.1.1 (1.1.1.1) 56(84) bytes of data.",
		"64 bytes from 1.1.1.1: icmp_seq=1 ttl=58 time=12.3 ms",
		"64 bytes from 1.1.1.1: icmp_seq=2 ttl=58 time=14.1 ms",
		"64 bytes from 1.1.1.1: icmp_seq=3 ttl=58 time=13.2 ms",
		"",
		"--- 1.1.1.1 ping statistics ---",
	}
	rtt, err := parsePingRTTMs(out)
	require.NoError(t, err)
	require.Equal(t, 13, rtt)
}

func TestParsePingRTTMsNoSamples(t *testing.T) {
	_, err := parsePingRTTMs([]string{"ping: unknown host"})
	require.Error(t, err)
}

func TestDefaultRouteInterface(t *testing.T) {
	fs := afero.NewMemMapFs()
	route := "Iface\tDestination\tGateway\tFlags\tRefCnt\tUse\tMetric\tMask\tMTU\tWindow\tIRTT\n" +
		"eth1\t0000A8C0\t00000000\t0001\t0\t0\t100\t00FFFFFF\t0\t0\t0\n" +
		"eth0\t00000000\t0101A8C0\t0003\t0\t0\t100\t00000000\t0\t0\t0\n"
	require.NoError(t, afero.WriteFile(fs, "/proc/net/route", []byte(route), 0o444))

	iface, err := DefaultRouteInterface(fs)
	require.NoError(t, err)
	require.Equal(t, "eth0", iface)
}

func TestDefaultRouteInterfaceNoDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proc/net/route", []byte("Iface\tDestination\n"), 0o444))
	_, err := DefaultRouteInterface(fs)
	require.Error(t, err)
}
