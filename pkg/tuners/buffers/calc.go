// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

// Package buffers derives kernel network buffer sizes from three
// observations of the environment: available memory, link bandwidth, and
// round-trip latency.
package buffers

import (
	"math"

	"github.com/docker/go-units"
)

// Inputs are the observations the derivation runs on. They are sanitized
// before reaching Calc, so Calc itself is total and never rejects input.
type Inputs struct {
	MemoryGiB     float64
	BandwidthMbps int
	RTTMs         int
}

// Fallback values used when a probe fails or an override does not parse.
const (
	DefaultMemoryGiB     = 1.0
	DefaultBandwidthMbps = 1000
	DefaultRTTMs         = 150
)

// DefaultInputs returns the precomputed fallback observation set.
func DefaultInputs() Inputs {
	return Inputs{
		MemoryGiB:     DefaultMemoryGiB,
		BandwidthMbps: DefaultBandwidthMbps,
		RTTMs:         DefaultRTTMs,
	}
}

// Sanitized replaces any non-positive or non-finite field with its default.
// Bad input is a policy decision here, never an error.
func (in Inputs) Sanitized() Inputs {
	if !(in.MemoryGiB > 0) || math.IsInf(in.MemoryGiB, 1) {
		in.MemoryGiB = DefaultMemoryGiB
	}
	if in.BandwidthMbps <= 0 {
		in.BandwidthMbps = DefaultBandwidthMbps
	}
	if in.RTTMs <= 0 {
		in.RTTMs = DefaultRTTMs
	}
	return in
}

// Bytes of in-flight data per Mbit/s of bandwidth per millisecond of delay.
const bytesPerMbpsMs = 125

const (
	// maxBufferBytes caps the emitted buffer no matter how fat the pipe is.
	maxBufferBytes = 64 * units.MiB
	// memShare is the fraction of available memory a single buffer may pin.
	memShare = 0.03
)

// bucketsMB is the discrete scale buffer maximums are rounded down onto.
// Rounding is always downward so the result never exceeds the safety cap.
var bucketsMB = [...]int64{4, 8, 16, 32, 64}

// Fixed tcp_rmem/tcp_wmem floors; only the max slot is derived.
const (
	TCPRmemMin     = 4096
	TCPRmemDefault = 87380
	TCPWmemMin     = 4096
	TCPWmemDefault = 65536
)

// Params is the complete derived parameter set. Immutable once computed.
type Params struct {
	BDPBytes    int64
	MemBytes    int64
	CapBytes    int64
	BucketMB    int64
	MaxBytes    int64
	RmemDefault int64
	WmemDefault int64
}

// Calc derives buffer sizes from in. Pure: same inputs, same outputs, no
// side effects. Every byte conversion truncates rather than rounds.
func Calc(in Inputs) Params {
	bdp := int64(in.BandwidthMbps) * bytesPerMbpsMs * int64(in.RTTMs)
	mem := int64(in.MemoryGiB * float64(units.GiB))

	capBytes := 2 * bdp
	if m := int64(float64(mem) * memShare); m < capBytes {
		capBytes = m
	}
	if capBytes > maxBufferBytes {
		capBytes = maxBufferBytes
	}

	capMB := capBytes / units.MiB
	bucket := bucketsMB[0]
	for _, b := range bucketsMB {
		if b <= capMB {
			bucket = b
		}
	}

	p := Params{
		BDPBytes: bdp,
		MemBytes: mem,
		CapBytes: capBytes,
		BucketMB: bucket,
		MaxBytes: bucket * units.MiB,
	}
	switch {
	case bucket >= 32:
		p.RmemDefault, p.WmemDefault = 262144, 524288
	case bucket >= 8:
		p.RmemDefault, p.WmemDefault = 131072, 262144
	default:
		p.RmemDefault, p.WmemDefault = 131072, 131072
	}
	return p
}
