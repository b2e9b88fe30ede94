// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"

	"tcptune/pkg/os"
)

// DefaultPingHost is probed when no better peer is known.
const DefaultPingHost = "1.1.1.1"

const pingCount = 3

var pingTimePattern = regexp.MustCompile(`time=([0-9.]+) ms`)

// PeerFromEnv extracts the client address from an SSH_CONNECTION-style
// value ("client_ip client_port server_ip server_port").
func PeerFromEnv(env string) (string, bool) {
	fields := strings.Fields(env)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// MeasureRTTMs pings host and returns the mean round-trip time in whole
// milliseconds, truncated. The probe is retried once before giving up;
// callers are expected to fall back to a fixed default on error.
func MeasureRTTMs(proc os.Proc, timeout time.Duration, host string) (int, error) {
	waitSec := int(timeout / time.Second)
	if waitSec < 1 {
		waitSec = 1
	}
	var lines []string
	err := retry.Do(
		func() error {
			out, err := proc.Run(
				timeout,
				"ping", "-c", strconv.Itoa(pingCount), "-W", strconv.Itoa(waitSec), host,
			)
			if err != nil {
				return err
			}
			lines = out
			return nil
		},
		retry.Attempts(2),
		retry.Delay(100*time.Millisecond),
	)
	if err != nil {
		return 0, fmt.Errorf("ping %s failed: %w", host, err)
	}
	rtt, err := parsePingRTTMs(lines)
	if err != nil {
		return 0, err
	}
	zap.L().Sugar().Debugf("Measured RTT to %s: %d ms", host, rtt)
	return rtt, nil
}

func parsePingRTTMs(lines []string) (int, error) {
	var sum float64
	var n int
	for _, line := range lines {
		m := pingTimePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("no round-trip times in ping output")
	}
	return int(sum / float64(n)), nil
}
