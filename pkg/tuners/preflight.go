// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package tuners

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"tcptune/pkg/utils"
)

const availableCCPath = "/proc/sys/net/ipv4/tcp_available_congestion_control"

// Preflight runs the precondition checkers in order. Fatal results must
// abort the run before anything is displayed or mutated.
func Preflight(fs afero.Fs, congestionControl string) []CheckResult {
	checkers := []Checker{
		NewPrivilegeChecker(os.Geteuid),
		NewCongestionControlChecker(fs, congestionControl),
	}
	var results []CheckResult
	for _, c := range checkers {
		results = append(results, *c.Check())
	}
	return results
}

type privilegeChecker struct {
	euid func() int
}

// NewPrivilegeChecker verifies the process runs with root privilege.
// Kernel parameters cannot be written without it, so this is fatal.
func NewPrivilegeChecker(euid func() int) Checker {
	return &privilegeChecker{euid: euid}
}

func (*privilegeChecker) GetDesc() string {
	return "Process runs with root privilege"
}

func (*privilegeChecker) GetSeverity() Severity {
	return Fatal
}

func (c *privilegeChecker) Check() *CheckResult {
	euid := c.euid()
	res := &CheckResult{
		Desc:     c.GetDesc(),
		IsOk:     euid == 0,
		Current:  fmt.Sprintf("euid=%d", euid),
		Required: "euid=0",
		Severity: c.GetSeverity(),
	}
	if !res.IsOk {
		res.Err = errors.New("this command must be run as root")
	}
	return res
}

type ccChecker struct {
	fs afero.Fs
	cc string
}

// NewCongestionControlChecker verifies the selected congestion control
// algorithm is known to the kernel. Missing is a warning: the directive is
// still written and takes effect once the module is loaded.
func NewCongestionControlChecker(fs afero.Fs, cc string) Checker {
	return &ccChecker{fs: fs, cc: cc}
}

func (c *ccChecker) GetDesc() string {
	return fmt.Sprintf("Kernel offers the %q congestion control", c.cc)
}

func (*ccChecker) GetSeverity() Severity {
	return Warning
}

func (c *ccChecker) Check() *CheckResult {
	res := &CheckResult{
		Desc:     c.GetDesc(),
		Required: c.cc,
		Severity: c.GetSeverity(),
	}
	lines, err := utils.ReadFileLines(c.fs, availableCCPath)
	if err != nil || len(lines) == 0 {
		res.Err = fmt.Errorf("unable to read %s", availableCCPath)
		return res
	}
	res.Current = lines[0]
	for _, algo := range strings.Fields(lines[0]) {
		if algo == c.cc {
			res.IsOk = true
			break
		}
	}
	return res
}
