// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package tuners

type Severity byte

const (
	Fatal Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "Fatal"
	case Warning:
		return "Warning"
	}
	panic("wrong checker severity")
}

type CheckResult struct {
	Desc     string
	IsOk     bool
	Err      error
	Current  string
	Required string
	Severity Severity
}

// Checker is a precondition probe run before any plan is displayed.
type Checker interface {
	GetDesc() string
	Check() *CheckResult
	GetSeverity() Severity
}
