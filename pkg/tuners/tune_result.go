// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package tuners

// TuneResult distinguishes a failed run from one that completed, possibly
// with best-effort steps skipped. Warnings never fail the run.
type TuneResult interface {
	IsFailed() bool
	Error() error
	Warnings() []string
}

type tuneResult struct {
	err      error
	warnings []string
}

func NewTuneError(err error) TuneResult {
	return &tuneResult{err: err}
}

func NewTuneResult(warnings []string) TuneResult {
	return &tuneResult{warnings: warnings}
}

func (r *tuneResult) IsFailed() bool {
	return r.err != nil
}

func (r *tuneResult) Error() error {
	return r.err
}

func (r *tuneResult) Warnings() []string {
	return r.warnings
}
