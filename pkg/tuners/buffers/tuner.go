// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package buffers

import (
	"fmt"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tcptune/pkg/os"
	"tcptune/pkg/system"
	"tcptune/pkg/tuners"
	"tcptune/pkg/tuners/conflicts"
	"tcptune/pkg/tuners/executors"
	"tcptune/pkg/tuners/executors/commands"
)

const (
	// SysctlConfPath is the single file whose conflicting lines get
	// commented out in place.
	SysctlConfPath = "/etc/sysctl.conf"
	// SysctlDropInDir is the directory whose conflicting files get
	// quarantined whole.
	SysctlDropInDir = "/etc/sysctl.d"
)

// AdvisoryDirs are scanned read-only; conflicts there are reported, never
// touched.
var AdvisoryDirs = []string{"/usr/lib/sysctl.d", "/run/sysctl.d"}

// Tuner derives the buffer parameters once at construction and then either
// applies or describes the full mutation sequence, depending on the
// executor it was wired with.
type Tuner struct {
	fs       afero.Fs
	executor executors.Executor
	resolver *conflicts.Resolver
	proc     os.Proc
	timeout  time.Duration
	inputs   Inputs
	params   Params
}

var _ tuners.Tunable = (*Tuner)(nil)

func NewTuner(
	fs afero.Fs,
	executor executors.Executor,
	proc os.Proc,
	in Inputs,
	timeout time.Duration,
) *Tuner {
	in = in.Sanitized()
	return &Tuner{
		fs:       fs,
		executor: executor,
		resolver: conflicts.NewResolver(fs, executor, ManagedKeys()),
		proc:     proc,
		timeout:  timeout,
		inputs:   in,
		params:   Calc(in),
	}
}

func (t *Tuner) Inputs() Inputs { return t.inputs }
func (t *Tuner) Params() Params { return t.params }

// Content is the exact file body a commit would install.
func (t *Tuner) Content() string { return Render(t.inputs, t.params) }

func (t *Tuner) CheckIfSupported() (supported bool, reason string) {
	if runtime.GOOS != "linux" {
		return false, fmt.Sprintf("%s is not supported", runtime.GOOS)
	}
	return true, ""
}

// Plan describes everything a commit would do, without doing any of it.
type Plan struct {
	Inputs            Inputs
	Params            Params
	Content           string
	CommentTargets    []conflicts.Match
	QuarantineTargets []conflicts.QuarantinedFile
	Advisories        []conflicts.AdvisoryMatch
	Current           map[string]string
}

// Plan computes the plan. Read-only; identical for preview and commit.
func (t *Tuner) Plan() (Plan, error) {
	p := Plan{
		Inputs:  t.inputs,
		Params:  t.params,
		Content: t.Content(),
		Current: CurrentValues(),
	}
	var err error
	p.CommentTargets, err = conflicts.ScanFile(t.fs, SysctlConfPath, ManagedKeys(), conflicts.SkipComments)
	if err != nil {
		return p, err
	}
	p.QuarantineTargets, err = t.resolver.FindConflicting(SysctlDropInDir, ConfPath)
	if err != nil {
		return p, err
	}
	p.Advisories = t.resolver.Advisory(AdvisoryDirs...)
	return p, nil
}

// Tune runs the mutation sequence: neutralize conflicts, install the
// managed file, then the best-effort kernel steps. The first three stages
// are fatal on failure; the kernel steps only warn.
func (t *Tuner) Tune() tuners.TuneResult {
	if _, err := t.resolver.CommentOut(SysctlConfPath); err != nil {
		return tuners.NewTuneError(err)
	}
	if _, err := t.resolver.Quarantine(SysctlDropInDir, ConfPath); err != nil {
		return tuners.NewTuneError(err)
	}
	if err := t.executor.Execute(commands.NewInstallFileCmd(t.fs, ConfPath, t.Content())); err != nil {
		return tuners.NewTuneError(fmt.Errorf("unable to install %s: %w", ConfPath, err))
	}
	return tuners.NewTuneResult(t.bestEffortKernelSteps())
}

// bestEffortKernelSteps makes the new configuration take effect now:
// apply each directive live, reload the sysctl hierarchy, and point the
// default interface's root qdisc at the selected discipline. Failures are
// collected as warnings; the run already succeeded when the file landed.
func (t *Tuner) bestEffortKernelSteps() []string {
	var errs *multierror.Error
	for _, kv := range Directives(t.params) {
		if err := t.executor.Execute(commands.NewSysctlSetCmd(kv.Key, kv.Value)); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("sysctl %s: %w", kv.Key, err))
		}
	}
	if err := t.executor.Execute(
		commands.NewLaunchCmd(t.proc, t.timeout, "sysctl", "--system"),
	); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("sysctl --system: %w", err))
	}
	if iface, err := system.DefaultRouteInterface(t.fs); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("default route lookup: %w", err))
	} else if err := t.executor.Execute(
		commands.NewLaunchCmd(t.proc, t.timeout, "tc", "qdisc", "replace", "dev", iface, "root", Qdisc),
	); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("tc qdisc replace on %s: %w", iface, err))
	}
	var warnings []string
	if errs != nil {
		for _, err := range errs.Errors {
			zap.L().Sugar().Debugf("Best-effort step failed: %v", err)
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}
