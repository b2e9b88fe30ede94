// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/term"

	"tcptune/pkg/out"
	tcpos "tcptune/pkg/os"
	"tcptune/pkg/system"
	"tcptune/pkg/tuners"
	"tcptune/pkg/tuners/buffers"
	"tcptune/pkg/tuners/conflicts"
	"tcptune/pkg/tuners/executors"
)

const (
	confirmationToken = "apply"
	runLockPath       = "/run/tcptune.lock"
)

func run(fs afero.Fs, mode ExecutionMode, opts options) {
	zap.L().Sugar().Debugf("Running in %s mode", mode)
	proc := tcpos.NewProc()

	for _, res := range tuners.Preflight(fs, buffers.CongestionControl) {
		if !res.IsOk && res.Severity == tuners.Fatal {
			out.Die("%v", res.Err)
		}
		if !res.IsOk {
			warnf("%s (current: %s)", res.Desc, res.Current)
		}
	}

	in := gatherInputs(fs, proc, opts)

	var scriptOut io.Writer
	switch {
	case opts.outScript != "":
		f, err := os.OpenFile(opts.outScript, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
		out.MaybeDie(err, "unable to create %s: %v", opts.outScript, err)
		defer f.Close()
		fmt.Fprintln(f, "#!/bin/bash")
		scriptOut = f
	case mode == ModePreview:
		scriptOut = os.Stdout
	}

	tuner := buffers.NewTuner(fs, newExecutor(scriptOut), proc, in, opts.timeout)
	var tunable tuners.Tunable = tuner
	if supported, reason := tunable.CheckIfSupported(); !supported {
		out.Die("tuning is not supported here: %s", reason)
	}

	plan, err := tuner.Plan()
	out.MaybeDie(err, "unable to compute the plan: %v", err)
	printPlan(plan)

	commitForReal := mode == ModeCommit && opts.outScript == ""
	var warnings []string
	if commitForReal {
		warnings, err = commitTune(tunable, opts.yes, func() bool {
			return out.ConfirmToken(confirmationToken)
		}, runLockPath)
		out.MaybeDieErr(err)
	} else {
		fmt.Println("The following commands describe the run; nothing is executed without --apply:")
		res := tunable.Tune()
		if res.IsFailed() {
			out.Die("tuning failed: %v", res.Error())
		}
		warnings = res.Warnings()
	}
	for _, w := range warnings {
		warnf("best-effort step skipped: %s", w)
	}
	if commitForReal {
		color.New(color.FgGreen).Printf("System tuned; configuration written to %s\n", buffers.ConfPath)
	} else {
		fmt.Println("\nNo changes were made. Re-run with --apply to execute.")
	}
}

// newExecutor selects how the tuner's commands run: rendered to script when
// a destination is given, executed directly otherwise.
func newExecutor(script io.Writer) executors.Executor {
	if script != nil {
		return executors.NewScriptRenderingExecutor(script)
	}
	return executors.NewDirectExecutor()
}

// commitTune gates the mutating run behind the operator's confirmation and
// the run lock. A declined confirmation returns before anything is touched.
func commitTune(
	tunable tuners.Tunable, skipConfirm bool, confirm func() bool, lockPath string,
) ([]string, error) {
	if !skipConfirm && !confirm() {
		return nil, errors.New("confirmation declined; nothing was changed")
	}
	lock, err := tcpos.AcquireRunLock(lockPath)
	if err != nil {
		return nil, err
	}
	defer lock.Release()
	res := tunable.Tune()
	if res.IsFailed() {
		return nil, fmt.Errorf("tuning failed: %w", res.Error())
	}
	return res.Warnings(), nil
}

// gatherInputs resolves the three observations: explicit flags win, then
// probes, then the fixed defaults. Probe failure is a policy fallback,
// never an error.
func gatherInputs(fs afero.Fs, proc tcpos.Proc, opts options) buffers.Inputs {
	in := buffers.DefaultInputs()

	if mem, err := system.AvailableMemoryGiB(fs); err == nil {
		in.MemoryGiB = mem
	} else {
		zap.L().Sugar().Debugf("Memory detection failed, assuming %v GiB: %v", in.MemoryGiB, err)
	}
	if opts.memoryGiB > 0 {
		in.MemoryGiB = opts.memoryGiB
	}
	if opts.bandwidthMbps > 0 {
		in.BandwidthMbps = opts.bandwidthMbps
	}
	if opts.rttMs > 0 {
		in.RTTMs = opts.rttMs
		return in
	}

	host := opts.pingHost
	if host == "" {
		if peer, ok := system.PeerFromEnv(os.Getenv("SSH_CONNECTION")); ok {
			host = peer
		}
	}
	if host == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		if h, err := out.Prompt("Host to measure RTT against (empty for %s):", system.DefaultPingHost); err == nil && h != "" {
			host = h
		}
	}
	if host == "" {
		host = system.DefaultPingHost
	}
	if rtt, err := system.MeasureRTTMs(proc, opts.timeout, host); err == nil {
		in.RTTMs = rtt
	} else {
		zap.L().Sugar().Debugf("RTT probe failed, assuming %d ms: %v", in.RTTMs, err)
	}
	return in
}

func printPlan(plan buffers.Plan) {
	fmt.Printf(
		"Inputs: memory=%.2f GiB, bandwidth=%d Mbps, rtt=%d ms\n",
		plan.Inputs.MemoryGiB, plan.Inputs.BandwidthMbps, plan.Inputs.RTTMs,
	)
	fmt.Printf(
		"Derived: bdp=%s, cap=%s, bucket=%d MiB\n\n",
		units.BytesSize(float64(plan.Params.BDPBytes)),
		units.BytesSize(float64(plan.Params.CapBytes)),
		plan.Params.BucketMB,
	)

	tw := out.NewTable("parameter", "current", "proposed")
	for _, kv := range buffers.Directives(plan.Params) {
		current, ok := plan.Current[kv.Key]
		if !ok {
			current = "-"
		}
		tw.PrintStrings(kv.Key, current, kv.Value)
	}
	tw.Flush()
	fmt.Println()

	if len(plan.CommentTargets) > 0 {
		fmt.Printf("Conflicting lines in %s to comment out (backup taken first):\n", buffers.SysctlConfPath)
		for _, m := range plan.CommentTargets {
			fmt.Printf("  %4d: %s\n", m.LineNo, m.Text)
		}
	}
	if len(plan.QuarantineTargets) > 0 {
		fmt.Printf("Conflicting files in %s to quarantine whole:\n", buffers.SysctlDropInDir)
		for _, q := range plan.QuarantineTargets {
			fmt.Printf("  %s (%d conflicting lines)\n", q.Path, len(q.Matches))
		}
	}
	for _, adv := range plan.Advisories {
		warnf("advisory only: %s has %s", adv.Path, describeMatches(adv.Matches))
	}
	if len(plan.CommentTargets)+len(plan.QuarantineTargets) > 0 {
		fmt.Println()
	}
}

func describeMatches(matches []conflicts.Match) string {
	var active, commented int
	for _, m := range matches {
		if m.Commented {
			commented++
		} else {
			active++
		}
	}
	return fmt.Sprintf("%d active and %d commented managed-key lines", active, commented)
}

func warnf(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "WARNING: "+msg+"\n", args...)
}
