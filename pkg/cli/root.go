// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ExecutionMode is fixed once at startup from the command line and threaded
// to everything that could mutate state. There are no transitions within a
// run.
type ExecutionMode int

const (
	ModePreview ExecutionMode = iota
	ModeCommit
)

func (m ExecutionMode) String() string {
	if m == ModeCommit {
		return "commit"
	}
	return "preview"
}

type options struct {
	dryRun        bool
	apply         bool
	yes           bool
	verbose       bool
	outScript     string
	timeout       time.Duration
	bandwidthMbps int
	rttMs         int
	memoryGiB     float64
	pingHost      string
}

func Execute() {
	fs := afero.NewOsFs()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	// Unrecognized flags and arguments surface here; cobra has already
	// printed the reason and usage.
	if err := NewRootCmd(fs).Execute(); err != nil {
		os.Exit(2)
	}
}

func NewRootCmd(fs afero.Fs) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "tcptune",
		Short: "Computes and applies safe TCP buffer sizes from memory, bandwidth, and RTT",
		Long: `tcptune derives kernel network buffer limits from three observations:
available memory, link bandwidth, and round-trip latency. The buffer
maximum is the bandwidth-delay product doubled, capped at 3% of memory and
at 64 MiB, then rounded down to a fixed bucket.

By default the tool only previews: it prints the derived parameters, the
conflicting configuration it found, and the exact commands a real run
would execute. Pass --apply to perform them.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {
			zap.ReplaceGlobals(newLogger(opts.verbose))
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if opts.apply && opts.dryRun && cmd.Flags().Changed("dry-run") {
				usageDie(cmd, "--dry-run and --apply are mutually exclusive")
			}
			if opts.yes && !opts.apply {
				usageDie(cmd, "--yes is only valid with --apply")
			}
			mode := ModePreview
			if opts.apply {
				mode = ModeCommit
			}
			run(fs, mode, opts)
		},
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", true, "Calculate and display the plan without changing anything")
	f.BoolVar(&opts.apply, "apply", false, "Execute the plan: resolve conflicts, install the config, reload")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt (only valid with --apply)")
	f.StringVar(&opts.outScript, "output-script", "", "Write the plan as an executable script to this file instead of running it")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout for each external command (ping, sysctl, tc)")
	f.IntVar(&opts.bandwidthMbps, "bandwidth", 0, "Link bandwidth in Mbps (default 1000)")
	f.IntVar(&opts.rttMs, "rtt", 0, "Round-trip time in ms (default: measured by ping, else 150)")
	f.Float64Var(&opts.memoryGiB, "memory", 0, "Available memory in GiB (default: detected)")
	f.StringVar(&opts.pingHost, "ping-host", "", "Host to measure RTT against (default: SSH peer, else 1.1.1.1)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func usageDie(cmd *cobra.Command, msg string) {
	color.New(color.FgRed).Fprintln(os.Stderr, msg)
	cmd.Usage()
	os.Exit(2)
}
