// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package conflicts

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"tcptune/pkg/tuners/executors"
	"tcptune/pkg/tuners/executors/commands"
	"tcptune/pkg/utils"
)

// Resolver neutralizes conflicting directives in the two locations this
// tool is allowed to mutate. Every mutation goes through the executor and
// is preceded by a backup; if the backup cannot be taken the mutation does
// not happen.
type Resolver struct {
	fs       afero.Fs
	executor executors.Executor
	keys     []string
	now      func() time.Time
}

func NewResolver(fs afero.Fs, executor executors.Executor, keys []string) *Resolver {
	return &Resolver{
		fs:       fs,
		executor: executor,
		keys:     keys,
		now:      time.Now,
	}
}

// CommentOut rewrites path so that every active managed-key line is
// commented out, after copying the file to a timestamped backup. A file
// with no active matches is left completely untouched and no backup is
// created. Running twice is a no-op the second time.
func (r *Resolver) CommentOut(path string) ([]Match, error) {
	matches, err := ScanFile(r.fs, path, r.keys, SkipComments)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	lines, err := utils.ReadFileLines(r.fs, path)
	if err != nil {
		return nil, err
	}
	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := r.executor.Execute(commands.NewBackupFileCmd(r.fs, path, r.now())); err != nil {
		return nil, fmt.Errorf("backup of %s failed, leaving the file untouched: %w", path, err)
	}
	matched := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		matched[m.LineNo] = struct{}{}
	}
	for i := range lines {
		if _, ok := matched[i+1]; ok {
			lines[i] = "# " + lines[i]
		}
	}
	if err := r.executor.Execute(commands.NewWriteFileLinesCmd(r.fs, path, lines, info.Mode())); err != nil {
		return nil, err
	}
	zap.L().Sugar().Debugf("Commented out %d conflicting lines in %s", len(matches), path)
	return matches, nil
}

// QuarantinedFile records a whole-file relocation.
type QuarantinedFile struct {
	Path    string
	Backup  string
	Matches []Match
}

// FindConflicting lists the .conf files directly under dir, keep excluded,
// that contain an active managed-key line. The scan is non-recursive; a
// missing dir means nothing to report.
func (r *Resolver) FindConflicting(dir, keep string) ([]QuarantinedFile, error) {
	var found []QuarantinedFile
	for _, name := range utils.ListFilesInPath(r.fs, dir) {
		if !strings.HasSuffix(name, ".conf") {
			continue
		}
		path := filepath.Join(dir, name)
		if path == keep {
			continue
		}
		matches, err := ScanFile(r.fs, path, r.keys, SkipComments)
		if err != nil {
			return found, err
		}
		if len(matches) == 0 {
			continue
		}
		found = append(found, QuarantinedFile{Path: path, Matches: matches})
	}
	return found, nil
}

// Quarantine moves every conflicting .conf file under dir to a timestamped
// backup path. keep (this tool's own output file) is never touched.
func (r *Resolver) Quarantine(dir, keep string) ([]QuarantinedFile, error) {
	found, err := r.FindConflicting(dir, keep)
	if err != nil {
		return nil, err
	}
	var moved []QuarantinedFile
	for _, f := range found {
		dst := utils.BackupPath(f.Path, r.now())
		if err := r.executor.Execute(commands.NewMoveFileCmd(r.fs, f.Path, dst)); err != nil {
			return moved, fmt.Errorf("unable to quarantine %s: %w", f.Path, err)
		}
		f.Backup = dst
		moved = append(moved, f)
	}
	return moved, nil
}

// AdvisoryMatch is a conflict found in a location this tool never mutates.
type AdvisoryMatch struct {
	Path    string
	Matches []Match
}

// Advisory scans dirs read-only, counting commented lines too so the
// operator sees directives that were handled on a previous run.
func (r *Resolver) Advisory(dirs ...string) []AdvisoryMatch {
	var found []AdvisoryMatch
	for _, dir := range dirs {
		for _, name := range utils.ListFilesInPath(r.fs, dir) {
			if !strings.HasSuffix(name, ".conf") {
				continue
			}
			path := filepath.Join(dir, name)
			matches, err := ScanFile(r.fs, path, r.keys, IncludeComments)
			if err != nil || len(matches) == 0 {
				continue
			}
			found = append(found, AdvisoryMatch{Path: path, Matches: matches})
		}
	}
	return found
}
