// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

// Package conflicts finds and neutralizes sysctl directives that would
// fight with the managed configuration file. Matching is line-level key
// matching only; this is deliberately not a sysctl parser.
package conflicts

import (
	"os"
	"regexp"

	"github.com/spf13/afero"

	"tcptune/pkg/utils"
)

// ScanMode selects whether commented lines count as matches.
type ScanMode int

const (
	// SkipComments matches only active lines; used to target mutation.
	SkipComments ScanMode = iota
	// IncludeComments also matches commented-out lines; used for advisory
	// reports on directories this tool never mutates.
	IncludeComments
)

// A line matches when, after leading whitespace and an optional comment
// marker, a key is followed by optional whitespace and '='.
var linePattern = regexp.MustCompile(`^\s*(#+\s*)?([A-Za-z0-9._/-]+)\s*=`)

// Match is one conflicting line.
type Match struct {
	LineNo    int // 1-based
	Text      string
	Commented bool
}

// ScanLines reports the lines whose key is in keys.
func ScanLines(keys []string, lines []string, mode ScanMode) []Match {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	var matches []Match
	for i, line := range lines {
		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		commented := m[1] != ""
		if commented && mode == SkipComments {
			continue
		}
		if _, ok := set[m[2]]; !ok {
			continue
		}
		matches = append(matches, Match{LineNo: i + 1, Text: line, Commented: commented})
	}
	return matches
}

// ScanFile scans a single file. A missing file is no conflict, not an
// error.
func ScanFile(fs afero.Fs, path string, keys []string, mode ScanMode) ([]Match, error) {
	lines, err := utils.ReadFileLines(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ScanLines(keys, lines, mode), nil
}
