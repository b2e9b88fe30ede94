// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

func ReadFileLines(fs afero.Fs, filePath string) ([]string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListFilesInPath returns the sorted file names directly under path. A
// missing or unreadable directory yields an empty list.
func ListFilesInPath(fs afero.Fs, path string) []string {
	file, err := fs.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()
	files, _ := file.Readdir(0)
	var names []string
	for _, fileInfo := range files {
		if fileInfo.IsDir() {
			continue
		}
		names = append(names, fileInfo.Name())
	}
	sort.Strings(names)
	return names
}

func CopyFile(fs afero.Fs, src string, dst string) error {
	input, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, input, 0o644)
}

func WriteFileLines(fs afero.Fs, lines []string, path string) error {
	return afero.WriteFile(fs, path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// BackupRecord describes a safety copy taken before a file was altered or
// relocated. Backups are never overwritten and never cleaned up
// automatically; recovery is a manual copy back.
type BackupRecord struct {
	OriginalPath string
	BackupPath   string
	Timestamp    time.Time
}

const backupTimeLayout = "20060102150405"

// BackupPath returns the backup destination for path as of now.
func BackupPath(path string, now time.Time) string {
	return fmt.Sprintf("%s.tcptune.%s.bk", path, now.UTC().Format(backupTimeLayout))
}

// BackupFile copies path to its timestamped backup location, leaving the
// original in place.
func BackupFile(fs afero.Fs, path string, now time.Time) (BackupRecord, error) {
	rec := BackupRecord{
		OriginalPath: path,
		BackupPath:   BackupPath(path, now),
		Timestamp:    now,
	}
	if err := CopyFile(fs, path, rec.BackupPath); err != nil {
		return BackupRecord{}, fmt.Errorf("unable to create backup of %s: %w", path, err)
	}
	return rec, nil
}
