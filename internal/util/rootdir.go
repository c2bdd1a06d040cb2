// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LabelSeparator splits a root spec into its path and version label.
const LabelSeparator = "::"

// RootSpec is one version to compare: an absolute path and the label it is
// reported under.
type RootSpec struct {
	Dir   string
	Label string
	// IsDir is false when the root is a single file.
	IsDir bool
}

// ParseRootDir parses a "path[::label]" string and returns the absolute path
// and the label, which defaults to the path as given. It returns an error if
// the fs entry does not exist or the spec is empty.
func ParseRootDir(rootDir string) (RootSpec, error) {
	if rootDir == "" {
		return RootSpec{}, os.ErrInvalid
	}

	raw, label, _ := strings.Cut(rootDir, LabelSeparator)
	// Anything after a second separator is ignored.
	label, _, _ = strings.Cut(label, LabelSeparator)
	label = strings.TrimSpace(label)
	if raw == "" {
		return RootSpec{}, os.ErrInvalid
	}
	if label == "" {
		label = raw
	}

	// Make a relative root absolute.
	dir := raw
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return RootSpec{}, err
		}
		dir = filepath.Join(cwd, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return RootSpec{}, err
	}

	return RootSpec{Dir: filepath.Clean(dir), Label: label, IsDir: info.IsDir()}, nil
}

// ParseRootDirs parses every spec and makes sure no two share a label.
func ParseRootDirs(specs []string) ([]RootSpec, error) {
	roots := make([]RootSpec, 0, len(specs))
	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		r, err := ParseRootDir(s)
		if err != nil {
			return nil, fmt.Errorf("root %q: %w", s, err)
		}
		if j, dup := seen[r.Label]; dup {
			return nil, fmt.Errorf("roots %d and %d share the label %q: %w", j+1, i+1, r.Label, os.ErrInvalid)
		}
		seen[r.Label] = i
		roots = append(roots, r)
	}
	return roots, nil
}
