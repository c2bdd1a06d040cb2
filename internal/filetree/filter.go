// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filetree

import (
	"fmt"
	"io/fs"
	"regexp"
)

// Filter decides whether a directory entry is part of the tree. A directory
// that is left out is not descended into.
type Filter interface {
	Include(path string, d fs.DirEntry) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(path string, d fs.DirEntry) bool

func (f FilterFunc) Include(path string, d fs.DirEntry) bool {
	return f(path, d)
}

// NameMask keeps entries whose whole name matches the pattern.
func NameMask(pattern string) (Filter, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("filetree: bad name mask %q: %w", pattern, err)
	}
	return FilterFunc(func(_ string, d fs.DirEntry) bool {
		return re.MatchString(d.Name())
	}), nil
}

// Exclude drops entries whose whole name matches any of the patterns.
func Exclude(patterns ...string) (Filter, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("filetree: bad exclude pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return FilterFunc(func(_ string, d fs.DirEntry) bool {
		for _, re := range res {
			if re.MatchString(d.Name()) {
				return false
			}
		}
		return true
	}), nil
}

// All keeps an entry only when every filter keeps it. No filters keeps
// everything.
func All(filters ...Filter) Filter {
	return FilterFunc(func(path string, d fs.DirEntry) bool {
		for _, f := range filters {
			if f != nil && !f.Include(path, d) {
				return false
			}
		}
		return true
	})
}
