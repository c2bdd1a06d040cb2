// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/treecmp/internal/filetree"
	"github.com/tfctl/treecmp/internal/textdiff"
)

// Status summarizes how an aligned entry varies across versions.
type Status string

const (
	// StatusSame means present everywhere with the same content.
	StatusSame Status = "same"
	// StatusAdded means absent from the first version, present in the last.
	StatusAdded Status = "added"
	// StatusRemoved means present in the first version, absent from the last.
	StatusRemoved Status = "removed"
	// StatusChanged means present everywhere with different content. A
	// directory is changed when anything below it is not the same.
	StatusChanged Status = "changed"
	// StatusPartial covers every other mix of presence and absence.
	StatusPartial Status = "partial"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusSame, StatusChanged, StatusAdded, StatusRemoved, StatusPartial}

// Report is the result of a comparison.
type Report struct {
	Versions []string       `json:"versions" yaml:"versions"`
	Rows     []Row          `json:"rows" yaml:"rows"`
	Summary  map[Status]int `json:"summary" yaml:"summary"`
}

// Width is the number of compared versions.
func (r *Report) Width() int {
	return len(r.Versions)
}

// Row is one aligned entry, in pre-order.
type Row struct {
	Path   string        `json:"path" yaml:"path"`
	Name   string        `json:"name" yaml:"name"`
	Depth  int           `json:"depth" yaml:"depth"`
	Kind   filetree.Kind `json:"kind" yaml:"kind"`
	Status Status        `json:"status" yaml:"status"`
	// Elements has one slot per version, nil where the entry is absent.
	Elements []*filetree.Element `json:"elements" yaml:"elements"`
	// Comparisons has one slot per version, nil for the reference version,
	// for absent slots and when no text diff was made.
	Comparisons []*Comparison `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
	// Reference is the index of the version the comparisons are made
	// against, -1 when there are none.
	Reference int `json:"reference" yaml:"reference"`
}

// Present returns the number of versions holding the entry.
func (r *Row) Present() int {
	n := 0
	for _, e := range r.Elements {
		if e != nil {
			n++
		}
	}
	return n
}

// Comparison is the text diff of one version against the reference.
type Comparison struct {
	Diffs []textdiff.Diff `json:"diffs,omitempty" yaml:"diffs,omitempty"`
	// Delta is the compact encoding of Diffs against the reference text.
	Delta    string `json:"delta,omitempty" yaml:"delta,omitempty"`
	Distance int    `json:"distance" yaml:"distance"`
	// JSON is a structural diff when both sides are JSON documents.
	JSON string `json:"json,omitempty" yaml:"json,omitempty"`
	// Identical is set when the version matches the reference.
	Identical bool `json:"identical,omitempty" yaml:"identical,omitempty"`
	// Skipped says why no text diff was made.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
