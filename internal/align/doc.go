// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package align implements N-way structural alignment of sorted trees.
//
// Given M roots sorted by the same comparator, the aligner emits one alignment
// tree whose node contents are tree.Variations of width M. At each level the
// sibling sequences are merged like an M-way sorted equi-join: every element
// lands on exactly one line, two elements share a line only when the
// comparator deems them equal, and lines come out in non-decreasing order.
// The children of the elements on a line are aligned recursively to build
// that line's subtree.
package align
