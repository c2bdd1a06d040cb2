// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tree holds the ordered tree model shared by the alignment engine
// and its callers: owned nodes, identified trees, the fixed-width Variations
// tuple produced by alignment and the recursive node sorter.
//
// Nodes own their children and carry no parent pointer. Callers needing a
// path back to the root reconstruct it while walking.
package tree
