// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package textdiff computes character level differences between two texts.
//
// The engine follows Myers' bisection (meeting forward and backward
// furthest-reaching frontiers in the middle of the edit graph) with the usual
// speedups: common prefix and suffix stripping, containment shortcuts, a
// half-match heuristic and an optional line mode for long texts. The raw edit
// script is then normalised by CleanupMerge and can be made more readable
// with CleanupSemantic or cheaper to apply with CleanupEfficiency.
//
// All offsets and lengths, including those written in deltas, are counted
// in runes, not UTF-16 code units. A character outside the Basic
// Multilingual Plane counts once, so deltas over such text do not match
// ones produced by UTF-16 based implementations.
//
// A diff satisfies the round trip property: Text1 of the diff is the first
// text and Text2 is the second.
package textdiff
