// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import "strings"

// Text1 rebuilds the source text: every fragment except insertions.
func Text1(diffs []Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		if d.Type != Insert {
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Text2 rebuilds the destination text: every fragment except deletions.
func Text2(diffs []Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		if d.Type != Delete {
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Levenshtein returns the number of inserted, deleted or substituted runes.
// Within a run of edits between two equalities a deletion and an insertion
// pair up as substitutions, so the run costs the longer of the two.
func Levenshtein(diffs []Diff) int {
	distance, insertions, deletions := 0, 0, 0
	for _, d := range diffs {
		switch d.Type {
		case Insert:
			insertions += runeLen(d.Text)
		case Delete:
			deletions += runeLen(d.Text)
		case Equal:
			distance += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return distance + max(insertions, deletions)
}

// XIndex maps a rune offset in the source text to the equivalent offset in
// the destination text. An offset inside a deletion maps to the start of
// that deletion.
func XIndex(diffs []Diff, loc int) int {
	chars1, chars2 := 0, 0
	last1, last2 := 0, 0
	var hit *Diff
	for i := range diffs {
		d := &diffs[i]
		n := runeLen(d.Text)
		if d.Type != Insert {
			chars1 += n
		}
		if d.Type != Delete {
			chars2 += n
		}
		if chars1 > loc {
			hit = d
			break
		}
		last1, last2 = chars1, chars2
	}
	if hit != nil && hit.Type == Delete {
		return last2
	}
	return last2 + (loc - last1)
}

// PrettyText renders a diff inline with word-diff style markers, deletions
// as [-text-] and insertions as {+text+}.
func PrettyText(diffs []Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case Insert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		case Delete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case Equal:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
