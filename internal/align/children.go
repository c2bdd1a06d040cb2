// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"github.com/tfctl/treecmp/internal/tree"
)

// alignChildren merges one sorted sibling sequence per column into alignment
// lines. Each cursor is an index into its column, so a misclassified element
// is put back simply by decrementing that index.
func (a *Aligner[T]) alignChildren(columns [][]*tree.Node[T]) []*tree.Node[tree.Variations[T]] {
	cursors := make([]int, len(columns))

	var lines []*tree.Node[tree.Variations[T]]
	for remaining(columns, cursors) {
		lines = append(lines, a.nextLine(columns, cursors))
	}
	return lines
}

// nextLine builds one alignment line by scanning the columns left to right
// and keeping the smallest element seen so far. Every line consumes at least
// one element, so the caller's loop terminates.
func (a *Aligner[T]) nextLine(columns [][]*tree.Node[T], cursors []int) *tree.Node[tree.Variations[T]] {
	width := len(columns)
	content := tree.NewVariations[T](width)
	matched := make([]*tree.Node[T], width)

	take := func(i int, node *tree.Node[T]) {
		content.Set(i, node.Content)
		matched[i] = node
		cursors[i]++
	}

	var minimum *tree.Node[T]
	for i, column := range columns {
		if cursors[i] >= len(column) {
			continue
		}
		current := column[cursors[i]]

		if minimum == nil {
			minimum = current
			take(i, current)
			continue
		}

		delta := a.cmp(current.Content, minimum.Content)
		switch {
		case delta == 0:
			take(i, current)
		case delta < 0:
			// Everything already on this line sorts after current. Put those
			// elements back so the next line reconsiders them.
			for j := 0; j < i; j++ {
				if matched[j] != nil {
					content.Clear(j)
					matched[j] = nil
					cursors[j]--
				}
			}
			minimum = current
			take(i, current)
		default:
			// current belongs to a later line; leave its cursor in place.
		}
	}

	next := make([][]*tree.Node[T], width)
	for i, m := range matched {
		if m != nil {
			next[i] = m.Children
		}
	}

	return &tree.Node[tree.Variations[T]]{
		Content:  content,
		Children: a.alignChildren(next),
	}
}

// remaining reports whether any column still has elements past its cursor.
func remaining[T any](columns [][]*tree.Node[T], cursors []int) bool {
	for i, column := range columns {
		if cursors[i] < len(column) {
			return true
		}
	}
	return false
}
