// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"errors"
	"fmt"

	"github.com/tfctl/treecmp/internal/tree"
)

// ErrTooFewTrees is returned by RequireAtLeast when a caller insists on more
// trees than were supplied.
var ErrTooFewTrees = errors.New("align: not enough trees to compare")

// Aligner merges N trees sorted by one comparator into a single alignment
// tree of tree.Variations.
type Aligner[T any] struct {
	cmp tree.Comparator[T]
}

// New returns an Aligner using cmp for both sorting and matching.
func New[T any](cmp tree.Comparator[T]) (*Aligner[T], error) {
	if cmp == nil {
		return nil, tree.ErrNilComparator
	}
	return &Aligner[T]{cmp: cmp}, nil
}

// Align sorts every root with the aligner's comparator and returns the
// alignment root, whose content holds the M root contents and whose children
// are the aligned lines of the next level, recursively.
//
// A nil slice yields nil. An empty, non-nil slice yields a root with a
// zero-width Variations and no children.
func (a *Aligner[T]) Align(roots []*tree.Node[T]) *tree.Node[tree.Variations[T]] {
	if roots == nil {
		return nil
	}

	// SortAll cannot fail here, New already rejected a nil comparator.
	_ = tree.SortAll(a.cmp, roots...)

	content := tree.NewVariations[T](len(roots))
	columns := make([][]*tree.Node[T], len(roots))
	for i, r := range roots {
		if r == nil {
			continue
		}
		content.Set(i, r.Content)
		columns[i] = r.Children
	}

	return &tree.Node[tree.Variations[T]]{
		Content:  content,
		Children: a.alignChildren(columns),
	}
}

// Result is an alignment of identified trees: the per-column identifiers and
// the alignment root.
type Result[R any, T any] struct {
	IDs  tree.Variations[R]
	Root *tree.Node[tree.Variations[T]]
}

// Width is the number of aligned trees.
func (r *Result[R, T]) Width() int {
	return r.IDs.Width()
}

// AlignTrees aligns identified trees. A nil slice yields nil.
func AlignTrees[R any, T any](a *Aligner[T], trees []tree.Tree[R, T]) *Result[R, T] {
	if trees == nil {
		return nil
	}
	ids := tree.NewVariations[R](len(trees))
	roots := make([]*tree.Node[T], len(trees))
	for i, t := range trees {
		ids.Set(i, t.ID)
		roots[i] = t.Root
	}
	return &Result[R, T]{IDs: ids, Root: a.Align(roots)}
}

// RequireAtLeast is the optional strict precondition layered over Align for
// callers that need a real comparison, typically n = 2.
func RequireAtLeast[T any](n int, roots []*tree.Node[T]) error {
	if len(roots) < n {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewTrees, len(roots), n)
	}
	return nil
}
