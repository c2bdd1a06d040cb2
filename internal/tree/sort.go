// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"cmp"
	"errors"
	"slices"
)

// ErrNilComparator is returned when sorting or aligning is attempted without a
// comparator.
var ErrNilComparator = errors.New("tree: comparator cannot be nil")

// Comparator is a total order over node contents. It returns a negative
// number when a sorts before b, zero when they are equivalent and a positive
// number otherwise.
type Comparator[T any] func(a, b T) int

// Ordered returns the natural comparator for an ordered type.
func Ordered[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Sort recursively reorders the children of every node beneath root using
// cmp. The sort is stable so equivalent siblings keep their relative order.
// Childless nodes are left untouched.
func Sort[T any](root *Node[T], cmp Comparator[T]) error {
	if cmp == nil {
		return ErrNilComparator
	}
	sortNode(root, cmp)
	return nil
}

// SortAll applies Sort with the same comparator to every root. Alignment
// tie-breaking is only defined when all inputs were sorted this way.
func SortAll[T any](cmp Comparator[T], roots ...*Node[T]) error {
	if cmp == nil {
		return ErrNilComparator
	}
	for _, r := range roots {
		sortNode(r, cmp)
	}
	return nil
}

func sortNode[T any](node *Node[T], cmp Comparator[T]) {
	if node == nil || len(node.Children) == 0 {
		return
	}
	slices.SortStableFunc(node.Children, func(a, b *Node[T]) int {
		return cmp(a.Content, b.Content)
	})
	for _, child := range node.Children {
		sortNode(child, cmp)
	}
}
