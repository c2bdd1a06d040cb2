// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"fmt"
	"strings"
)

// Node is a tree node owning its content and an ordered list of children. A
// leaf is simply a childless node.
type Node[T any] struct {
	Content  T
	Children []*Node[T]
}

// NewNode returns a node holding content with the given children.
func NewNode[T any](content T, children ...*Node[T]) *Node[T] {
	return &Node[T]{Content: content, Children: children}
}

// Leaves builds one childless node per content value, in order.
func Leaves[T any](contents ...T) []*Node[T] {
	nodes := make([]*Node[T], 0, len(contents))
	for _, c := range contents {
		nodes = append(nodes, NewNode(c))
	}
	return nodes
}

// AddChild appends child to the node's children and returns the node.
func (n *Node[T]) AddChild(child *Node[T]) *Node[T] {
	n.Children = append(n.Children, child)
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Len returns the number of nodes in the subtree rooted at n, n included.
func (n *Node[T]) Len() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += c.Len()
	}
	return count
}

// Walk visits the subtree in pre-order. fn receives each node and its depth
// (0 for n). Returning false from fn skips that node's children.
func (n *Node[T]) Walk(fn func(node *Node[T], depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node[T]) walk(fn func(node *Node[T], depth int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// String renders the content using fmt's %v verb.
func (n *Node[T]) String() string {
	return fmt.Sprintf("%v", n.Content)
}

// Tree is an identifier, such as a version label or root path, plus a root
// node.
type Tree[R any, T any] struct {
	ID   R
	Root *Node[T]
}

// String renders the tree as "id:" followed by an indented outline, two
// spaces per depth level. Handy when debugging.
func (t Tree[R, T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v:", t.ID)
	t.Root.Walk(func(node *Node[T], depth int) bool {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.String())
		return true
	})
	return sb.String()
}
