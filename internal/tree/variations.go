// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"fmt"
	"iter"
	"strings"
)

// Variations is a fixed-width tuple holding, for each compared version, either
// a value or nothing. The width is set at construction and never changes.
type Variations[T any] struct {
	values  []T
	present []bool
}

// NewVariations returns a Variations of width n with every slot absent.
func NewVariations[T any](n int) Variations[T] {
	return Variations[T]{
		values:  make([]T, n),
		present: make([]bool, n),
	}
}

// VariationsOf returns a Variations with one present slot per value.
func VariationsOf[T any](values ...T) Variations[T] {
	v := NewVariations[T](len(values))
	for i, val := range values {
		v.Set(i, val)
	}
	return v
}

// Width is the number of compared versions.
func (v Variations[T]) Width() int {
	return len(v.values)
}

// Set fills slot i. It panics if i is outside the width, like a slice would.
func (v Variations[T]) Set(i int, value T) {
	v.values[i] = value
	v.present[i] = true
}

// Clear marks slot i absent.
func (v Variations[T]) Clear(i int) {
	var zero T
	v.values[i] = zero
	v.present[i] = false
}

// Get returns the value of slot i and whether it is present.
func (v Variations[T]) Get(i int) (T, bool) {
	return v.values[i], v.present[i]
}

// Has reports whether slot i is present.
func (v Variations[T]) Has(i int) bool {
	return v.present[i]
}

// Present returns the number of non-absent slots.
func (v Variations[T]) Present() int {
	count := 0
	for _, p := range v.present {
		if p {
			count++
		}
	}
	return count
}

// First returns the first non-absent slot. This is the ordering key used when
// Variations are themselves sorted.
func (v Variations[T]) First() (T, bool) {
	for i, p := range v.present {
		if p {
			return v.values[i], true
		}
	}
	var zero T
	return zero, false
}

// Values yields (slot index, value) for every present slot in order.
func (v Variations[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, p := range v.present {
			if p && !yield(i, v.values[i]) {
				return
			}
		}
	}
}

// IsConstant reports whether every slot is in the same state: all absent, or
// all present and pairwise equal under eq. A value missing from some versions
// is therefore never constant, unless the width is 1. Width 0 is constant.
func (v Variations[T]) IsConstant(eq func(a, b T) bool) bool {
	if len(v.values) == 0 {
		return true
	}
	ref, refOK := v.values[0], v.present[0]
	for i := 1; i < len(v.values); i++ {
		if v.present[i] != refOK {
			return false
		}
		if refOK && !eq(ref, v.values[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether both tuples have the same width and the same state in
// every slot, present values compared with eq.
func (v Variations[T]) Equal(other Variations[T], eq func(a, b T) bool) bool {
	if len(v.values) != len(other.values) {
		return false
	}
	for i := range v.values {
		if v.present[i] != other.present[i] {
			return false
		}
		if v.present[i] && !eq(v.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// String renders e.g. "Variations[A1 - A1]" with "-" for absent slots.
func (v Variations[T]) String() string {
	parts := make([]string, len(v.values))
	for i := range v.values {
		if v.present[i] {
			parts[i] = fmt.Sprintf("%v", v.values[i])
		} else {
			parts[i] = "-"
		}
	}
	return "Variations[" + strings.Join(parts, " ") + "]"
}

// Constant is IsConstant for comparable types.
func Constant[T comparable](v Variations[T]) bool {
	return v.IsConstant(func(a, b T) bool { return a == b })
}

// CompareVariations orders two tuples by their first present slot under cmp.
// A tuple with no present slot sorts first.
func CompareVariations[T any](a, b Variations[T], cmp Comparator[T]) int {
	av, aok := a.First()
	bv, bok := b.First()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return cmp(av, bv)
}
