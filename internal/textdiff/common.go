// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import "slices"

// CommonPrefix returns the number of leading runes shared by both texts.
func CommonPrefix(text1, text2 string) int {
	return commonPrefix([]rune(text1), []rune(text2))
}

// CommonSuffix returns the number of trailing runes shared by both texts.
func CommonSuffix(text1, text2 string) int {
	return commonSuffix([]rune(text1), []rune(text2))
}

// CommonOverlap returns the length of the longest suffix of text1 that is
// also a prefix of text2.
func CommonOverlap(text1, text2 string) int {
	return commonOverlap([]rune(text1), []rune(text2))
}

func commonPrefix(text1, text2 []rune) int {
	n := min(len(text1), len(text2))
	for i := 0; i < n; i++ {
		if text1[i] != text2[i] {
			return i
		}
	}
	return n
}

func commonSuffix(text1, text2 []rune) int {
	l1, l2 := len(text1), len(text2)
	n := min(l1, l2)
	for i := 1; i <= n; i++ {
		if text1[l1-i] != text2[l2-i] {
			return i - 1
		}
	}
	return n
}

func commonOverlap(text1, text2 []rune) int {
	l1, l2 := len(text1), len(text2)
	if l1 == 0 || l2 == 0 {
		return 0
	}
	// Only the tail of text1 and the head of text2 can overlap.
	if l1 > l2 {
		text1 = text1[l1-l2:]
	} else if l1 < l2 {
		text2 = text2[:l1]
	}
	n := min(l1, l2)
	if slices.Equal(text1, text2) {
		return n
	}

	// Grow a candidate from a single rune, jumping ahead to wherever the
	// current tail next occurs in text2.
	best, length := 0, 1
	for {
		found := indexRunes(text2, text1[n-length:], 0)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || slices.Equal(text1[n-length:], text2[:length]) {
			best = length
			length++
		}
	}
}

// indexRunes returns the index of the first occurrence of needle in haystack
// at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		if from <= len(haystack) {
			return from
		}
		return -1
	}
	last := len(haystack) - len(needle)
	for i := max(from, 0); i <= last; i++ {
		if haystack[i] != needle[0] {
			continue
		}
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
