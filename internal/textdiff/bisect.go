// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import "time"

// middleSnake walks the edit graph from both ends at once and returns the
// point where the forward and reverse frontiers first overlap. ok is false
// when the frontiers never meet (no common runes) or the deadline passed.
func middleSnake(text1, text2 []rune, deadline time.Time) (x, y int, ok bool) {
	len1, len2 := len(text1), len(text2)
	maxD := (len1 + len2 + 1) / 2
	offset := maxD
	size := 2*maxD + 2

	v1 := make([]int, size)
	v2 := make([]int, size)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[offset+1] = 0
	v2[offset+1] = 0

	delta := len1 - len2
	// With an odd delta the forward path detects the collision, otherwise the
	// reverse path does.
	front := delta%2 != 0

	// Diagonals that ran off the edge of the grid are skipped on later passes.
	k1start, k1end, k2start, k2end := 0, 0, 0, 0

	for d := 0; d < maxD; d++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1off := offset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1off-1] < v1[k1off+1]) {
				x1 = v1[k1off+1]
			} else {
				x1 = v1[k1off-1] + 1
			}
			y1 := x1 - k1
			for x1 < len1 && y1 < len2 && text1[x1] == text2[y1] {
				x1++
				y1++
			}
			v1[k1off] = x1

			switch {
			case x1 > len1:
				k1end += 2
			case y1 > len2:
				k1start += 2
			case front:
				k2off := offset + delta - k1
				if k2off >= 0 && k2off < size && v2[k2off] != -1 {
					// Mirror x2 onto the top-left coordinate system.
					if x1 >= len1-v2[k2off] {
						return x1, y1, true
					}
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2off := offset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2off-1] < v2[k2off+1]) {
				x2 = v2[k2off+1]
			} else {
				x2 = v2[k2off-1] + 1
			}
			y2 := x2 - k2
			for x2 < len1 && y2 < len2 && text1[len1-x2-1] == text2[len2-y2-1] {
				x2++
				y2++
			}
			v2[k2off] = x2

			switch {
			case x2 > len1:
				k2end += 2
			case y2 > len2:
				k2start += 2
			case !front:
				k1off := offset + delta - k2
				if k1off >= 0 && k1off < size && v1[k1off] != -1 {
					x1 := v1[k1off]
					y1 := offset + x1 - k1off
					if x1 >= len1-x2 {
						return x1, y1, true
					}
				}
			}
		}
	}
	return 0, 0, false
}
