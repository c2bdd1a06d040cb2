// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanupMerge reorders and merges like edit sections and factors common
// text out of adjacent delete/insert pairs. Single edits surrounded by
// equalities are slid sideways when that removes an equality. Zero length
// fragments are dropped.
func CleanupMerge(diffs []Diff) []Diff {
	diffs = slices.DeleteFunc(slices.Clone(diffs), func(d Diff) bool { return d.Text == "" })
	if len(diffs) == 0 {
		return diffs
	}

	// A trailing empty equality flushes the last run of edits.
	diffs = append(diffs, Diff{Type: Equal})

	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert []rune
	for pointer < len(diffs) {
		switch diffs[pointer].Type {
		case Insert:
			countInsert++
			textInsert = append(textInsert, []rune(diffs[pointer].Text)...)
			pointer++
		case Delete:
			countDelete++
			textDelete = append(textDelete, []rune(diffs[pointer].Text)...)
			pointer++
		case Equal:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					if n := commonPrefix(textInsert, textDelete); n != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Type == Equal {
							diffs[x-1].Text += string(textInsert[:n])
						} else {
							diffs = slices.Insert(diffs, 0, Diff{Type: Equal, Text: string(textInsert[:n])})
							pointer++
						}
						textInsert = textInsert[n:]
						textDelete = textDelete[n:]
					}
					if n := commonSuffix(textInsert, textDelete); n != 0 {
						diffs[pointer].Text = string(textInsert[len(textInsert)-n:]) + diffs[pointer].Text
						textInsert = textInsert[:len(textInsert)-n]
						textDelete = textDelete[:len(textDelete)-n]
					}
				}

				var merged []Diff
				if len(textDelete) != 0 {
					merged = append(merged, Diff{Type: Delete, Text: string(textDelete)})
				}
				if len(textInsert) != 0 {
					merged = append(merged, Diff{Type: Insert, Text: string(textInsert)})
				}
				start := pointer - countDelete - countInsert
				diffs = slices.Replace(diffs, start, pointer, merged...)
				pointer = start + len(merged) + 1
			} else if pointer != 0 && diffs[pointer-1].Type == Equal {
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = slices.Delete(diffs, pointer, pointer+1)
			} else {
				pointer++
			}
			countDelete, countInsert = 0, 0
			textDelete, textInsert = nil, nil
		}
	}
	if diffs[len(diffs)-1].Text == "" {
		diffs = diffs[:len(diffs)-1]
	}

	// Second pass: slide single edits over an adjacent equality,
	// e.g. A<ins>BA</ins>C becomes <ins>AB</ins>AC.
	changes := false
	for pointer = 1; pointer < len(diffs)-1; pointer++ {
		prev, this, next := diffs[pointer-1], diffs[pointer], diffs[pointer+1]
		if prev.Type != Equal || next.Type != Equal {
			continue
		}
		switch {
		case strings.HasSuffix(this.Text, prev.Text):
			diffs[pointer].Text = prev.Text + this.Text[:len(this.Text)-len(prev.Text)]
			diffs[pointer+1].Text = prev.Text + next.Text
			diffs = slices.Delete(diffs, pointer-1, pointer)
			changes = true
		case strings.HasPrefix(this.Text, next.Text):
			diffs[pointer-1].Text += next.Text
			diffs[pointer].Text = this.Text[len(next.Text):] + next.Text
			diffs = slices.Delete(diffs, pointer+1, pointer+2)
			changes = true
		}
	}
	if changes {
		return CleanupMerge(diffs)
	}
	return diffs
}

// maxSemanticPasses bounds the passes CleanupSemantic repeats after joining
// neighbouring edits.
const maxSemanticPasses = 8

// CleanupSemantic removes equalities that are too short to be meaningful
// next to the edits around them, then aligns edit boundaries to word and
// line breaks and extracts overlaps between adjacent deletions and
// insertions. No two neighbouring fragments of the result share a type.
func CleanupSemantic(diffs []Diff) []Diff {
	if len(diffs) == 0 {
		return diffs
	}
	for range maxSemanticPasses {
		var joined bool
		diffs, joined = coalesce(semanticPass(diffs))
		if !joined {
			break
		}
	}
	return diffs
}

// coalesce joins neighbouring fragments of the same type and drops empty
// ones, without sliding anything. It reports whether a join happened.
func coalesce(diffs []Diff) ([]Diff, bool) {
	joined := false
	out := make([]Diff, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Type == d.Type {
			out[n-1].Text += d.Text
			joined = true
			continue
		}
		out = append(out, d)
	}
	return out, joined
}

// semanticPass is one round of CleanupSemantic. Dropping an emptied
// equality while sliding can leave two edits of one type side by side.
func semanticPass(diffs []Diff) []Diff {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = slices.Clone(diffs)

	changes := false
	var equalities []int
	var lastEquality string
	hasLast := false
	// Edit lengths before (1) and after (2) the last equality.
	ins1, del1, ins2, del2 := 0, 0, 0, 0
	for pointer := 0; pointer < len(diffs); pointer++ {
		d := diffs[pointer]
		if d.Type == Equal {
			equalities = append(equalities, pointer)
			ins1, del1 = ins2, del2
			ins2, del2 = 0, 0
			lastEquality, hasLast = d.Text, true
			continue
		}

		if d.Type == Insert {
			ins2 += runeLen(d.Text)
		} else {
			del2 += runeLen(d.Text)
		}

		n := runeLen(lastEquality)
		if hasLast && n <= max(ins1, del1) && n <= max(ins2, del2) {
			// Turn the equality into a delete and insert pair.
			at := equalities[len(equalities)-1]
			diffs[at] = Diff{Type: Delete, Text: lastEquality}
			diffs = slices.Insert(diffs, at+1, Diff{Type: Insert, Text: lastEquality})

			// Drop it and the equality before it, which needs a second look.
			equalities = equalities[:len(equalities)-1]
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1]
			}
			if len(equalities) > 0 {
				pointer = equalities[len(equalities)-1]
			} else {
				pointer = -1
			}

			ins1, del1, ins2, del2 = 0, 0, 0, 0
			lastEquality, hasLast = "", false
			changes = true
		}
	}

	if changes {
		diffs = CleanupMerge(diffs)
	}
	diffs = CleanupSemanticLossless(diffs)

	// Extract overlaps between a deletion and the insertion after it when the
	// overlap is at least half as long as either edit:
	//   <del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>
	//   <del>xxxabc</del><ins>defxxx</ins> -> <ins>def</ins>xxx<del>abc</del>
	for pointer := 1; pointer < len(diffs); pointer++ {
		if diffs[pointer-1].Type != Delete || diffs[pointer].Type != Insert {
			continue
		}
		deletion := []rune(diffs[pointer-1].Text)
		insertion := []rune(diffs[pointer].Text)
		overlap1 := commonOverlap(deletion, insertion)
		overlap2 := commonOverlap(insertion, deletion)
		halfDel, halfIns := float64(len(deletion))/2, float64(len(insertion))/2

		if overlap1 >= overlap2 {
			if float64(overlap1) >= halfDel || float64(overlap1) >= halfIns {
				diffs = slices.Insert(diffs, pointer, Diff{Type: Equal, Text: string(insertion[:overlap1])})
				diffs[pointer-1].Text = string(deletion[:len(deletion)-overlap1])
				diffs[pointer+1].Text = string(insertion[overlap1:])
				pointer++
			}
		} else if float64(overlap2) >= halfDel || float64(overlap2) >= halfIns {
			diffs = slices.Insert(diffs, pointer, Diff{Type: Equal, Text: string(deletion[:overlap2])})
			diffs[pointer-1] = Diff{Type: Insert, Text: string(insertion[:len(insertion)-overlap2])}
			diffs[pointer+1] = Diff{Type: Delete, Text: string(deletion[overlap2:])}
			pointer++
		}
		pointer++
	}
	return diffs
}

var (
	blankLineEnd   = regexp.MustCompile(`\n\r?\n$`)
	blankLineStart = regexp.MustCompile(`^\r?\n\r?\n`)
)

// semanticScore rates how well the boundary between one and two falls on a
// logical break: 6 for an edge of the text, 5 for a blank line, 4 for a line
// break, 3 for the end of a sentence, 2 for whitespace, 1 for other non
// alphanumerics and 0 inside a word.
func semanticScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return 6
	}

	char1, char2 := one[len(one)-1], two[0]
	nonAlnum1 := !unicode.IsLetter(char1) && !unicode.IsDigit(char1)
	nonAlnum2 := !unicode.IsLetter(char2) && !unicode.IsDigit(char2)
	space1 := nonAlnum1 && unicode.IsSpace(char1)
	space2 := nonAlnum2 && unicode.IsSpace(char2)
	lineBreak1 := space1 && unicode.IsControl(char1)
	lineBreak2 := space2 && unicode.IsControl(char2)
	blank1 := lineBreak1 && blankLineEnd.MatchString(string(one))
	blank2 := lineBreak2 && blankLineStart.MatchString(string(two))

	switch {
	case blank1 || blank2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlnum1 && !space1 && space2:
		return 3
	case space1 || space2:
		return 2
	case nonAlnum1 || nonAlnum2:
		return 1
	}
	return 0
}

// CleanupSemanticLossless slides single edits surrounded by equalities so
// their boundaries land on the best scoring logical break, e.g.
// "The c<ins>at c</ins>ame." becomes "The <ins>cat </ins>came.".
func CleanupSemanticLossless(diffs []Diff) []Diff {
	diffs = slices.Clone(diffs)
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Type != Equal || diffs[pointer+1].Type != Equal {
			continue
		}
		equality1 := []rune(diffs[pointer-1].Text)
		edit := []rune(diffs[pointer].Text)
		equality2 := []rune(diffs[pointer+1].Text)

		// Shift the edit as far left as possible.
		if n := commonSuffix(equality1, edit); n > 0 {
			common := slices.Clone(edit[len(edit)-n:])
			equality1 = equality1[:len(equality1)-n]
			edit = append(slices.Clone(common), edit[:len(edit)-n]...)
			equality2 = append(common, equality2...)
		}

		// Step right one rune at a time looking for the best fit. Ties go
		// to the later position, favouring trailing over leading whitespace.
		best1, bestEdit, best2 := equality1, edit, equality2
		bestScore := semanticScore(equality1, edit) + semanticScore(edit, equality2)
		for len(edit) > 0 && len(equality2) > 0 && edit[0] == equality2[0] {
			equality1 = append(slices.Clone(equality1), edit[0])
			edit = append(slices.Clone(edit[1:]), equality2[0])
			equality2 = equality2[1:]
			if score := semanticScore(equality1, edit) + semanticScore(edit, equality2); score >= bestScore {
				bestScore = score
				best1, bestEdit, best2 = equality1, edit, equality2
			}
		}

		if diffs[pointer-1].Text == string(best1) {
			continue
		}
		if len(best1) != 0 {
			diffs[pointer-1].Text = string(best1)
		} else {
			diffs = slices.Delete(diffs, pointer-1, pointer)
			pointer--
		}
		diffs[pointer].Text = string(bestEdit)
		if len(best2) != 0 {
			diffs[pointer+1].Text = string(best2)
		} else {
			diffs = slices.Delete(diffs, pointer+1, pointer+2)
			pointer--
		}
	}
	return diffs
}

// CleanupEfficiency folds short equalities between edits into the edits when
// keeping them would cost more than the EditCost of the extra operations.
func (e *Engine) CleanupEfficiency(diffs []Diff) []Diff {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = slices.Clone(diffs)
	cost := e.opts.EditCost

	changes := false
	var equalities []int
	var lastEquality string
	hasLast := false
	// Whether there is an insertion or deletion before (pre) and after
	// (post) the last equality.
	preIns, preDel, postIns, postDel := false, false, false, false
	for pointer := 0; pointer < len(diffs); pointer++ {
		d := diffs[pointer]
		if d.Type == Equal {
			if runeLen(d.Text) < cost && (postIns || postDel) {
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastEquality, hasLast = d.Text, true
			} else {
				// Not a candidate and can never become one.
				equalities = equalities[:0]
				lastEquality, hasLast = "", false
			}
			postIns, postDel = false, false
			continue
		}

		if d.Type == Delete {
			postDel = true
		} else {
			postIns = true
		}

		// Split the equality when it is surrounded by all four edit kinds,
		// or by three of them and shorter than half the cost:
		//   <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
		//   <ins>A</ins>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<ins>C</ins>
		//   <ins>A</del>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<del>C</del>
		if !hasLast {
			continue
		}
		around := btoi(preIns) + btoi(preDel) + btoi(postIns) + btoi(postDel)
		if around != 4 && (runeLen(lastEquality) >= cost/2 || around != 3) {
			continue
		}

		at := equalities[len(equalities)-1]
		diffs[at] = Diff{Type: Delete, Text: lastEquality}
		diffs = slices.Insert(diffs, at+1, Diff{Type: Insert, Text: lastEquality})
		equalities = equalities[:len(equalities)-1]
		lastEquality, hasLast = "", false

		if preIns && preDel {
			// Nothing changed that could affect an earlier equality.
			postIns, postDel = true, true
			equalities = equalities[:0]
		} else {
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1]
			}
			if len(equalities) > 0 {
				pointer = equalities[len(equalities)-1]
			} else {
				pointer = -1
			}
			postIns, postDel = false, false
		}
		changes = true
	}

	if changes {
		return CleanupMerge(diffs)
	}
	return diffs
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
