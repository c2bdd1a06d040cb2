// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"strings"
	"time"
)

// lineModeThreshold is the rune length both texts must exceed before Main
// switches to a line level pre-pass.
const lineModeThreshold = 100

// Caps on distinct lines per text. Lines past the cap are folded into one
// final line so the encoding stays within the rune range.
const (
	maxLines1 = 40000
	maxLines2 = 65535
)

// Surrogates are not valid runes and would not survive a string round trip,
// so line codes skip over them.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func lineCode(i int) rune {
	if i >= surrogateMin {
		i += surrogateLen
	}
	return rune(i)
}

func lineIndex(r rune) int {
	i := int(r)
	if i >= surrogateMin+surrogateLen {
		i -= surrogateLen
	}
	return i
}

// LinesToRunes encodes each distinct line of both texts as a single rune.
// A line keeps its trailing newline. The returned table maps codes back to
// lines; index 0 is reserved and holds the empty string, so codes start at 1.
func LinesToRunes(text1, text2 string) (runes1, runes2 []rune, lines []string) {
	lines = []string{""}
	hash := map[string]int{}
	runes1 = linesToRunesMunge(text1, &lines, hash, maxLines1)
	runes2 = linesToRunesMunge(text2, &lines, hash, maxLines2)
	return runes1, runes2, lines
}

func linesToRunesMunge(text string, lines *[]string, hash map[string]int, maxLines int) []rune {
	var out []rune
	start := 0
	for start < len(text) {
		end := strings.IndexByte(text[start:], '\n')
		if end == -1 {
			end = len(text)
		} else {
			end += start + 1
		}
		line := text[start:end]

		if i, ok := hash[line]; ok {
			out = append(out, lineCode(i))
			start = end
			continue
		}
		if len(*lines) == maxLines {
			// Out of codes; the rest of the text becomes one line.
			line = text[start:]
			end = len(text)
		}
		*lines = append(*lines, line)
		hash[line] = len(*lines) - 1
		out = append(out, lineCode(len(*lines)-1))
		start = end
	}
	return out
}

// RunesToLines expands diffs over line codes back into the original text.
func RunesToLines(diffs []Diff, lines []string) []Diff {
	out := make([]Diff, 0, len(diffs))
	for _, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(lines[lineIndex(r)])
		}
		out = append(out, Diff{Type: d.Type, Text: sb.String()})
	}
	return out
}

// lineMode diffs two long texts line by line, then rediffs every replaced
// block rune by rune. Cheaper than a full diff but not always minimal.
func (e *Engine) lineMode(text1, text2 []rune, deadline time.Time) []Diff {
	r1, r2, lines := LinesToRunes(string(text1), string(text2))

	diffs := e.diff(r1, r2, false, deadline)
	diffs = RunesToLines(diffs, lines)
	// Drop incidental matches such as blank lines.
	diffs = CleanupSemantic(diffs)

	// A trailing empty equality flushes the last pending block.
	diffs = append(diffs, Diff{Type: Equal})

	out := make([]Diff, 0, len(diffs))
	var pending []Diff
	var deleted, inserted strings.Builder
	countDelete, countInsert := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case Insert:
			countInsert++
			inserted.WriteString(d.Text)
			pending = append(pending, d)
		case Delete:
			countDelete++
			deleted.WriteString(d.Text)
			pending = append(pending, d)
		case Equal:
			if countDelete >= 1 && countInsert >= 1 {
				out = append(out, e.diff([]rune(deleted.String()), []rune(inserted.String()), false, deadline)...)
			} else {
				out = append(out, pending...)
			}
			out = append(out, d)
			pending = pending[:0]
			deleted.Reset()
			inserted.Reset()
			countDelete, countInsert = 0, 0
		}
	}
	return out[:len(out)-1]
}
