// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/textdiff"
)

// contextLines is how many unchanged lines are kept on each side of an edit.
const contextLines = 2

var (
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950")).Underline(true)
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")).Strikethrough(true)
)

// WriteInline writes the text diff of every compared version of the given
// rows. Long unchanged stretches are elided.
func WriteInline(w io.Writer, rep *differ.Report, indexes []int, colored bool) error {
	for _, i := range indexes {
		row := rep.Rows[i]
		if row.Reference < 0 {
			continue
		}
		for v, c := range row.Comparisons {
			if c == nil || c.Identical || c.Skipped != "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "\n--- %s  %s -> %s  ~%d\n",
				row.Path, rep.Versions[row.Reference], rep.Versions[v], c.Distance); err != nil {
				return err
			}

			if _, err := io.WriteString(w, inlineBody(c, colored)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderInline renders a diff in word-diff style. Without color deletions
// are wrapped as [-text-] and insertions as {+text+}.
func RenderInline(diffs []textdiff.Diff, colored bool) string {
	var sb strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case textdiff.Equal:
			sb.WriteString(collapse(d.Text, i > 0, i < len(diffs)-1))
		case textdiff.Insert:
			sb.WriteString(mark(d.Text, "{+", "+}", insertStyle, colored))
		case textdiff.Delete:
			sb.WriteString(mark(d.Text, "[-", "-]", deleteStyle, colored))
		}
	}
	return sb.String()
}

// mark wraps an edit. Styles are applied line by line so that lipgloss does
// not pad the lines of a multi-line edit to a common width.
func mark(text, open, close string, style lipgloss.Style, colored bool) string {
	if !colored {
		return open + text + close
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// collapse elides the middle of an unchanged stretch. after is set when an
// edit precedes the stretch, before when one follows it. The kept lines at
// each end include the partial line touching the edit.
func collapse(text string, after, before bool) string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	head, tail := 0, 0
	if after {
		head = contextLines + 1
	}
	if before {
		tail = contextLines + 1
	}
	if head+tail >= len(lines) {
		return text
	}

	skipped := len(lines) - head - tail
	return strings.Join(lines[:head], "") +
		fmt.Sprintf("... %d unchanged lines ...\n", skipped) +
		strings.Join(lines[len(lines)-tail:], "")
}

// inlineBody is the structural diff of a comparison when there is one, else
// its rendered text diff. It always ends in a newline.
func inlineBody(c *differ.Comparison, colored bool) string {
	body := c.JSON
	if body == "" {
		body = RenderInline(c.Diffs, colored)
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body
}
