// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/treecmp/internal/differ"
)

var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true)
	browseHelpStyle   = lipgloss.NewStyle().Faint(true)
)

// Browse lists the text diffs of the given rows and shows the one picked
// with ENTER in a scrollable view. It returns once the user quits.
func Browse(rep *differ.Report, indexes []int, colored bool) error {
	m := newBrowser(rep, indexes, colored)
	if len(m.items) == 0 {
		return nil
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// browseItem is one comparison, the row and the version compared against
// the row's reference.
type browseItem struct {
	row     int
	version int
}

type browser struct {
	rep     *differ.Report
	items   []browseItem
	cursor  int
	colored bool

	viewing bool
	view    viewport.Model
}

func newBrowser(rep *differ.Report, indexes []int, colored bool) browser {
	m := browser{rep: rep, colored: colored, view: viewport.New(80, 20)}
	for _, i := range indexes {
		row := rep.Rows[i]
		if row.Reference < 0 {
			continue
		}
		for v, c := range row.Comparisons {
			if c != nil && !c.Identical && c.Skipped == "" {
				m.items = append(m.items, browseItem{row: i, version: v})
			}
		}
	}
	return m
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-2, 1)
		return m, nil
	case tea.KeyMsg:
		if m.viewing {
			switch msg.String() {
			case "q", "esc", "backspace":
				m.viewing = false
				return m, nil
			}
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.items) > 0 {
				it := m.items[m.cursor]
				m.view.SetContent(inlineBody(m.rep.Rows[it.row].Comparisons[it.version], m.colored))
				m.view.GotoTop()
				m.viewing = true
			}
		}
	}
	return m, nil
}

func (m browser) View() string {
	if m.viewing {
		return m.title(m.items[m.cursor]) + "\n" + m.view.View() + "\n" +
			browseHelpStyle.Render("arrows: scroll, Q/ESCAPE: back")
	}

	var sb strings.Builder
	sb.WriteString("Select a diff:\n\n")
	for i, it := range m.items {
		line := "  " + m.title(it)
		if i == m.cursor {
			line = browseCursorStyle.Render("> " + m.title(it))
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + browseHelpStyle.Render("ENTER: view, Q/ESCAPE: quit") + "\n")
	return sb.String()
}

func (m browser) title(it browseItem) string {
	row := m.rep.Rows[it.row]
	c := row.Comparisons[it.version]
	return fmt.Sprintf("%s  %s -> %s  ~%d", row.Path, m.rep.Versions[row.Reference], m.rep.Versions[it.version], c.Distance)
}
