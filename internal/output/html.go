// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/textdiff"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"isInsert": func(d textdiff.Diff) bool { return d.Type == textdiff.Insert },
	"isDelete": func(d textdiff.Diff) bool { return d.Type == textdiff.Delete },
}).Parse(reportTemplate))

type htmlPage struct {
	Title    string
	Versions []string
	Summary  []htmlCount
	Rows     []htmlRow
}

type htmlCount struct {
	Status differ.Status
	Count  int
}

type htmlRow struct {
	Path   string
	Tree   string
	Status differ.Status
	Cells  []string
	Diffs  []htmlDiff
}

type htmlDiff struct {
	Reference string
	Label     string
	Distance  int
	JSON      string
	Fragments []textdiff.Diff
}

// WriteHTML renders a report as a standalone html page with a row per entry
// followed by the text diffs.
func WriteHTML(w io.Writer, rep *differ.Report, title string) error {
	if title == "" {
		title = strings.Join(rep.Versions, " vs ")
	}

	page := htmlPage{Title: title, Versions: rep.Versions}
	for _, s := range differ.Statuses {
		if n := rep.Summary[s]; n > 0 {
			page.Summary = append(page.Summary, htmlCount{Status: s, Count: n})
		}
	}

	for i := range rep.Rows {
		r := rep.Rows[i]
		hr := htmlRow{
			Path:   r.Path,
			Tree:   treeCell(r),
			Status: r.Status,
			Cells:  make([]string, len(rep.Versions)),
		}
		for v, dv := range newDatasetRow(rep, i).Versions {
			hr.Cells[v] = dv.Summary
		}
		for v, c := range r.Comparisons {
			if c == nil || c.Identical || c.Skipped != "" || r.Reference < 0 {
				continue
			}
			hr.Diffs = append(hr.Diffs, htmlDiff{
				Reference: rep.Versions[r.Reference],
				Label:     rep.Versions[v],
				Distance:  c.Distance,
				JSON:      c.JSON,
				Fragments: collapseAll(c.Diffs),
			})
		}
		page.Rows = append(page.Rows, hr)
	}

	if err := htmlTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("output: rendering html: %w", err)
	}
	return nil
}

// collapseAll elides long unchanged stretches the way RenderInline does.
func collapseAll(diffs []textdiff.Diff) []textdiff.Diff {
	out := make([]textdiff.Diff, len(diffs))
	for i, d := range diffs {
		out[i] = d
		if d.Type == textdiff.Equal {
			out[i].Text = collapse(d.Text, i > 0, i < len(diffs)-1)
		}
	}
	return out
}
