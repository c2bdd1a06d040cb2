// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/treecmp/internal/attrs"
	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/filetree"
)

// IndexKey is the row attribute tying a dataset row back to its report row.
const IndexKey = "index"

// datasetRow is the shape of one row of the dataset the attrs, filters and
// sorts work against. The attr tags feed DumpSchema.
type datasetRow struct {
	Index    int              `json:"index" attr:"attr,index"`
	Path     string           `json:"path" attr:"attr,path"`
	Name     string           `json:"name" attr:"attr,name"`
	Depth    int              `json:"depth" attr:"attr,depth"`
	Tree     string           `json:"tree" attr:"attr,tree"`
	Kind     string           `json:"kind" attr:"attr,kind"`
	Status   string           `json:"status" attr:"attr,status"`
	Present  int              `json:"present" attr:"attr,present"`
	Distance int              `json:"distance" attr:"attr,distance"`
	Labels   []string         `json:"labels" attr:"attr,labels"`
	Versions []datasetVersion `json:"versions" attr:"attr,versions"`
}

type datasetVersion struct {
	Label     string `json:"label" attr:"attr,label"`
	Present   bool   `json:"present" attr:"attr,present"`
	Kind      string `json:"kind,omitempty" attr:"attr,kind"`
	Size      int64  `json:"size,omitempty" attr:"attr,size"`
	ModTime   string `json:"modTime,omitempty" attr:"attr,modTime"`
	Checksum  string `json:"checksum,omitempty" attr:"attr,checksum"`
	Summary   string `json:"summary" attr:"attr,summary"`
	Distance  int    `json:"distance" attr:"attr,distance"`
	Identical bool   `json:"identical,omitempty" attr:"attr,identical"`
	Skipped   string `json:"skipped,omitempty" attr:"attr,skipped"`
	Delta     string `json:"delta,omitempty" attr:"attr,delta"`
}

// Dataset flattens a report into the JSON array SliceDiceSpit works on, one
// object per report row.
func Dataset(rep *differ.Report) (bytes.Buffer, error) {
	rows := make([]datasetRow, 0, len(rep.Rows))
	for i := range rep.Rows {
		rows = append(rows, newDatasetRow(rep, i))
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(rows); err != nil {
		return buf, fmt.Errorf("output: encoding dataset: %w", err)
	}
	return buf, nil
}

func newDatasetRow(rep *differ.Report, i int) datasetRow {
	r := rep.Rows[i]
	row := datasetRow{
		Index:    i,
		Path:     r.Path,
		Name:     r.Name,
		Depth:    r.Depth,
		Tree:     treeCell(r),
		Kind:     r.Kind.String(),
		Status:   string(r.Status),
		Present:  r.Present(),
		Labels:   rep.Versions,
		Versions: make([]datasetVersion, len(rep.Versions)),
	}

	for v, label := range rep.Versions {
		dv := datasetVersion{Label: label}
		var e *filetree.Element
		if v < len(r.Elements) {
			e = r.Elements[v]
		}
		var c *differ.Comparison
		if v < len(r.Comparisons) {
			c = r.Comparisons[v]
		}

		if e != nil {
			dv.Present = true
			dv.Kind = e.Kind.String()
			dv.Size = e.Size
			dv.Checksum = e.Checksum
			if !e.ModTime.IsZero() {
				dv.ModTime = e.ModTime.UTC().Format(time.RFC3339)
			}
		}
		if c != nil {
			dv.Distance = c.Distance
			dv.Identical = c.Identical
			dv.Skipped = c.Skipped
			dv.Delta = c.Delta
			row.Distance = max(row.Distance, c.Distance)
		}
		dv.Summary = summaryCell(e, c)
		row.Versions[v] = dv
	}

	return row
}

// treeCell indents the name by depth. Directories get a trailing slash.
func treeCell(r differ.Row) string {
	name := r.Name
	if r.Depth > 0 && r.Kind == filetree.Directory {
		name += "/"
	}
	return strings.Repeat("  ", r.Depth) + name
}

// summaryCell is the compact per version cell of the default text table:
// "-" when absent, "dir" for directories and size plus short checksum for
// files, suffixed with the edit distance from the reference.
func summaryCell(e *filetree.Element, c *differ.Comparison) string {
	if e == nil {
		return "-"
	}
	if e.IsDir() {
		return "dir"
	}

	sum := e.Checksum
	if len(sum) > 8 {
		sum = sum[:8]
	}
	cell := humanize.IBytes(uint64(max(e.Size, 0))) + " " + sum
	if c != nil && c.Distance > 0 {
		cell += " ~" + strconv.Itoa(c.Distance)
	}
	return cell
}

// DefaultAttrs is the text table shown when no --attrs are given: the tree,
// the status and one summary column per version titled by its label.
func DefaultAttrs(labels []string) attrs.AttrList {
	list := attrs.AttrList{
		{Key: "tree", OutputKey: "tree", Include: true},
		{Key: "status", OutputKey: "status", Include: true},
	}
	for i, label := range labels {
		list = append(list, attrs.Attr{
			Key:       fmt.Sprintf("versions.%d.summary", i),
			OutputKey: label,
			Include:   true,
		})
	}
	return list
}

// ensureIndex appends a hidden index attr so rendered rows can be traced
// back to the report.
func ensureIndex(list attrs.AttrList) attrs.AttrList {
	for _, a := range list {
		if a.Key == IndexKey {
			return list
		}
	}
	return append(list, attrs.Attr{Key: IndexKey, OutputKey: "_" + IndexKey})
}

// rowIndex recovers the report row index of a filtered row.
func rowIndex(list attrs.AttrList, row map[string]interface{}) (int, bool) {
	for _, a := range list {
		if a.Key != IndexKey {
			continue
		}
		switch v := row[a.OutputKey].(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		}
	}
	return 0, false
}
