// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/treecmp/internal/attrs"
	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/filetree"
	"github.com/tfctl/treecmp/internal/textdiff"
)

var stamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func dir(name string) *filetree.Element {
	return &filetree.Element{Name: name, Path: name, Kind: filetree.Directory, ModTime: stamp}
}

func text(name, sum string, size int64) *filetree.Element {
	return &filetree.Element{Name: name, Path: name, Kind: filetree.Text, Size: size, Checksum: sum, ModTime: stamp}
}

// sampleReport is a two way comparison with one row per status but partial.
func sampleReport() *differ.Report {
	same := text("same.txt", "5555555555555555", 4)
	return &differ.Report{
		Versions: []string{"v1", "v2"},
		Rows: []differ.Row{
			{
				Path: ".", Name: ".", Kind: filetree.Directory, Status: differ.StatusChanged,
				Elements: []*filetree.Element{dir("."), dir(".")}, Reference: -1,
			},
			{
				Path: "a.txt", Name: "a.txt", Depth: 1, Kind: filetree.Text, Status: differ.StatusChanged,
				Elements: []*filetree.Element{text("a.txt", "0123456789abcdef", 12), text("a.txt", "fedcba9876543210", 18)},
				Comparisons: []*differ.Comparison{nil, {
					Diffs: []textdiff.Diff{
						{Type: textdiff.Equal, Text: "hello "},
						{Type: textdiff.Insert, Text: "there "},
						{Type: textdiff.Equal, Text: "world\n"},
					},
					Delta:    "=6\t+there \t=6",
					Distance: 6,
				}},
				Reference: 0,
			},
			{
				Path: "gone.txt", Name: "gone.txt", Depth: 1, Kind: filetree.Text, Status: differ.StatusRemoved,
				Elements: []*filetree.Element{text("gone.txt", "9999999999999999", 2048), nil}, Reference: -1,
			},
			{
				Path: "new.txt", Name: "new.txt", Depth: 1, Kind: filetree.Text, Status: differ.StatusAdded,
				Elements: []*filetree.Element{nil, text("new.txt", "abababababababab", 1)}, Reference: -1,
			},
			{
				Path: "same.txt", Name: "same.txt", Depth: 1, Kind: filetree.Text, Status: differ.StatusSame,
				Elements: []*filetree.Element{same, same}, Reference: -1,
			},
		},
		Summary: map[differ.Status]int{
			differ.StatusChanged: 2,
			differ.StatusRemoved: 1,
			differ.StatusAdded:   1,
			differ.StatusSame:    1,
		},
	}
}

// spit runs SliceDiceSpit behind a parsed command line.
func spit(t *testing.T, rep *differ.Report, list attrs.AttrList, meta map[string]any, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.StringFlag{Name: "title"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "local"},
			&cli.BoolFlag{Name: "inline"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Metadata: meta,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return SliceDiceSpit(rep, list, cmd, &buf)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return buf.String()
}

func TestDataset(t *testing.T) {
	raw, err := Dataset(sampleReport())
	require.NoError(t, err)

	rows := gjson.Parse(raw.String()).Array()
	require.Len(t, rows, 5)

	root := rows[0]
	assert.Equal(t, ".", root.Get("tree").String())
	assert.Equal(t, "dir", root.Get("kind").String())
	assert.Equal(t, "dir", root.Get("versions.0.summary").String())
	assert.Equal(t, int64(2), root.Get("present").Int())

	a := rows[1]
	assert.Equal(t, int64(1), a.Get("index").Int())
	assert.Equal(t, "  a.txt", a.Get("tree").String())
	assert.Equal(t, "changed", a.Get("status").String())
	assert.Equal(t, int64(6), a.Get("distance").Int())
	assert.Equal(t, []interface{}{"v1", "v2"}, a.Get("labels").Value())
	assert.Equal(t, "12 B 01234567", a.Get("versions.0.summary").String())
	assert.Equal(t, "18 B fedcba98 ~6", a.Get("versions.1.summary").String())
	assert.Equal(t, "=6\t+there \t=6", a.Get("versions.1.delta").String())
	assert.Equal(t, "2026-01-02T03:04:05Z", a.Get("versions.0.modTime").String())

	gone := rows[2]
	assert.Equal(t, "2.0 KiB 99999999", gone.Get("versions.0.summary").String())
	assert.Equal(t, "-", gone.Get("versions.1.summary").String())
	assert.False(t, gone.Get("versions.1.present").Bool())
	assert.False(t, gone.Get("versions.1.checksum").Exists())
}

func TestDefaultAttrs(t *testing.T) {
	got := DefaultAttrs([]string{"old", "new"})
	require.Len(t, got, 4)
	assert.Equal(t, "tree", got[0].Key)
	assert.Equal(t, "status", got[1].Key)
	assert.Equal(t, attrs.Attr{Key: "versions.1.summary", OutputKey: "new", Include: true}, got[3])

	withIndex := ensureIndex(got)
	require.Len(t, withIndex, 5)
	assert.False(t, withIndex[4].Include)
	assert.Len(t, ensureIndex(withIndex), 5)
}

func TestSliceDiceSpitText(t *testing.T) {
	rep := sampleReport()
	out := ansi.Strip(spit(t, rep, DefaultAttrs(rep.Versions),
		map[string]any{"footer": SummaryLine(rep)}, "--titles"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7, out)
	assert.Regexp(t, `^tree\s+status\s+v1\s+v2`, lines[0])
	assert.Regexp(t, `^  a\.txt\s+changed\s+12 B 01234567\s+18 B fedcba98 ~6`, lines[2])
	assert.Regexp(t, `^  new\.txt\s+added\s+-\s+1 B abababab`, lines[4])
	assert.Equal(t, "same 1  changed 2  added 1  removed 1", strings.TrimSpace(lines[6]))
	assert.NotContains(t, out, "_index")
}

func TestSliceDiceSpitInline(t *testing.T) {
	rep := sampleReport()
	out := spit(t, rep, DefaultAttrs(rep.Versions), nil, "--inline", "--filter", "status=changed")

	assert.Contains(t, out, "--- a.txt  v1 -> v2  ~6\n")
	assert.Contains(t, out, "hello {+there +}world\n")
	assert.NotContains(t, out, "gone.txt")
}

func TestSliceDiceSpitJSON(t *testing.T) {
	rep := sampleReport()
	out := spit(t, rep, DefaultAttrs(rep.Versions), nil, "--output", "json", "--filter", "status=changed")

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]interface{}{
		{"tree": ".", "status": "changed", "v1": "dir", "v2": "dir"},
		{"tree": "  a.txt", "status": "changed", "v1": "12 B 01234567", "v2": "18 B fedcba98 ~6"},
	}, got)
}

func TestSliceDiceSpitSort(t *testing.T) {
	rep := sampleReport()
	list := attrs.AttrList{}
	require.NoError(t, list.Set("name,status,versions.0.size:size"))
	out := spit(t, rep, list, nil, "--output", "json", "--sort", "status,-name")

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	var names []string
	for _, row := range got {
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"new.txt", "a.txt", ".", "gone.txt", "same.txt"}, names)
	assert.InDelta(t, 2048.0, got[3]["size"], 0)
}

func TestSliceDiceSpitYAML(t *testing.T) {
	rep := sampleReport()
	out := spit(t, rep, DefaultAttrs(rep.Versions), nil, "--output", "yaml", "--filter", "status=removed")

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "  gone.txt", got[0]["tree"])
	assert.Equal(t, "-", got[0]["v2"])
}

func TestSliceDiceSpitReport(t *testing.T) {
	rep := sampleReport()
	out := spit(t, rep, DefaultAttrs(rep.Versions), nil, "--output", "report", "--filter", "status=added")

	var got differ.Report
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"v1", "v2"}, got.Versions)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "new.txt", got.Rows[0].Path)
	assert.Nil(t, got.Rows[0].Elements[0])
	assert.Equal(t, filetree.Text, got.Rows[0].Elements[1].Kind)
	assert.Equal(t, map[differ.Status]int{differ.StatusAdded: 1}, got.Summary)
}

func TestSliceDiceSpitRaw(t *testing.T) {
	out := spit(t, sampleReport(), nil, nil, "--output", "raw", "--filter", "status=same")
	assert.Len(t, gjson.Parse(out).Array(), 5, "raw ignores filters")
}

func TestSliceDiceSpitLocal(t *testing.T) {
	rep := sampleReport()
	list := attrs.AttrList{}
	require.NoError(t, list.Set("path,versions.0.modTime:mtime"))
	out := spit(t, rep, list, nil, "--output", "json", "--local", "--filter", "path=a.txt")

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, stamp.In(time.Local).Format("2006-01-02T15:04:05MST"), got[0]["mtime"])
	assert.Equal(t, "a.txt", got[0]["path"])
}

func TestSliceDiceSpitHTML(t *testing.T) {
	rep := sampleReport()
	rep.Rows[1].Comparisons[1].Diffs = append(rep.Rows[1].Comparisons[1].Diffs,
		textdiff.Diff{Type: textdiff.Delete, Text: "<b>&"})
	out := spit(t, rep, DefaultAttrs(rep.Versions), nil, "--output", "html")

	assert.Contains(t, out, "<title>v1 vs v2</title>")
	assert.Contains(t, out, `<tr class="removed"><td class="tree">  gone.txt</td>`)
	assert.Contains(t, out, "<ins>there </ins>")
	assert.Contains(t, out, "<del>&lt;b&gt;&amp;</del>")
	assert.Contains(t, out, "same 1, changed 2, added 1, removed 1")

	titled := spit(t, rep, nil, nil, "--output", "html", "--title", "Release diff", "--filter", "status=same")
	assert.Contains(t, titled, "<h1>Release diff</h1>")
	assert.NotContains(t, titled, "<ins>")
}

func TestTableWriter(t *testing.T) {
	resultSet := []map[string]interface{}{
		{"name": "resource1", "hidden": "secret", "status": "added"},
	}
	list := attrs.AttrList{
		{OutputKey: "name", Include: true},
		{OutputKey: "hidden"},
		{Key: "status", OutputKey: "status", Include: true},
	}

	for _, color := range []bool{false, true} {
		var buf bytes.Buffer
		cmd := &cli.Command{
			Name:     "test",
			Flags:    []cli.Flag{&cli.BoolFlag{Name: "color"}, &cli.BoolFlag{Name: "titles"}},
			Metadata: map[string]any{"header": "HEADER"},
			Action: func(_ context.Context, cmd *cli.Command) error {
				TableWriter(resultSet, list, cmd, &buf)
				TableWriter(nil, list, cmd, &buf)
				return nil
			},
		}
		args := []string{"test", "--titles"}
		if color {
			args = append(args, "--color")
		}
		require.NoError(t, cmd.Run(context.Background(), args))

		out := ansi.Strip(buf.String())
		assert.Contains(t, out, "HEADER")
		assert.Contains(t, out, "resource1")
		assert.Contains(t, out, "added")
		assert.NotContains(t, out, "secret")
		assert.Equal(t, 1, strings.Count(out, "HEADER"), "empty result sets render nothing")
	}
}

func TestSelect(t *testing.T) {
	rep := sampleReport()
	sub := Select(rep, []int{3, 1})
	require.Len(t, sub.Rows, 2)
	assert.Equal(t, "new.txt", sub.Rows[0].Path)
	assert.Equal(t, "a.txt", sub.Rows[1].Path)
	assert.Equal(t, map[differ.Status]int{differ.StatusAdded: 1, differ.StatusChanged: 1}, sub.Summary)
	assert.Equal(t, rep.Versions, sub.Versions)
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "same 1  changed 2  added 1  removed 1", SummaryLine(sampleReport()))
	assert.Equal(t, "", SummaryLine(&differ.Report{}))
}
