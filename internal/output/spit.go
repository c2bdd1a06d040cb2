// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"sync"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/treecmp/internal/attrs"
	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/filters"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	// We note that the int and bool cases are unlikely to be reached due to JSON
	// parsing behavior.
	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Sizes, depths and distances are all whole numbers.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a report according to command flags and attribute specifications.
func SliceDiceSpit(rep *differ.Report,
	attrList attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) error {

	// Default to stdout.
	if w == nil {
		w = os.Stdout
	}

	raw, err := Dataset(rep)
	if err != nil {
		return err
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, err = w.Write(raw.Bytes())
		return err
	}

	attrList = ensureIndex(attrList)
	fullDataset := gjson.Parse(raw.String())

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a smaller
	// dataset.
	filter := cmd.String("filter")
	filteredDataset := filters.FilterDataset(fullDataset, attrList, filter)
	log.Debugf("SliceDiceSpit: %d of %d rows kept", len(filteredDataset), len(rep.Rows))

	// Only the modTime values parse as timestamps, everything else passes
	// through the time transform untouched.
	if cmd.Bool("local") {
		for a := range attrList {
			attrList[a].TransformSpec += "t"
		}
	}

	// Transform each value in each row.
	for _, row := range filteredDataset {
		for _, attr := range attrList {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	spec := cmd.String("sort")
	SortDataset(filteredDataset, spec)

	indexes := make([]int, 0, len(filteredDataset))
	for _, row := range filteredDataset {
		if i, ok := rowIndex(attrList, row); ok && i >= 0 && i < len(rep.Rows) {
			indexes = append(indexes, i)
		}
	}

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(project(filteredDataset, attrList))
		if err != nil {
			return fmt.Errorf("output: json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(project(filteredDataset, attrList))
		if err != nil {
			return fmt.Errorf("output: yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "report":
		jsonOutput, err := json.MarshalIndent(Select(rep, indexes), "", "  ")
		if err != nil {
			return fmt.Errorf("output: report marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "html":
		return WriteHTML(w, Select(rep, indexes), cmd.String("title"))
	default:
		if cmd.Bool("browse") {
			return Browse(rep, indexes, cmd.Bool("color"))
		}
		TableWriter(filteredDataset, attrList, cmd, w)
		if cmd.Bool("inline") {
			return WriteInline(w, rep, indexes, cmd.Bool("color"))
		}
	}

	return nil
}

// project keeps only the included attrs of each row.
func project(resultSet []map[string]interface{}, attrList attrs.AttrList) []map[string]interface{} {
	included := attrList.Included()
	out := make([]map[string]interface{}, 0, len(resultSet))
	for _, row := range resultSet {
		m := make(map[string]interface{}, len(included))
		for _, attr := range included {
			m[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, m)
	}
	return out
}

// Select returns a report holding the given rows, in the given order, with
// the summary recounted over them.
func Select(rep *differ.Report, indexes []int) *differ.Report {
	sub := &differ.Report{
		Versions: rep.Versions,
		Rows:     make([]differ.Row, 0, len(indexes)),
		Summary:  make(map[differ.Status]int),
	}
	for _, i := range indexes {
		row := rep.Rows[i]
		sub.Rows = append(sub.Rows, row)
		sub.Summary[row.Status]++
	}
	return sub
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(resultSet) == 0 {
		return
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present.
	colored := cmd.Bool("color")
	if colored {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	// We build the table rows from the result set and remember which column
	// holds the status.
	statusCol := -1
	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			if attr.Key == "status" {
				statusCol = len(row)
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	// We render the header if present.
	if cmd.Metadata["header"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["header"].(string)))
	}

	// We configure the table with padding and styles.
	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if colored && col == statusCol && row >= 0 && row < len(rows) {
				style = style.Foreground(statusColor(rows[row][col]))
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	// We add column headers if titles are enabled.
	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	// We render the footer if present.
	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// SummaryLine counts rows per status, e.g. "same 4  changed 2  added 1".
// Statuses with no rows are left out.
func SummaryLine(rep *differ.Report) string {
	line := ""
	for _, s := range differ.Statuses {
		n := rep.Summary[s]
		if n == 0 {
			continue
		}
		if line != "" {
			line += "  "
		}
		line += fmt.Sprintf("%s %d", s, n)
	}
	return line
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}

// statusColors holds the light and dark defaults per status.
var statusColors = map[string][2]string{
	string(differ.StatusSame):    {"#808080", "#9e9e9e"},
	string(differ.StatusChanged): {"#b08800", "#f6be00"},
	string(differ.StatusAdded):   {"#1a7f37", "#3fb950"},
	string(differ.StatusRemoved): {"#cf222e", "#f85149"},
	string(differ.StatusPartial): {"#8250df", "#bc8cff"},
}

// statusColor returns the color for a status cell, configurable as
// colors.<status>.
func statusColor(status string) color.Color {
	def, ok := statusColors[status]
	if !ok {
		return resolveColor("colors.even", "#333333", "#ffffff")
	}
	return resolveColor("colors."+status, def[0], def[1])
}

// darkBackground asks the terminal once per process.
var darkBackground = sync.OnceValue(func() bool {
	return lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
})

// resolveColor uses the explicit color if found in the config and leaves it
// up to the user to choose appropriate colors for their theme. If not found,
// it picks a reasonable default based on terminal background.
func resolveColor(key string, light string, dark string) color.Color {
	colorCfg, err := config.GetString(key)
	if err == nil {
		return lipgloss.Color(colorCfg)
	}

	if darkBackground() {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}
