// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/treecmp/internal/attrs"
	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/meta"
	"github.com/tfctl/treecmp/internal/output"
)

// BuildAttrs constructs an AttrList from the defaults, then --attrs, and
// applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults attrs.AttrList) (attrs.AttrList, error) {
	al := append(attrs.AttrList{}, defaults...)
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// DumpSchemaIfRequested writes the row attributes to w when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, w io.Writer) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(w)
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR runs the tldr page for the subcommand when --tldr is set.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "treecmp", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// resolveColor turns --color on when it was not given and stdout is a
// terminal. It reports the resulting setting.
func resolveColor(cmd *cli.Command, w io.Writer) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if err := cmd.Set("color", "true"); err != nil {
		log.Debugf("color auto-detect: %v", err)
		return false
	}
	return true
}

// excludes merges the configured exclude list with --exclude.
func excludes(cmd *cli.Command) []string {
	patterns, err := config.GetStringSlice("exclude", nil)
	if err != nil {
		log.Warnf("ignoring exclude config: %v", err)
		patterns = nil
	}
	patterns = append(patterns, cmd.StringSlice("exclude")...)

	out := patterns[:0]
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writer returns the command's writer, stdout by default.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cli.Command, name string) ([]byte, error) {
	if name == "-" {
		r := io.Reader(os.Stdin)
		if root := cmd.Root(); root != nil && root.Reader != nil {
			r = root.Reader
		}
		return io.ReadAll(r)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return b, nil
}
