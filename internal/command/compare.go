// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/filetree"
	"github.com/tfctl/treecmp/internal/filters"
	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/meta"
	"github.com/tfctl/treecmp/internal/output"
	"github.com/tfctl/treecmp/internal/util"
)

// compareCommandAction is the action handler for the "compare" subcommand. It
// builds a file tree per root, aligns them, diffs the text files and emits
// one row per aligned entry.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	// Bail out early if we're just dumping tldr or the schema.
	if ShortCircuitTLDR(ctx, cmd, "compare") {
		return nil
	}
	w := writer(cmd)
	if DumpSchemaIfRequested(cmd, w) {
		return nil
	}

	config.SetNamespace("compare")

	roots, err := util.ParseRootDirs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	// Tree filters from --filter are applied while the trees are built,
	// together with the exclude patterns.
	treeFilters, err := filters.TreeFilters(cmd.String("filter"))
	if err != nil {
		return err
	}
	if ex := excludes(cmd); len(ex) > 0 {
		f, err := filetree.Exclude(ex...)
		if err != nil {
			return err
		}
		treeFilters = append(treeFilters, f)
	}

	colored := resolveColor(cmd, w)
	// Structural json diffs carry ANSI colors only where the text table does.
	opts, err := differOptions(cmd, treeFilters, colored && cmd.String("output") == "text")
	if err != nil {
		return err
	}

	sources := make([]differ.Source, 0, len(roots))
	for _, r := range roots {
		sources = append(sources, sourceOf(r))
	}

	rep, err := differ.New(opts...).Compare(ctx, sources)
	if err != nil {
		return err
	}
	log.Debugf("compared %d versions: %d rows", rep.Width(), len(rep.Rows))

	al, err := BuildAttrs(cmd, output.DefaultAttrs(rep.Versions))
	if err != nil {
		return err
	}

	if cmd.Bool("titles") {
		cmd.Metadata["footer"] = output.SummaryLine(rep)
	}

	return output.SliceDiceSpit(rep, al, cmd, w)
}

// sourceOf opens a root. A file root is compared through its directory.
func sourceOf(r util.RootSpec) differ.Source {
	if r.IsDir {
		return differ.Source{Label: r.Label, FS: os.DirFS(r.Dir), Root: "."}
	}
	return differ.Source{Label: r.Label, FS: os.DirFS(filepath.Dir(r.Dir)), Root: filepath.Base(r.Dir)}
}

// compareCommandBuilder constructs the cli.Command for "compare", wiring
// metadata, flags, and action/validator handlers.
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	ns, cfg := "compare", meta.Config.Source
	return &cli.Command{
		Name:      "compare",
		Usage:     "compare two or more directory trees",
		UsageText: "treecmp compare DIR[::label] DIR[::label]... [options]",
		ArgsUsage: "DIR[::label]...",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(append([]cli.Flag{
			schemaFlag,
			tldrFlag,
		}, NewCompareFlags(ns, cfg)...), NewEngineFlags(ns, cfg)...), NewGlobalFlags(ns, cfg)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("schema") || cmd.Bool("tldr") {
				return ctx, nil
			}
			if cmd.NArg() < 2 {
				return ctx, fmt.Errorf("compare needs at least two roots, got %d", cmd.NArg())
			}
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: compareCommandAction,
	}
}
