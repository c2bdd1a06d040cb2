// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/meta"
	"github.com/tfctl/treecmp/internal/output"
	"github.com/tfctl/treecmp/internal/textdiff"
)

// diffCommandAction is the action handler for the "diff" subcommand. It diffs
// two text files and prints the edit script in the chosen format.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	config.SetNamespace("diff")

	args := cmd.Args().Slice()
	texts := make([]string, 2)
	for i, name := range args {
		b, err := readInput(cmd, name)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return fmt.Errorf("%s is not UTF-8 text", name)
		}
		texts[i] = string(b)
	}

	engine := newEngine(cmd)
	diffs := engine.Main(texts[0], texts[1])
	if cmd.Bool("semantic") {
		diffs = textdiff.CleanupSemantic(diffs)
	}
	if cmd.Bool("efficiency") {
		diffs = engine.CleanupEfficiency(diffs)
	}
	log.Debugf("diff: %d fragments, distance %d", len(diffs), textdiff.Levenshtein(diffs))

	w := writer(cmd)
	return writeDiff(w, diffs, cmd.String("format"), resolveColor(cmd, w))
}

// writeDiff prints diffs in one of the --format encodings.
func writeDiff(w io.Writer, diffs []textdiff.Diff, format string, colored bool) error {
	var err error
	switch format {
	case "ops":
		for _, d := range diffs {
			if _, err = fmt.Fprintln(w, d); err != nil {
				return err
			}
		}
	case "delta":
		_, err = fmt.Fprintln(w, textdiff.ToDelta(diffs))
	case "distance":
		_, err = fmt.Fprintln(w, textdiff.Levenshtein(diffs))
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(diffs)
	default:
		text := output.RenderInline(diffs, colored)
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err = io.WriteString(w, text)
	}
	return err
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action/validator handlers.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	ns, cfg := "diff", meta.Config.Source
	return &cli.Command{
		Name:      "diff",
		Usage:     "diff two text files",
		UsageText: "treecmp diff FILE1 FILE2 [options]",
		ArgsUsage: "FILE1 FILE2",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored pretty output, the default on a terminal",
				Sources: cli.EnvVars("TREECMP_COLOR"),
			},
			&cli.BoolFlag{
				Name:  "efficiency",
				Usage: "merge small edits whose cost exceeds --editcost",
			},
			NameSpacedValueChainFlagFromConfigFile(&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"F"},
				Usage:   "pretty, ops, delta, distance or json",
				Value:   "pretty",
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			}, ns, cfg),
			&cli.BoolFlag{
				Name:  "semantic",
				Usage: "shift edits to word and line boundaries",
				Value: true,
			},
		}, NewEngineFlags(ns, cfg)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("tldr") {
				return ctx, nil
			}
			if cmd.NArg() != 2 {
				return ctx, fmt.Errorf("diff needs exactly two files, got %d", cmd.NArg())
			}
			if cmd.Args().Get(0) == "-" && cmd.Args().Get(1) == "-" {
				return ctx, fmt.Errorf("only one file can be read from stdin")
			}
			return ctx, nil
		},
		Action: diffCommandAction,
	}
}
