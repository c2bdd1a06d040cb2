// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/meta"
	"github.com/tfctl/treecmp/internal/textdiff"
)

// patchCommandAction is the action handler for the "patch" subcommand. It
// decodes a delta against the source file and prints the patched text.
func patchCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	if ShortCircuitTLDR(ctx, cmd, "patch") {
		return nil
	}

	source, err := readInput(cmd, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	delta := cmd.String("delta")
	if !cmd.IsSet("delta") {
		b, err := readInput(cmd, deltaSource(cmd))
		if err != nil {
			return err
		}
		// Insertions escape their newlines, so trailing ones come from the
		// file.
		delta = strings.TrimRight(string(b), "\r\n")
	}

	diffs, err := textdiff.FromDelta(string(source), delta)
	if err != nil {
		return fmt.Errorf("cannot apply delta to %s: %w", cmd.Args().Get(0), err)
	}
	log.Debugf("patch: %d fragments", len(diffs))

	_, err = io.WriteString(writer(cmd), textdiff.Text2(diffs))
	return err
}

// deltaSource names the delta file, stdin when none is given.
func deltaSource(cmd *cli.Command) string {
	if name := cmd.Args().Get(1); name != "" {
		return name
	}
	return "-"
}

// patchCommandBuilder constructs the cli.Command for "patch", wiring metadata,
// flags, and action/validator handlers.
func patchCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "apply a delta to a file",
		UsageText: "treecmp patch FILE [DELTA_FILE] [options]\ntreecmp patch FILE --delta DELTA",
		ArgsUsage: "FILE [DELTA_FILE]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			&cli.StringFlag{
				Name:    "delta",
				Aliases: []string{"d"},
				Usage:   "delta given inline instead of in a file",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("tldr") {
				return ctx, nil
			}
			if cmd.IsSet("delta") {
				if cmd.NArg() != 1 {
					return ctx, fmt.Errorf("patch needs 1 argument with --delta, got %d", cmd.NArg())
				}
				return ctx, nil
			}
			if cmd.NArg() < 1 || cmd.NArg() > 2 {
				return ctx, fmt.Errorf("patch needs 1 or 2 arguments, got %d", cmd.NArg())
			}
			if cmd.Args().Get(0) == "-" && deltaSource(cmd) == "-" {
				return ctx, fmt.Errorf("only one input can be read from stdin")
			}
			return ctx, nil
		},
		Action: patchCommandAction,
	}
}
