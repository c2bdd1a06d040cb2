// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestGenerate(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "treecmp.yaml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o600))
	t.Setenv("TREECMP_CFG_FILE", cfg)

	docs := t.TempDir()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, generate(docs, "1.2.3", now))

	for _, id := range []string{"compare", "diff", "patch", "completion"} {
		assert.FileExists(t, filepath.Join(docs, "commands", id+".md"))
		assert.FileExists(t, filepath.Join(docs, "tldr", "treecmp-"+id+".md"))
	}

	page, err := os.ReadFile(filepath.Join(docs, "commands", "compare.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# treecmp compare")
	assert.Contains(t, string(page), "`--checksum, -k CHECKSUM`")
	assert.Contains(t, string(page), "`md5`")
	assert.Contains(t, string(page), "treecmp compare release-1.2::old release-1.3::new")
	assert.Contains(t, string(page), "treecmp 1.2.3, October 1, 2026")

	tldr, err := os.ReadFile(filepath.Join(docs, "tldr", "treecmp-patch.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "> apply a delta to a file.")
	assert.Contains(t, string(tldr), "`treecmp patch old.txt change.delta > new.txt`")
}

func TestFlagsOf(t *testing.T) {
	cmd := &cli.Command{
		Name: "x",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output format", Value: "text"},
			&cli.BoolFlag{Name: "titles", Usage: "show titles"},
			&cli.BoolFlag{Name: "secret", Hidden: true},
		},
	}

	assert.Equal(t, []Flag{
		{ID: "output", Syntax: "--output, -o OUTPUT", Description: "output format", Default: "text"},
		{ID: "titles", Syntax: "--titles", Description: "show titles"},
	}, flagsOf(cmd))
}
