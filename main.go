// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/treecmp/internal/command"
	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set arguments and drops repeated flags so the
// last one given wins.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the list configured under
// <command>.<set>. Without an explicit @set the "defaults" set, if any, is
// inserted right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	insertIdx := idx
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			insertIdx = idx + i
			// Remove the @set argument.
			args = append(args[:insertIdx:insertIdx], args[insertIdx+1:]...)
			break
		}
	}

	entries, err := config.GetStringSlice(args[1]+"."+set, nil)
	if err != nil {
		log.Warnf("ignoring set %s: %v", set, err)
		return args
	}
	return injectConfigSet(args, entries, insertIdx)
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, which is how
// a command line overrides a flag coming from a set. A flag without "=" takes
// the following argument as its value unless that looks like a flag too.
// Positional arguments are kept in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return append([]string{}, args...)
	}

	type group struct {
		key   string
		items []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{items: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(a, "=")
		g := group{key: key, items: []string{a}}
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.items = append(g.items, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := make(map[string]int, len(groups))
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.key != "" && last[g.key] != i {
			continue
		}
		out = append(out, g.items...)
	}
	return out
}
