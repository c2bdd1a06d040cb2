// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/treecmp/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}

// Namespace is the subcommand name, used to prefer namespaced config keys.
// It is empty when the first argument is a flag.
func (m Meta) Namespace() string {
	if len(m.Args) > 1 && len(m.Args[1]) > 0 && m.Args[1][0] != '-' {
		return m.Args[1]
	}
	return ""
}
