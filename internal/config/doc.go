// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for treecmp's user
// configuration. The configuration is a YAML document named by
// TREECMP_CFG_FILE or located in the user's configuration directory,
// typically:
//   - Linux: $XDG_CONFIG_HOME/treecmp.yaml or $HOME/.config/treecmp.yaml
//   - macOS: $HOME/Library/Application Support/treecmp.yaml
//   - Windows: %APPDATA%/treecmp.yaml
//
// Keys are dotted paths. With a namespace set, "compare.diff.timeout" is
// preferred over "diff.timeout".
package config
