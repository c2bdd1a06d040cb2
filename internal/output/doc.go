// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns a comparison report into a flat dataset, then filters,
// transforms, sorts and renders it as a text table, json, yaml, the full
// report or an html page.
package output
