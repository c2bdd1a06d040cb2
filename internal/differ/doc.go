// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares versions of a directory tree. It builds one file
// tree per version, aligns them and produces a Report with one row per
// aligned entry. Text files that differ are diffed against the first version
// holding them, and JSON files also get a structural summary.
package differ
