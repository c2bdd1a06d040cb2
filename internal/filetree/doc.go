// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filetree builds tree.Tree values from a file system. Every node
// holds an Element describing a directory, a text file or a binary file.
// The root directory is always named "." so that trees built from
// differently named directories line up when aligned.
package filetree
