// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filetree

import "strings"

// Compare orders directories before files, then by name. Two elements that
// compare equal are the same entry in different versions, which is what the
// aligner matches on.
func Compare(a, b Element) int {
	switch {
	case a.IsDir() && !b.IsDir():
		return -1
	case !a.IsDir() && b.IsDir():
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}
