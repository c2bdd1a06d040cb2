// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects report rows and file tree entries.
//
// Filters are specified as key-operator-target expressions and combined with
// a configurable delimiter (default: comma, override with
// TREECMP_FILTER_DELIM).
//
// Operators include:
//
//   - = : exact match, numeric when the value is a number
//   - ~ : case insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains a substring, or an element for lists
//   - / : regular expression match
//
// Every operator can be negated with a leading '!', e.g. "status!=same". A
// key without an operator keeps rows where the key exists.
//
// Examples:
//
//   - "status=changed" : rows that differ in content
//   - "path^internal/" : rows below internal/
//   - "versions.1.distance>10" : rows whose second version is far from the
//     reference
//   - "_name!/^\.git$" : do not read .git directories at all
//
// Filter keys are matched against the OutputKey of attributes (see the attrs
// package) and otherwise used as row paths (see the driller package). Keys
// prefixed with underscore (_) are tree filters on "name" or "path", applied
// while the trees are built (see TreeFilters).
package filters
