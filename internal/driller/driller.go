// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key optionally followed by [n],
// [*] or [].
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Driller navigates JSON using a dot path. Arrays are indexed with key[n] or
// a bare numeric segment, key[*] applies the rest of the path to every
// element and a single element array is unwrapped when no index is given.
func Driller(jsonData string, path string) gjson.Result {
	if path == "" {
		return gjson.Result{}
	}
	return drill(gjson.Parse(jsonData), strings.Split(path, "."))
}

func drill(current gjson.Result, parts []string) gjson.Result {
	for i, p := range parts {
		// versions.1.size
		if n, err := strconv.Atoi(p); err == nil && current.IsArray() {
			arr := current.Array()
			if n < 0 || n >= len(arr) {
				return gjson.Result{}
			}
			current = arr[n]
			continue
		}

		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(matches[1])
		if !val.IsArray() {
			if matches[2] != "" {
				return gjson.Result{}
			}
			current = val
			continue
		}

		arr := val.Array()
		switch idx := matches[3]; idx {
		case "":
			if len(arr) == 1 {
				val = arr[0]
			}
			// Otherwise the whole list is the value.
		case "*":
			return collect(arr, parts[i+1:])
		default:
			n, err := strconv.Atoi(idx)
			if err != nil || n >= len(arr) {
				return gjson.Result{}
			}
			val = arr[n]
		}
		current = val
	}
	return current
}

// collect drills every element with the remaining parts and gathers the
// results in an array. Missing values become null.
func collect(arr []gjson.Result, rest []string) gjson.Result {
	raws := make([]string, 0, len(arr))
	for _, elem := range arr {
		v := elem
		if len(rest) > 0 {
			v = drill(elem, rest)
		}
		if !v.Exists() {
			raws = append(raws, "null")
			continue
		}
		raws = append(raws, v.Raw)
	}
	return gjson.Parse("[" + strings.Join(raws, ",") + "]")
}
