// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// ErrEmptyDocument is returned by JSONDiff when either side is empty.
var ErrEmptyDocument = errors.New("differ: empty JSON document")

// JSONDiff compares two JSON objects structurally, leaving out the ignored
// top level keys. It returns "" when they are equivalent.
func JSONDiff(left, right []byte, ignore []string, coloring bool) (string, error) {
	if len(left) == 0 || len(right) == 0 {
		return "", ErrEmptyDocument
	}

	var ldoc, rdoc map[string]interface{}
	if err := json.Unmarshal(left, &ldoc); err != nil {
		return "", fmt.Errorf("failed to unmarshal left document: %w", err)
	}
	if err := json.Unmarshal(right, &rdoc); err != nil {
		return "", fmt.Errorf("failed to unmarshal right document: %w", err)
	}
	for _, key := range ignore {
		if key != "" {
			delete(ldoc, key)
			delete(rdoc, key)
		}
	}

	delta := gojsondiff.New().CompareObjects(ldoc, rdoc)
	if !delta.Modified() {
		return "", nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}
	return formatter.NewAsciiFormatter(ldoc, config).Format(delta)
}
