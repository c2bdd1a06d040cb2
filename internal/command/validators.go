// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/filetree"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects flag combinations that cannot work together.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("inline") && c.String("output") != "text" {
		return fmt.Errorf("--inline only applies to text output")
	}
	if c.Bool("browse") && c.String("output") != "text" {
		return fmt.Errorf("--browse only applies to text output")
	}
	if c.Bool("browse") && c.Bool("inline") {
		return fmt.Errorf("--browse and --inline cannot be used together")
	}
	return nil
}

var validOutputFlagValues = []string{"text", "json", "raw", "yaml", "report", "html"}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

var validFormatFlagValues = []string{"pretty", "ops", "delta", "distance", "json"}

func FormatValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(validFormatFlagValues, s) {
		return fmt.Errorf("must be one of %v", validFormatFlagValues)
	}
	return nil
}

func ChecksumValidator(value any) error {
	s, _ := value.(string)
	_, err := filetree.ParseAlgorithm(s)
	return err
}

func SizeValidator(value any) error {
	s, _ := value.(string)
	_, err := parseSize(s)
	return err
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if d, ok := value.(time.Duration); !ok || d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// parseSize reads sizes like "4MiB", "500k" or "0".
func parseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}
