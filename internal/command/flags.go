// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/cacheutil"
	"github.com/tfctl/treecmp/internal/config"
	"github.com/tfctl/treecmp/internal/differ"
	"github.com/tfctl/treecmp/internal/filetree"
	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/textdiff"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the row attributes",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the flags shaping report output. params[0] is the
// command namespace and params[1] the config file, when there is one.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output, the default on a terminal",
			Sources: cli.EnvVars("TREECMP_COLOR"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		NameSpacedValueChainFlagFromConfigFile(&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: cli.EnvVars("TREECMP_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}, params...),
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles and a status summary with text output",
			Value:   false,
		},
	}

	return
}

// NewEngineFlags returns the flags tuning the text diff engine. Their config
// keys live under "diff." in every namespace.
func NewEngineFlags(params ...string) []cli.Flag {
	var ns, path string
	if len(params) > 0 {
		ns = params[0]
	}
	if len(params) > 1 {
		path = params[1]
	}

	def := textdiff.DefaultOptions()
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(&cli.DurationFlag{
			Name:  "timeout",
			Usage: "time budget for one text diff, 0 for none",
			Value: def.Timeout,
			Validator: func(value time.Duration) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		}, ns, path, "diff.timeout"),
		NameSpacedValueChainFlagFromConfigFile(&cli.IntFlag{
			Name:  "editcost",
			Usage: "cost of an empty edit when cleaning up for efficiency",
			Value: def.EditCost,
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		}, ns, path, "diff.editcost"),
		NameSpacedValueChainFlagFromConfigFile(&cli.BoolFlag{
			Name:  "linemode",
			Usage: "diff long texts line by line first",
			Value: def.LineMode,
		}, ns, path, "diff.linemode"),
	}
}

// NewCompareFlags returns the flags of the compare command.
func NewCompareFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "browse",
			Aliases: []string{"b"},
			Usage:   "pick the text diffs to read in an interactive list",
		},
		NameSpacedValueChainFlagFromConfigFile(&cli.BoolFlag{
			Name:  "cache",
			Usage: "keep text diffs on disk and reuse them for unchanged contents",
		}, params...),
		NameSpacedValueChainFlagFromConfigFile(&cli.StringFlag{
			Name:    "checksum",
			Aliases: []string{"k"},
			Usage:   "checksum telling file contents apart (md5, sha1, sha256, blake2b)",
			Value:   string(filetree.MD5),
			Validator: func(value string) error {
				return FlagValidators(value, ChecksumValidator)
			},
		}, params...),
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"x"},
			Usage:   "name patterns to leave out, added to the configured exclude list",
		},
		&cli.BoolFlag{
			Name:    "inline",
			Aliases: []string{"i"},
			Usage:   "show the text diffs below the table",
		},
		NameSpacedValueChainFlagFromConfigFile(&cli.BoolFlag{
			Name:  "json",
			Usage: "structural diff of .json files",
			Value: true,
		}, params...),
		&cli.StringSliceFlag{
			Name:  "json-ignore",
			Usage: "top level keys left out of structural json diffs",
		},
		NameSpacedValueChainFlagFromConfigFile(&cli.StringFlag{
			Name:  "max-size",
			Usage: "largest file that gets a text diff, 0 for no limit",
			Value: "4MiB",
			Validator: func(value string) error {
				return FlagValidators(value, SizeValidator)
			},
		}, params...),
		&cli.StringFlag{
			Name:  "title",
			Usage: "page title with html output",
		},
	}
}

// configurable is a flag that takes its value from a source chain.
type configurable interface {
	*cli.StringFlag | *cli.BoolFlag | *cli.IntFlag | *cli.DurationFlag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. params are the namespace, the
// config file and optionally the config key, which defaults to the flag name.
// Without a config file the flag is returned as is.
func NameSpacedValueChainFlagFromConfigFile[F configurable](flag F, params ...string) F {
	if len(params) < 2 || params[1] == "" {
		return flag
	}
	ns, path := params[0], params[1]

	var (
		name  string
		chain *cli.ValueSourceChain
	)
	switch f := any(flag).(type) {
	case *cli.StringFlag:
		name, chain = f.Name, &f.Sources
	case *cli.BoolFlag:
		name, chain = f.Name, &f.Sources
	case *cli.IntFlag:
		name, chain = f.Name, &f.Sources
	case *cli.DurationFlag:
		name, chain = f.Name, &f.Sources
	}

	key := name
	if len(params) > 2 && params[2] != "" {
		key = params[2]
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(path)))

	return flag
}

// differOptions maps the compare flags onto differ options.
func differOptions(cmd *cli.Command, filters []filetree.Filter, colored bool) ([]differ.Option, error) {
	algo, err := filetree.ParseAlgorithm(cmd.String("checksum"))
	if err != nil {
		return nil, err
	}
	size, err := parseSize(cmd.String("max-size"))
	if err != nil {
		return nil, err
	}

	opts := []differ.Option{
		differ.WithChecksum(algo),
		differ.WithFilters(filters...),
		differ.WithEngine(newEngine(cmd)),
		differ.WithMaxTextSize(size),
		differ.WithJSON(cmd.Bool("json"), cmd.StringSlice("json-ignore")...),
		differ.WithColoring(colored),
	}
	if cmd.Bool("cache") {
		if c, ok := deltaCache(); ok {
			opts = append(opts, differ.WithCache(c))
		}
	}
	return opts, nil
}

// deltaCache opens the on-disk delta cache, first dropping entries older
// than the configured cache.hours.
func deltaCache() (cacheutil.Store, bool) {
	base, ok, err := cacheutil.EnsureBaseDir()
	if err != nil {
		log.Warnf("delta cache unavailable: %v", err)
		return nil, false
	}
	if !ok {
		log.Debug("delta cache disabled")
		return nil, false
	}

	hours, err := config.GetInt("cache.hours", 0)
	if err != nil {
		log.Warnf("ignoring cache.hours: %v", err)
	}
	if err := cacheutil.Purge(hours); err != nil {
		log.Warnf("%v", err)
	}

	log.Debugf("delta cache in %s", base)
	return cacheutil.Store{"deltas"}, true
}

// newEngine builds the text diff engine from the engine flags.
func newEngine(cmd *cli.Command) *textdiff.Engine {
	return textdiff.New(
		textdiff.WithTimeout(cmd.Duration("timeout")),
		textdiff.WithEditCost(cmd.Int("editcost")),
		textdiff.WithLineMode(cmd.Bool("linemode")),
	)
}

// pathHas reports whether target is an executable on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
