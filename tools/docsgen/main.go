// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders the markdown and tldr command pages. Usage and
// flags come from the live command tree, examples and notes from
// templates/treecmp.yaml.
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/treecmp/internal/command"
)

//go:embed templates
var templates embed.FS

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`

	Short string `yaml:"-"`
	Usage string `yaml:"-"`
	Flags []Flag `yaml:"-"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

// docFlag and visibleFlag are the parts of a cli flag the pages use.
type docFlag interface {
	TakesValue() bool
	GetUsage() string
	GetValue() string
}

type visibleFlag interface {
	IsVisible() bool
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	if err := generate(os.Args[1], getVersion(), time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// generate writes one page per subcommand and output type below docs.
func generate(docs, version string, now time.Time) error {
	data, err := templates.ReadFile("templates/treecmp.yaml")
	if err != nil {
		return err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing treecmp.yaml: %w", err)
	}

	app, err := command.InitApp(context.Background(), []string{"treecmp"})
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: "templates/treecmp.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "templates/treecmp.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "treecmp-", Suffix: ".md"},
	}

	for _, sub := range config.Subcommands {
		cmd := findCommand(app, sub.ID)
		if cmd == nil {
			return fmt.Errorf("no %q command", sub.ID)
		}
		sub.Short = cmd.Usage
		sub.Usage = cmd.UsageText
		sub.Flags = flagsOf(cmd)

		metadata := TemplateData{
			Subcommand: sub,
			Date:       now.Format("January 2, 2006"),
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := render(t, metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func render(t Outputs, metadata TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil {
		return err
	}

	tmpl, err := template.ParseFS(templates, t.Template)
	if err != nil {
		return err
	}

	path := filepath.Join(t.Folder, t.Prefix+metadata.ID+t.Suffix)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Println("Generating", path)
	return tmpl.Execute(file, metadata)
}

func findCommand(app *cli.Command, name string) *cli.Command {
	for _, c := range app.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flagsOf lists the visible flags of cmd in their sorted order.
func flagsOf(cmd *cli.Command) []Flag {
	var flags []Flag
	for _, f := range cmd.Flags {
		if v, ok := f.(visibleFlag); ok && !v.IsVisible() {
			continue
		}

		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if d, ok := f.(docFlag); ok {
			flag.Description = d.GetUsage()
			if d.TakesValue() {
				flag.Syntax += " " + strings.ToUpper(names[0])
				flag.Default = strings.Trim(d.GetValue(), `"`)
			}
		}
		flags = append(flags, flag)
	}
	return flags
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
