// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/treecmp/internal/meta"
)

const bashCompletionScript = `# bash completion for treecmp
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_treecmp()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare diff patch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local engine="--timeout --editcost --linemode --tldr"

    case "$cmd" in
        compare)
            local opts="$engine --attrs -a --color -c --filter -f --local -l --output -o --padding --sort -s --titles -t --checksum -k --exclude -x --inline -i --json --json-ignore --max-size --schema --title"
            ;;
        diff)
            local opts="$engine --color -c --efficiency --format -F --semantic"
            ;;
        patch)
            local opts="--delta -d --tldr"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml report html" -- "$cur") )
            return 0
            ;;
        --format|-F)
            COMPREPLY=( $(compgen -W "pretty ops delta distance json" -- "$cur") )
            return 0
            ;;
        --checksum|-k)
            COMPREPLY=( $(compgen -W "md5 sha1 sha256 blake2b" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Roots for compare, files for diff and patch.
    if [[ "$cmd" == "compare" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    else
        COMPREPLY=( $(compgen -f -- "$cur") )
    fi
    return 0
}

complete -F _treecmp treecmp
`

const zshCompletionScript = `#compdef treecmp

_treecmp() {
  local -a cmds
  cmds=(
    'compare:compare two or more directory trees'
    'diff:diff two text files'
    'patch:apply a delta to a file'
    'completion:generate shell completion script'
  )

  local -a engine
  engine=(
  '--timeout[time budget for one text diff]:duration'
  '--editcost[cost of an empty edit]:cost'
  '--linemode[diff long texts line by line first]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'treecmp commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    compare)
      _arguments -C \
        $engine \
        '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-l --local)'{-l,--local}'[show local timestamps]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml report html)' \
        '--padding[spaces between columns]:padding' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '(-k --checksum)'{-k,--checksum}'[checksum]:algorithm:(md5 sha1 sha256 blake2b)' \
        '*'{-x,--exclude}'[name pattern to leave out]:pattern' \
        '(-i --inline)'{-i,--inline}'[show text diffs]' \
        '--json[structural diff of json files]' \
        '*--json-ignore[top level json key to ignore]:key' \
        '--max-size[largest file to text diff]:size' \
        '--schema[list row attributes]' \
        '--title[html page title]:title' \
        '*:root:_directories'
      ;;
    diff)
      _arguments -C \
        $engine \
        '(-c --color)'{-c,--color}'[enable colored output]' \
        '--efficiency[merge small edits]' \
        '(-F --format)'{-F,--format}'[output format]:format:(pretty ops delta distance json)' \
        '--semantic[shift edits to word boundaries]' \
        '1:file:_files' \
        '2:file:_files'
      ;;
    patch)
      _arguments -C \
        '(-d --delta)'{-d,--delta}'[inline delta]:delta' \
        '--tldr[show tldr page]' \
        '1:file:_files' \
        '2::delta file:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _treecmp treecmp
`

// completionCommandAction prints the completion script for the named shell,
// or for $SHELL when none is named.
func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(writer(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(writer(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(writer(cmd), zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(writer(cmd), bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: treecmp completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "treecmp completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
