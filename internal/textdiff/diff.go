// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package textdiff

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/tfctl/treecmp/internal/log"
)

// ErrInvalidArgument is returned when an input text is missing.
var ErrInvalidArgument = errors.New("textdiff: invalid argument")

// Operation is the kind of a diff fragment.
type Operation int8

const (
	Delete Operation = -1
	Equal  Operation = 0
	Insert Operation = 1
)

// String returns the short name used in logs and reports.
func (o Operation) String() string {
	switch o {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Equal:
		return "equal"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Diff is one fragment of an edit script.
type Diff struct {
	Type Operation `json:"type" yaml:"type"`
	Text string    `json:"text" yaml:"text"`
}

// String renders the fragment like "insert:\"abc\"".
func (d Diff) String() string {
	return fmt.Sprintf("%s:%q", d.Type, d.Text)
}

// Options tune the engine.
//
// Timeout bounds the time spent in Main. Zero disables the bound and the
// half-match heuristic with it, so the result is always minimal. EditCost is
// the cost, in runes, of an empty edit operation for CleanupEfficiency.
// LineMode makes Main run a quick line level diff first on long texts and
// refine only the changed regions.
type Options struct {
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	EditCost int           `json:"editCost" yaml:"editCost"`
	LineMode bool          `json:"lineMode" yaml:"lineMode"`
}

// DefaultOptions returns a one second timeout, an edit cost of 4 and line
// mode off.
func DefaultOptions() Options {
	return Options{
		Timeout:  time.Second,
		EditCost: 4,
	}
}

// Option mutates Options in New.
type Option func(*Options)

// WithTimeout sets Options.Timeout. Negative values are treated as zero.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = max(d, 0)
	}
}

// WithEditCost sets Options.EditCost. Values below 1 are ignored.
func WithEditCost(cost int) Option {
	return func(o *Options) {
		if cost > 0 {
			o.EditCost = cost
		}
	}
}

// WithLineMode sets Options.LineMode.
func WithLineMode(on bool) Option {
	return func(o *Options) {
		o.LineMode = on
	}
}

// WithOptions replaces every option at once.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
		if o.EditCost < 1 {
			o.EditCost = DefaultOptions().EditCost
		}
		o.Timeout = max(o.Timeout, 0)
	}
}

// Engine computes diffs. It only holds immutable options and may be shared
// between goroutines.
type Engine struct {
	opts Options
}

// New returns an Engine configured from DefaultOptions and opts.
func New(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Engine{opts: o}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// deadline converts the timeout into an absolute deadline. The zero time
// means no deadline.
func (e *Engine) deadline() time.Time {
	if e.opts.Timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(e.opts.Timeout)
}

// Main returns the diff turning text1 into text2, normalised with
// CleanupMerge.
func (e *Engine) Main(text1, text2 string) []Diff {
	return e.MainRunes([]rune(text1), []rune(text2))
}

// MainRunes is Main over rune slices.
func (e *Engine) MainRunes(text1, text2 []rune) []Diff {
	return e.diff(text1, text2, e.opts.LineMode, e.deadline())
}

// MainChecked is Main for texts that may be missing. A nil text is an
// invalid argument.
func (e *Engine) MainChecked(text1, text2 *string) ([]Diff, error) {
	if text1 == nil || text2 == nil {
		return nil, fmt.Errorf("%w: nil text", ErrInvalidArgument)
	}
	return e.Main(*text1, *text2), nil
}

// DiffReaders reads both inputs fully and diffs them. A nil reader is an
// invalid argument.
func (e *Engine) DiffReaders(r1, r2 io.Reader) ([]Diff, error) {
	if r1 == nil || r2 == nil {
		return nil, fmt.Errorf("%w: nil text", ErrInvalidArgument)
	}
	b1, err := io.ReadAll(r1)
	if err != nil {
		return nil, fmt.Errorf("failed to read first text: %w", err)
	}
	b2, err := io.ReadAll(r2)
	if err != nil {
		return nil, fmt.Errorf("failed to read second text: %w", err)
	}
	return e.Main(string(b1), string(b2)), nil
}

// Bisect finds the middle snake of text1 and text2 and diffs both halves.
// The result is not passed through CleanupMerge. A zero deadline means none;
// once the deadline passes the remaining work falls back to a plain delete
// and insert.
func (e *Engine) Bisect(text1, text2 string, deadline time.Time) []Diff {
	return e.run([]task{{text1: []rune(text1), text2: []rune(text2), bisect: true}}, deadline)
}

// diff is the driver behind Main: it diffs the pair and normalises the result.
func (e *Engine) diff(text1, text2 []rune, lines bool, deadline time.Time) []Diff {
	return CleanupMerge(e.run([]task{{text1: text1, text2: text2, lines: lines}}, deadline))
}

// task is one unit of pending work: a pair of texts to diff, a fragment to
// emit as is when literal is set, or, when merge is set, the point where
// the output from index from on is complete and gets merged.
type task struct {
	text1, text2 []rune
	lines        bool
	bisect       bool
	literal      *Diff
	merge        bool
	from         int
}

// run processes tasks from an explicit stack rather than recursing, so very
// long inputs with many splits cannot exhaust the goroutine stack. Tasks are
// pushed right to left, which makes the output come out in text order.
func (e *Engine) run(stack []task, deadline time.Time) []Diff {
	var out []Diff
	emit := func(op Operation, text []rune) {
		if len(text) > 0 {
			out = append(out, Diff{Type: op, Text: string(text)})
		}
	}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.literal != nil {
			if t.literal.Text != "" {
				out = append(out, *t.literal)
			}
			continue
		}
		if t.merge {
			out = append(out[:t.from], CleanupMerge(out[t.from:])...)
			continue
		}

		text1, text2 := t.text1, t.text2
		if t.bisect {
			stack = e.bisectStep(text1, text2, deadline, stack, emit)
			continue
		}

		// Every pair is merged on its own once all of its pieces are out, so
		// halves are normalised before they meet their neighbours.
		stack = append(stack, task{merge: true, from: len(out)})

		if slices.Equal(text1, text2) {
			emit(Equal, text1)
			continue
		}

		// Trim off the common prefix and suffix; the suffix is emitted after
		// whatever the middle turns into.
		n := commonPrefix(text1, text2)
		emit(Equal, text1[:n])
		text1, text2 = text1[n:], text2[n:]

		n = commonSuffix(text1, text2)
		if n > 0 {
			suffix := Diff{Type: Equal, Text: string(text1[len(text1)-n:])}
			stack = append(stack, task{literal: &suffix})
			text1, text2 = text1[:len(text1)-n], text2[:len(text2)-n]
		}

		stack = e.compute(text1, text2, t.lines, deadline, stack, emit)
	}
	return out
}

// compute diffs two texts sharing no common prefix or suffix. Simple cases
// are emitted directly; anything else is split and pushed back on the stack.
func (e *Engine) compute(text1, text2 []rune, lines bool, deadline time.Time,
	stack []task, emit func(Operation, []rune)) []task {

	if len(text1) == 0 {
		emit(Insert, text2)
		return stack
	}
	if len(text2) == 0 {
		emit(Delete, text1)
		return stack
	}

	long, short := text1, text2
	op := Delete
	if len(text1) < len(text2) {
		long, short = text2, text1
		op = Insert
	}

	// Shorter text inside the longer one.
	if i := indexRunes(long, short, 0); i != -1 {
		emit(op, long[:i])
		emit(Equal, short)
		emit(op, long[i+len(short):])
		return stack
	}

	// A single rune that is not contained cannot be matched.
	if len(short) == 1 {
		emit(Delete, text1)
		emit(Insert, text2)
		return stack
	}

	if hm := e.halfMatch(text1, text2); hm != nil {
		common := Diff{Type: Equal, Text: string(hm[4])}
		return append(stack,
			task{text1: hm[1], text2: hm[3], lines: lines},
			task{literal: &common},
			task{text1: hm[0], text2: hm[2], lines: lines},
		)
	}

	if lines && len(text1) > lineModeThreshold && len(text2) > lineModeThreshold {
		for _, d := range e.lineMode(text1, text2, deadline) {
			emit(d.Type, []rune(d.Text))
		}
		return stack
	}

	return e.bisectStep(text1, text2, deadline, stack, emit)
}

// bisectStep splits the pair at its middle snake and pushes both halves, or
// emits a delete and insert pair when no snake was found in time.
func (e *Engine) bisectStep(text1, text2 []rune, deadline time.Time,
	stack []task, emit func(Operation, []rune)) []task {

	x, y, ok := middleSnake(text1, text2, deadline)
	if !ok {
		if !deadline.IsZero() && time.Now().After(deadline) {
			log.Tracef("bisect deadline passed, falling back on %d/%d runes", len(text1), len(text2))
		}
		emit(Delete, text1)
		emit(Insert, text2)
		return stack
	}
	return append(stack,
		task{text1: text1[x:], text2: text2[y:]},
		task{text1: text1[:x], text2: text2[:y]},
	)
}
