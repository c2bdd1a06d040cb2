// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/treecmp/internal/align"
	"github.com/tfctl/treecmp/internal/filetree"
	"github.com/tfctl/treecmp/internal/textdiff"
	"github.com/tfctl/treecmp/internal/tree"
)

// DefaultMaxTextSize is the largest file, in bytes, that is text diffed
// unless WithMaxTextSize says otherwise.
const DefaultMaxTextSize = 4 << 20

// Source is one version to compare.
type Source struct {
	Label string
	FS    fs.FS
	// Root is the path within FS to compare, "." when empty.
	Root string
}

func (s Source) root() string {
	if s.Root == "" {
		return "."
	}
	return s.Root
}

// Options tune a Differ.
type Options struct {
	Checksum filetree.Algorithm
	Filters  []filetree.Filter
	Engine   *textdiff.Engine
	// MaxTextSize bounds the files that get a text diff. Zero or less means
	// no bound.
	MaxTextSize int64
	// JSON enables structural diffs of .json files.
	JSON bool
	// JSONIgnore lists top level keys left out of structural diffs.
	JSONIgnore []string
	// Coloring enables ANSI colors in structural diffs.
	Coloring bool
	// Cache keeps text diff deltas across runs, keyed by content.
	Cache Cache
}

// Cache stores encoded deltas. Read misses are reported with false.
type Cache interface {
	Read(key string) ([]byte, bool)
	Write(key string, data []byte) error
}

// Option configures a Differ.
type Option func(*Options)

// WithChecksum sets the checksum telling file contents apart.
func WithChecksum(a filetree.Algorithm) Option {
	return func(o *Options) { o.Checksum = a }
}

// WithFilters sets the filters every tree is built with.
func WithFilters(filters ...filetree.Filter) Option {
	return func(o *Options) { o.Filters = filters }
}

// WithEngine sets the text diff engine.
func WithEngine(e *textdiff.Engine) Option {
	return func(o *Options) { o.Engine = e }
}

// WithMaxTextSize bounds the size of text diffed files.
func WithMaxTextSize(n int64) Option {
	return func(o *Options) { o.MaxTextSize = n }
}

// WithJSON turns structural JSON diffs on or off, ignoring the given top
// level keys.
func WithJSON(enabled bool, ignore ...string) Option {
	return func(o *Options) {
		o.JSON = enabled
		o.JSONIgnore = ignore
	}
}

// WithColoring turns ANSI colors in structural diffs on or off.
func WithColoring(enabled bool) Option {
	return func(o *Options) { o.Coloring = enabled }
}

// WithCache reuses text diffs of contents seen before.
func WithCache(c Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// Differ compares directory trees.
type Differ struct {
	opts Options
}

// New returns a Differ using MD5 checksums, the default text diff engine and
// structural JSON diffs unless told otherwise.
func New(opts ...Option) *Differ {
	o := Options{
		Checksum:    filetree.MD5,
		MaxTextSize: DefaultMaxTextSize,
		JSON:        true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Engine == nil {
		o.Engine = textdiff.New()
	}
	return &Differ{opts: o}
}

// Options returns the options in effect.
func (d *Differ) Options() Options {
	return d.opts
}

// Compare builds, aligns and diffs the sources. At least two are needed.
func (d *Differ) Compare(ctx context.Context, sources []Source) (*Report, error) {
	log.Debugf(">> Compare(%d sources)", len(sources))

	builders := make([]*filetree.Builder, len(sources))
	trees := make([]tree.Tree[string, filetree.Element], len(sources))
	roots := make([]*tree.Node[filetree.Element], len(sources))
	for i, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		builders[i] = &filetree.Builder{FS: s.FS, Checksum: d.opts.Checksum, Filters: d.opts.Filters}
		t, err := builders[i].Build(s.root())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", s.Label, err)
		}
		t.ID = s.Label
		trees[i], roots[i] = t, t.Root
	}

	if err := align.RequireAtLeast(2, roots); err != nil {
		return nil, err
	}
	aligner, err := align.New(filetree.Compare)
	if err != nil {
		return nil, err
	}
	result := align.AlignTrees(aligner, trees)

	rep := &Report{
		Versions: make([]string, 0, len(sources)),
		Summary:  make(map[Status]int, len(Statuses)),
	}
	for _, id := range result.IDs.Values() {
		rep.Versions = append(rep.Versions, id)
	}

	w := &walker{ctx: ctx, d: d, sources: sources, builders: builders, report: rep}
	if _, err := w.walk(result.Root, 0); err != nil {
		return nil, err
	}

	for _, r := range rep.Rows {
		rep.Summary[r.Status]++
	}
	log.Debugf("compared %d rows: %v", len(rep.Rows), rep.Summary)
	return rep, nil
}

type walker struct {
	ctx      context.Context
	d        *Differ
	sources  []Source
	builders []*filetree.Builder
	report   *Report
}

// walk appends the row for n and its descendants and reports whether the
// whole subtree is the same in every version.
func (w *walker) walk(n *tree.Node[tree.Variations[filetree.Element]], depth int) (bool, error) {
	if err := w.ctx.Err(); err != nil {
		return false, err
	}

	row := newRow(n.Content, depth)
	if row.Kind != filetree.Directory && row.Status != StatusSame {
		if err := w.compareText(&row, n.Content); err != nil {
			return false, err
		}
	}

	idx := len(w.report.Rows)
	w.report.Rows = append(w.report.Rows, row)

	same := row.Status == StatusSame
	for _, c := range n.Children {
		childSame, err := w.walk(c, depth+1)
		if err != nil {
			return false, err
		}
		same = same && childSame
	}

	if !same && w.report.Rows[idx].Status == StatusSame {
		w.report.Rows[idx].Status = StatusChanged
	}
	return same, nil
}

func newRow(v tree.Variations[filetree.Element], depth int) Row {
	row := Row{
		Depth:     depth,
		Status:    statusOf(v),
		Elements:  make([]*filetree.Element, v.Width()),
		Reference: -1,
	}
	for i, e := range v.Values() {
		row.Elements[i] = &e
	}
	if first, ok := v.First(); ok {
		row.Path, row.Name, row.Kind = first.Path, first.Name, first.Kind
	}
	return row
}

func statusOf(v tree.Variations[filetree.Element]) Status {
	n := v.Width()
	switch {
	case v.IsConstant(filetree.SameContent):
		return StatusSame
	case v.Present() == n:
		return StatusChanged
	case !v.Has(0) && v.Has(n-1):
		return StatusAdded
	case v.Has(0) && !v.Has(n-1):
		return StatusRemoved
	}
	return StatusPartial
}

// compareText diffs every present text version against the first present
// version, when that one is text too.
func (w *walker) compareText(row *Row, v tree.Variations[filetree.Element]) error {
	ref := -1
	for i := range v.Values() {
		ref = i
		break
	}
	if ref < 0 || v.Present() < 2 {
		return nil
	}
	refElem, _ := v.Get(ref)
	if refElem.Kind != filetree.Text {
		return nil
	}

	refText, err := w.read(ref, refElem)
	if err != nil {
		return err
	}

	row.Reference = ref
	row.Comparisons = make([]*Comparison, v.Width())
	for i, e := range v.Values() {
		if i == ref {
			continue
		}
		c := &Comparison{}
		row.Comparisons[i] = c

		switch {
		case e.Kind != filetree.Text:
			c.Skipped = "not text"
			continue
		case filetree.SameContent(refElem, e):
			c.Identical = true
			continue
		case w.d.opts.MaxTextSize > 0 && max(refElem.Size, e.Size) > w.d.opts.MaxTextSize:
			c.Skipped = "too large"
			continue
		}

		isJSON := w.d.opts.JSON && strings.EqualFold(path.Ext(e.Name), ".json")
		key := w.cacheKey(refElem, e)
		diffs, hit := w.cached(key, refText)

		var text string
		if !hit || isJSON {
			if text, err = w.read(i, e); err != nil {
				return err
			}
		}
		if !hit {
			diffs = textdiff.CleanupSemantic(w.d.opts.Engine.Main(refText, text))
			w.store(key, diffs)
		}
		c.Diffs = diffs
		c.Delta = textdiff.ToDelta(diffs)
		c.Distance = textdiff.Levenshtein(diffs)
		log.Debugf("%s: %s vs %s distance %d", row.Path, w.sources[ref].Label, w.sources[i].Label, c.Distance)

		if isJSON {
			summary, err := JSONDiff([]byte(refText), []byte(text), w.d.opts.JSONIgnore, w.d.opts.Coloring)
			if err != nil {
				log.WithError(err).Debugf("%s: no structural diff", row.Path)
			}
			c.JSON = summary
		}
	}
	return nil
}

func (w *walker) read(i int, e filetree.Element) (string, error) {
	text, err := w.builders[i].ReadText(w.sources[i].root(), e)
	if err != nil {
		return "", fmt.Errorf("failed to read %s in %s: %w", e.Path, w.sources[i].Label, err)
	}
	return text, nil
}

// cacheKey identifies the diff of two contents under the engine's options.
// It is empty when there is no cache or a checksum is missing.
func (w *walker) cacheKey(ref, e filetree.Element) string {
	if w.d.opts.Cache == nil || ref.Checksum == "" || e.Checksum == "" {
		return ""
	}
	o := w.d.opts.Engine.Options()
	return fmt.Sprintf("%s:%s:%s:%s:%d:%t", w.d.opts.Checksum, ref.Checksum, e.Checksum, o.Timeout, o.EditCost, o.LineMode)
}

// cached rebuilds a diff from its cached delta against the reference text.
func (w *walker) cached(key, refText string) ([]textdiff.Diff, bool) {
	if key == "" {
		return nil, false
	}
	data, ok := w.d.opts.Cache.Read(key)
	if !ok {
		return nil, false
	}
	diffs, err := textdiff.FromDelta(refText, string(data))
	if err != nil {
		log.WithError(err).Debugf("dropping cached delta %s", key)
		return nil, false
	}
	return diffs, true
}

func (w *walker) store(key string, diffs []textdiff.Diff) {
	if key == "" {
		return
	}
	if err := w.d.opts.Cache.Write(key, []byte(textdiff.ToDelta(diffs))); err != nil {
		log.WithError(err).Warnf("failed to cache delta %s", key)
	}
}
