// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filetree

import (
	"bytes"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/treecmp/internal/tree"
)

var stamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"README.md":        {Data: []byte("# sample\n"), ModTime: stamp},
		"src/main.go":      {Data: []byte("package main\n"), ModTime: stamp},
		"src/logo.png":     {Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02, 0xFF}, ModTime: stamp},
		"src/.cache/x.tmp": {Data: []byte("scratch"), ModTime: stamp},
		"empty.txt":        {Data: nil, ModTime: stamp},
	}
}

func names(n *tree.Node[Element]) []string {
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Content.Name)
	}
	return out
}

func TestBuild(t *testing.T) {
	b := &Builder{FS: sampleFS()}
	got, err := b.Build(".")
	require.NoError(t, err)

	assert.Equal(t, ".", got.ID)
	root := got.Root.Content
	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, RootName, root.Path)
	assert.Equal(t, Directory, root.Kind)
	assert.Equal(t, []string{"README.md", "empty.txt", "src"}, names(got.Root))

	readme := got.Root.Children[0].Content
	sum := md5.Sum([]byte("# sample\n"))
	assert.Equal(t, Text, readme.Kind)
	assert.Equal(t, int64(9), readme.Size)
	assert.Equal(t, hex.EncodeToString(sum[:]), readme.Checksum)
	assert.Equal(t, stamp, readme.ModTime.UTC())

	assert.Equal(t, Text, got.Root.Children[1].Content.Kind, "empty files are text")

	src := got.Root.Children[2]
	assert.Equal(t, "src", src.Content.Path)
	assert.Equal(t, []string{".cache", "logo.png", "main.go"}, names(src))
	assert.Equal(t, "src/.cache/x.tmp", src.Children[0].Children[0].Content.Path)
	assert.Equal(t, Binary, src.Children[1].Content.Kind)
	assert.Equal(t, Text, src.Children[2].Content.Kind)
}

func TestBuildSubdirectoryRoot(t *testing.T) {
	b := &Builder{FS: sampleFS()}
	got, err := b.Build("src")
	require.NoError(t, err)

	assert.Equal(t, "src", got.ID)
	assert.Equal(t, RootName, got.Root.Content.Name)
	assert.Equal(t, "main.go", got.Root.Children[2].Content.Path)
}

func TestBuildFileRoot(t *testing.T) {
	b := &Builder{FS: sampleFS(), Checksum: SHA256}
	got, err := b.Build("src/main.go")
	require.NoError(t, err)

	require.True(t, got.Root.IsLeaf())
	sum := sha256.Sum256([]byte("package main\n"))
	assert.Equal(t, "main.go", got.Root.Content.Name)
	assert.Equal(t, hex.EncodeToString(sum[:]), got.Root.Content.Checksum)
}

func TestBuildErrors(t *testing.T) {
	_, err := (&Builder{}).Build(".")
	assert.ErrorIs(t, err, ErrNoFS)

	_, err = (&Builder{FS: sampleFS()}).Build("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = (&Builder{FS: sampleFS(), Checksum: "crc32"}).Build(".")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestBuildFilters(t *testing.T) {
	exclude, err := Exclude(`\..*`, `.*\.png`)
	require.NoError(t, err)

	b := &Builder{FS: sampleFS(), Filters: []Filter{exclude}}
	got, err := b.Build(".")
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "empty.txt", "src"}, names(got.Root))
	assert.Equal(t, []string{"main.go"}, names(got.Root.Children[2]))

	// A directory that is filtered out is not descended into.
	noSrc := FilterFunc(func(path string, _ fs.DirEntry) bool { return path != "src" })
	b.Filters = append(b.Filters, noSrc)
	got, err = b.Build(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "empty.txt"}, names(got.Root))
}

func TestNameMask(t *testing.T) {
	fsys := fstest.MapFS{"a.go": {}, "b.go.bak": {}, "go": {}}
	mask, err := NameMask(`.*\.go`)
	require.NoError(t, err)

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)

	var kept []string
	for _, d := range entries {
		if mask.Include(d.Name(), d) {
			kept = append(kept, d.Name())
		}
	}
	assert.Equal(t, []string{"a.go"}, kept, "the mask must match the whole name")

	_, err = NameMask(`(`)
	assert.Error(t, err)
	_, err = Exclude(`[`)
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	yes := FilterFunc(func(string, fs.DirEntry) bool { return true })
	no := FilterFunc(func(string, fs.DirEntry) bool { return false })

	assert.True(t, All().Include("x", nil))
	assert.True(t, All(yes, nil, yes).Include("x", nil))
	assert.False(t, All(yes, no).Include("x", nil))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"empty", nil, Text},
		{"plain", []byte("hello\tworld\r\n"), Text},
		{"control separators", []byte{0x1C, 0x1D, 'a', '\f', '\v'}, Text},
		{"binary", []byte{0x00, 0x01, 0x02, 0xFF}, Binary},
		{"utf-8 is mostly not ascii", []byte("日本語"), Binary},
		{"above density", append(bytes.Repeat([]byte("a"), 96), 0, 0, 0, 0), Text},
		{"at density", append(bytes.Repeat([]byte("a"), 95), 0, 0, 0, 0, 0), Binary},
		{"spans chunks", append(bytes.Repeat([]byte("a"), 3*chunkSize), 0), Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classify(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"", MD5},
		{"MD5", MD5},
		{"SHA-1", SHA1},
		{"sha256", SHA256},
		{"SHA-256", SHA256},
		{"blake2b", BLAKE2b},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			h, err := got.New()
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}

	_, err := ParseAlgorithm("crc32")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestBlake2bChecksum(t *testing.T) {
	b := &Builder{FS: sampleFS(), Checksum: BLAKE2b}
	got, err := b.Build("README.md")
	require.NoError(t, err)
	assert.Len(t, got.Root.Content.Checksum, 64)
}

func TestCompare(t *testing.T) {
	elements := []Element{
		{Name: "b.txt", Kind: Text},
		{Name: "z", Kind: Directory},
		{Name: "a.bin", Kind: Binary},
		{Name: "a", Kind: Directory},
	}
	slices.SortFunc(elements, Compare)

	var got []string
	for _, e := range elements {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"a/", "z/", "a.bin", "b.txt"}, got)

	assert.Zero(t, Compare(Element{Name: "x", Kind: Text}, Element{Name: "x", Kind: Binary}),
		"a file that changed kind is still the same entry")
	assert.NotZero(t, Compare(Element{Name: "x", Kind: Text}, Element{Name: "x", Kind: Directory}))
}

func TestSameContent(t *testing.T) {
	base := Element{Name: "f", Kind: Text, Size: 3, Checksum: "abc", ModTime: stamp}
	tests := []struct {
		name  string
		other Element
		want  bool
	}{
		{"identical", base, true},
		{"newer", Element{Name: "f", Kind: Text, Size: 3, Checksum: "abc", ModTime: stamp.Add(time.Hour)}, true},
		{"checksum", Element{Name: "f", Kind: Text, Size: 3, Checksum: "abd"}, false},
		{"size", Element{Name: "f", Kind: Text, Size: 4, Checksum: "abc"}, false},
		{"kind", Element{Name: "f", Kind: Binary, Size: 3, Checksum: "abc"}, false},
		{"name", Element{Name: "g", Kind: Text, Size: 3, Checksum: "abc"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameContent(base, tt.other))
		})
	}

	assert.True(t, SameContent(
		Element{Name: "d", Kind: Directory, ModTime: stamp},
		Element{Name: "d", Kind: Directory}))
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Directory, Text, Binary} {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var back Kind
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("socket")))
	assert.True(t, strings.HasPrefix(Kind(9).String(), "Kind("))
}

func TestReadText(t *testing.T) {
	b := &Builder{FS: sampleFS()}

	got, err := b.Build("src")
	require.NoError(t, err)
	text, err := b.ReadText("src", got.Root.Children[2].Content)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", text)

	_, err = b.ReadText("src", got.Root.Children[1].Content)
	assert.Error(t, err, "binary files are not read as text")

	single, err := b.Build("README.md")
	require.NoError(t, err)
	text, err = b.ReadText("README.md", single.Root.Content)
	require.NoError(t, err)
	assert.Equal(t, "# sample\n", text)
}
