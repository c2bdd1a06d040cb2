// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filetree

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/tfctl/treecmp/internal/log"
	"github.com/tfctl/treecmp/internal/tree"
)

// ErrNoFS is returned when a Builder has no file system to read.
var ErrNoFS = errors.New("filetree: builder has no file system")

// RootName is the name given to the root directory of every tree.
const RootName = "."

const (
	chunkSize = 1024
	// A file is text when more than this share of its bytes is printable.
	textDensity = 0.95
)

// Builder reads a file system into a tree of Elements.
type Builder struct {
	FS fs.FS
	// Checksum defaults to MD5.
	Checksum Algorithm
	// Filters are applied to every entry below the root. An entry must pass
	// all of them.
	Filters []Filter
}

// Build reads the tree rooted at root, a slash separated path valid for
// fs.FS. The tree's ID is root. A directory root is renamed "." and a file
// root becomes a single leaf.
func (b *Builder) Build(root string) (tree.Tree[string, Element], error) {
	if b.FS == nil {
		return tree.Tree[string, Element]{}, ErrNoFS
	}
	if _, err := b.Checksum.New(); err != nil {
		return tree.Tree[string, Element]{}, err
	}

	info, err := fs.Stat(b.FS, root)
	if err != nil {
		return tree.Tree[string, Element]{}, fmt.Errorf("filetree: %w", err)
	}

	var node *tree.Node[Element]
	if info.IsDir() {
		node, err = b.buildDir(root, RootName, RootName, info, All(b.Filters...))
	} else {
		node, err = b.buildFile(root, info.Name(), info)
	}
	if err != nil {
		return tree.Tree[string, Element]{}, err
	}

	log.Debugf("built %s: %d nodes", root, node.Len())
	return tree.Tree[string, Element]{ID: root, Root: node}, nil
}

// buildDir reads the directory at fsPath. rel is the path reported in the
// elements, relative to the root.
func (b *Builder) buildDir(fsPath, rel, name string, info fs.FileInfo, filter Filter) (*tree.Node[Element], error) {
	node := tree.NewNode(Element{
		Name:    name,
		Path:    rel,
		Kind:    Directory,
		ModTime: info.ModTime(),
	})

	entries, err := fs.ReadDir(b.FS, fsPath)
	if err != nil {
		return nil, fmt.Errorf("filetree: reading %s: %w", fsPath, err)
	}

	for _, d := range entries {
		childFS := path.Join(fsPath, d.Name())
		childRel := d.Name()
		if rel != RootName {
			childRel = path.Join(rel, d.Name())
		}

		if !filter.Include(childRel, d) {
			log.Tracef("filtered out %s", childRel)
			continue
		}

		// Stat follows symbolic links, ReadDir does not.
		childInfo, err := fs.Stat(b.FS, childFS)
		if err != nil {
			return nil, fmt.Errorf("filetree: %w", err)
		}

		var child *tree.Node[Element]
		switch {
		case childInfo.IsDir() && d.Type()&fs.ModeSymlink != 0:
			log.Debugf("not following directory link %s", childRel)
			continue
		case childInfo.IsDir():
			child, err = b.buildDir(childFS, childRel, d.Name(), childInfo, filter)
		case childInfo.Mode().IsRegular():
			child, err = b.buildFile(childFS, childRel, childInfo)
		default:
			log.Debugf("skipping special file %s", childRel)
			continue
		}
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func (b *Builder) buildFile(fsPath, rel string, info fs.FileInfo) (*tree.Node[Element], error) {
	f, err := b.FS.Open(fsPath)
	if err != nil {
		return nil, fmt.Errorf("filetree: %w", err)
	}
	defer f.Close()

	h, err := b.Checksum.New()
	if err != nil {
		return nil, err
	}
	kind, err := classify(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("filetree: reading %s: %w", fsPath, err)
	}

	return tree.NewNode(Element{
		Name:     info.Name(),
		Path:     rel,
		Kind:     kind,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: hexSum(h),
	}), nil
}

// classify reads r to the end and decides between Text and Binary from the
// density of printable ASCII.
func classify(r io.Reader) (Kind, error) {
	var printable, other int64
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			if isTextByte(c) {
				printable++
			} else {
				other++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Binary, err
		}
	}

	if other == 0 || float64(printable)/float64(printable+other) > textDensity {
		return Text, nil
	}
	return Binary, nil
}

// isTextByte accepts printable ASCII and the control characters that count
// as white space, including the file, group, record and unit separators.
func isTextByte(c byte) bool {
	switch {
	case c >= 0x20 && c <= 0x7E:
		return true
	case c >= '\t' && c <= '\r':
		return true
	case c >= 0x1C && c <= 0x1F:
		return true
	}
	return false
}

// ReadText returns the content of a text element from the tree built at root.
func (b *Builder) ReadText(root string, e Element) (string, error) {
	if e.Kind != Text {
		return "", fmt.Errorf("filetree: %s is not a text file", e.Path)
	}
	p := path.Join(root, e.Path)
	if info, err := fs.Stat(b.FS, root); err == nil && !info.IsDir() {
		p = root
	}
	data, err := fs.ReadFile(b.FS, p)
	if err != nil {
		return "", fmt.Errorf("filetree: %w", err)
	}
	return string(data), nil
}
