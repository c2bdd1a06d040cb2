// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filetree

import (
	"fmt"
	"strings"
	"time"
)

// Kind tells directories, text files and binary files apart.
type Kind int

const (
	Directory Kind = iota
	Text
	Binary
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "dir"
	case Text:
		return "text"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in json and yaml output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "dir", "directory":
		*k = Directory
	case "text":
		*k = Text
	case "binary":
		*k = Binary
	default:
		return fmt.Errorf("filetree: unknown kind %q", string(b))
	}
	return nil
}

// Element is the content of a file tree node.
type Element struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Kind     Kind      `json:"kind" yaml:"kind"`
	Size     int64     `json:"size" yaml:"size"`
	ModTime  time.Time `json:"modTime" yaml:"modTime"`
	Checksum string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// IsDir reports whether the element is a directory.
func (e Element) IsDir() bool {
	return e.Kind == Directory
}

// SameContent reports whether two elements hold the same thing. Directories
// only need the same name; files also need the same kind, size and checksum.
// Modification times are ignored.
func SameContent(a, b Element) bool {
	if a.Name != b.Name || a.Kind != b.Kind {
		return false
	}
	if a.Kind == Directory {
		return true
	}
	return a.Size == b.Size && a.Checksum == b.Checksum
}

func (e Element) String() string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}
