// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// schemaTag represents a discovered struct field tag used when emitting schema
// information (--schema flag).
type schemaTag struct {
	Kind     string
	Name     string
	Encoding string
}

// print renders the tag into its display form.
func (t schemaTag) print() (out string) {
	parts := []string{}
	if t.Name != "" {
		parts = append(parts, t.Name)
	}
	return strings.Join(parts, ",")
}

// NewTag constructs a Tag from a raw struct tag value and an optional holder
// prefix used to build hierarchical attribute names.
func NewTag(h string, s string) schemaTag {
	allowed := []string{"attr"}

	tag := schemaTag{}

	parts := strings.Split(s, ",")
	if len(parts) > 0 {
		found := false
		for _, a := range allowed {
			if a == parts[0] {
				found = true
				break
			}
		}

		if !found {
			return tag
		}

		tag.Kind = parts[0]
	}

	if len(parts) > 1 {
		if h != "" {
			parts[1] = fmt.Sprintf("%s.%s", h, parts[1])
		}
		tag.Name = parts[1]
	}

	if len(parts) > 2 {
		tag.Encoding = parts[2]
	}

	return tag
}

// maxSchemaDepth limits the depth of schema walking.
const maxSchemaDepth = 1

// DumpSchema writes the sorted row paths accepted by --attrs, --filter and
// --sort. If w is nil, os.Stdout is used.
func DumpSchema(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Row attributes available to the --attrs, --filter and --sort flags. Per
version values are reached with versions.N, N counting from 0 in the order
the roots were given.`)
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker("", reflect.TypeOf(datasetRow{}), 0)
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker recursively walks a struct type discovering attr tags.
// Slices of structs are walked with an N placeholder for the index.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("attr")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Kind != "attr" {
			continue
		}

		tags = append(tags, tag)

		if depth >= maxSchemaDepth {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			tags = append(tags, dumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		case reflect.Ptr, reflect.Slice:
			if field.Type.Elem().Kind() == reflect.Struct {
				holder := tag.Name
				if field.Type.Kind() == reflect.Slice {
					holder += ".N"
				}
				tags = append(tags, dumpSchemaWalker(holder, field.Type.Elem(), depth+1)...)
			}
		default:
			log.Debugf("Presumed primitive field type: %s for %v", field.Type.Kind(), tag)
		}
	}

	return tags
}
