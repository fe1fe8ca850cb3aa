// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package page wraps converted HTML fragments into a complete page template.
// Substitutions are queued on an rsc.io/edit buffer, so the template is copied only once.
package page

import (
	"bytes"
	"errors"
	"os"
	"sort"

	"rsc.io/edit"
)

// ContentPlaceholder marks the place in the template where the converted document goes.
const ContentPlaceholder = "HERE_GOES_THE_CONTENT"

var ErrNoPlaceholder = errors.New("template has no " + ContentPlaceholder + " placeholder")

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// Wrap returns tmpl with the first content placeholder replaced by content,
// and every '{#name}' replaced by vars[name].
// Placeholders are searched only in the template, never in the content.
func Wrap(tmpl []byte, content []byte, vars map[string]string) ([]byte, error) {

	contentAt := bytes.Index(tmpl, []byte(ContentPlaceholder))
	if contentAt == -1 {
		return nil, ErrNoPlaceholder
	}

	ed := edit.NewBuffer(tmpl)
	ed.Replace(contentAt, contentAt+len(ContentPlaceholder), string(content))

	// Sort the names so the edits are queued in the same order in every run
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		old := "{#" + name + "}"
		for _, hit := range FindAll(tmpl, old) {
			ed.Replace(hit, hit+len(old), vars[name])
		}
	}

	return ed.Bytes(), nil
}

// WrapFile reads the template from templateName and wraps content with it.
func WrapFile(templateName string, content []byte, vars map[string]string) ([]byte, error) {
	tmpl, err := os.ReadFile(templateName)
	if err != nil {
		return nil, err
	}
	return Wrap(tmpl, content, vars)
}
