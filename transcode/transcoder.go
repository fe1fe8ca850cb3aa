// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package transcode converts a small subset of Markdown into HTML, one line at a time.
//
// The supported subset is made of headings ('#' to '######'), unordered lists ('- '),
// ordered lists ('* ') and paragraphs. Nothing else is interpreted: the text of
// each line is copied to the output as it is.
package transcode

import (
	"strconv"
	"strings"
)

const (
	unorderedPrefix = "- "
	orderedPrefix   = "* "
	maxHeadingLevel = 6
)

// Kind is the classification of an input line.
type Kind int

const (
	Blank Kind = iota
	Heading
	UnorderedItem
	OrderedItem
	Paragraph
	Text
)

var kindNames = [...]string{"blank", "heading", "unordered", "ordered", "paragraph", "text"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// State tracks the blocks that are open after a line has been processed.
// The zero value is the state at the start of a document.
// At most one block is open at any time.
type State struct {
	InsideUnorderedList bool
	InsideOrderedList   bool
	InsideParagraph     bool

	// The last line of the open paragraph. It is written only when we know
	// if it is followed by another line of the same paragraph (and so needs a <br />)
	// or by the end of the paragraph.
	pending string
}

// Open returns true if there is any block still waiting for its end tag.
func (st State) Open() bool {
	return st.InsideUnorderedList || st.InsideOrderedList || st.InsideParagraph
}

// Transcoder holds the policy used to convert lines. The zero value closes any open
// block when a heading starts, so only one block is open at a time.
type Transcoder struct {

	// KeepListsOnHeading leaves an open list untouched when a heading is found.
	// Paragraphs are always closed by a heading.
	KeepListsOnHeading bool
}

// ProcessLine converts one line of the document using the default policy.
func ProcessLine(rawLine string, st State) (string, State) {
	var t Transcoder
	return t.ProcessLine(rawLine, st)
}

// Finalize returns the end tags for the blocks still open at the end of the document.
func Finalize(st State) string {
	var t Transcoder
	return t.Finalize(st)
}

// ProcessLine converts one line of the document, without its line terminator.
// It returns the HTML fragment for the line (possibly empty) and the new state.
// The fragment may span several output lines separated by '\n'.
func (t Transcoder) ProcessLine(rawLine string, st State) (string, State) {
	fragment, st, _ := t.classify(rawLine, st)
	return fragment, st
}

// Finalize returns the end tags owed by st, in the order </ul>, </ol>, </p>.
func (t Transcoder) Finalize(st State) string {
	var out []string

	if st.InsideUnorderedList {
		out = append(out, "</ul>")
	}
	if st.InsideOrderedList {
		out = append(out, "</ol>")
	}
	if st.InsideParagraph {
		out = append(out, st.pending, "</p>")
	}

	return strings.Join(out, "\n")
}

// classify does the real work for ProcessLine, reporting also the kind of the line.
func (t Transcoder) classify(rawLine string, st State) (string, State, Kind) {

	// Trim possible leading and trailing whitespace to make blank lines have zero length
	line := strings.TrimSpace(rawLine)

	// Headings
	if level, content, ok := parseHeading(line); ok {
		var out []string
		if t.KeepListsOnHeading {
			out, st = closeParagraph(out, st)
		} else {
			out, st = closeAll(out, st)
		}
		out = append(out, "<h"+strconv.Itoa(level)+">"+content+"</h"+strconv.Itoa(level)+">")
		return strings.Join(out, "\n"), st, Heading
	}

	// Unordered list items
	if strings.HasPrefix(line, unorderedPrefix) {
		var out []string
		out, st = closeParagraph(out, st)
		out, st = closeOrdered(out, st)
		if !st.InsideUnorderedList {
			out = append(out, "<ul>")
			st.InsideUnorderedList = true
		}
		out = append(out, listItem(line))
		return strings.Join(out, "\n"), st, UnorderedItem
	}

	// Ordered list items
	if strings.HasPrefix(line, orderedPrefix) {
		var out []string
		out, st = closeParagraph(out, st)
		out, st = closeUnordered(out, st)
		if !st.InsideOrderedList {
			out = append(out, "<ol>")
			st.InsideOrderedList = true
		}
		out = append(out, listItem(line))
		return strings.Join(out, "\n"), st, OrderedItem
	}

	switch {
	case len(line) > 0:
		// Paragraph text. Continuation lines release the previous line with a soft break.
		var out []string
		if st.InsideParagraph {
			out = append(out, st.pending+"<br />")
		} else {
			out, st = closeAll(out, st)
			out = append(out, "<p>")
			st.InsideParagraph = true
		}
		st.pending = line
		return strings.Join(out, "\n"), st, Paragraph

	case len(line) == 0:
		// A blank line ends the open block, if any
		var out []string
		switch {
		case st.InsideParagraph:
			out, st = closeParagraph(out, st)
		case st.InsideUnorderedList:
			out, st = closeUnordered(out, st)
		case st.InsideOrderedList:
			out, st = closeOrdered(out, st)
		}
		return strings.Join(out, "\n"), st, Blank

	default:
		return line, st, Text
	}

}

// parseHeading returns the level and the content of a heading line.
// The run of '#' must be the whole first word of the line.
func parseHeading(line string) (level int, content string, ok bool) {

	if len(line) == 0 || line[0] != '#' {
		return 0, "", false
	}

	// Trim and count the number of '#'
	rest := strings.TrimLeft(line, "#")
	level = len(line) - len(rest)

	// Something like '#tag' is just text
	if len(rest) > 0 && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}

	if level < 1 || level > maxHeadingLevel {
		return 0, "", false
	}

	return level, strings.TrimSpace(rest), true
}

func listItem(line string) string {
	return "<li>" + strings.TrimSpace(line[2:]) + "</li>"
}

func closeParagraph(out []string, st State) ([]string, State) {
	if st.InsideParagraph {
		out = append(out, st.pending, "</p>")
		st.InsideParagraph = false
		st.pending = ""
	}
	return out, st
}

func closeUnordered(out []string, st State) ([]string, State) {
	if st.InsideUnorderedList {
		out = append(out, "</ul>")
		st.InsideUnorderedList = false
	}
	return out, st
}

func closeOrdered(out []string, st State) ([]string, State) {
	if st.InsideOrderedList {
		out = append(out, "</ol>")
		st.InsideOrderedList = false
	}
	return out, st
}

func closeAll(out []string, st State) ([]string, State) {
	out, st = closeUnordered(out, st)
	out, st = closeOrdered(out, st)
	return closeParagraph(out, st)
}
