// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package query

import "strings"

// SubpathKind tells which sub-link filter, if any, a query carries.
type SubpathKind int

const (
	SubpathNone SubpathKind = iota
	SubpathHeading
	SubpathBlock
)

func (k SubpathKind) String() string {
	switch k {
	case SubpathHeading:
		return "heading"
	case SubpathBlock:
		return "block"
	default:
		return "none"
	}
}

// Delimiters of the link grammar.
const (
	DisplayDelimiter = '|'
	HeadingDelimiter = '#'
	BlockDelimiter   = '^'
)

// Query is a parsed link query.
type Query struct {
	// Note is the phrase searched against note titles and aliases.
	Note string
	Kind SubpathKind
	// Subpath is the heading or block filter. It may be empty even when
	// Kind is not SubpathNone.
	Subpath string
	Display string
	// HasDisplay distinguishes a trailing "|" (empty display) from no pipe.
	HasDisplay bool
}

// Parse splits raw into its note phrase, sub-link filter and display text.
// Every input parses; delimiters at either end yield empty parts.
func Parse(raw string) Query {
	var q Query

	target := raw
	if i := strings.IndexByte(raw, DisplayDelimiter); i >= 0 {
		target = raw[:i]
		q.Display = raw[i+1:]
		q.HasDisplay = true
	}

	hash := strings.IndexByte(target, HeadingDelimiter)
	caret := strings.IndexByte(target, BlockDelimiter)
	switch {
	case hash >= 0 && (caret < 0 || hash < caret):
		q.Note, q.Kind, q.Subpath = target[:hash], SubpathHeading, target[hash+1:]
	case caret >= 0:
		q.Note, q.Kind, q.Subpath = target[:caret], SubpathBlock, target[caret+1:]
	default:
		q.Note = target
	}

	return q
}

// Heading returns the heading filter when the query targets a heading.
func (q Query) Heading() (string, bool) {
	if q.Kind != SubpathHeading {
		return "", false
	}
	return q.Subpath, true
}

// Block returns the block filter when the query targets a block.
func (q Query) Block() (string, bool) {
	if q.Kind != SubpathBlock {
		return "", false
	}
	return q.Subpath, true
}

// String renders the query back into link syntax.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString(q.Note)
	switch q.Kind {
	case SubpathHeading:
		b.WriteByte(HeadingDelimiter)
		b.WriteString(q.Subpath)
	case SubpathBlock:
		b.WriteByte(BlockDelimiter)
		b.WriteString(q.Subpath)
	}
	if q.HasDisplay {
		b.WriteByte(DisplayDelimiter)
		b.WriteString(q.Display)
	}
	return b.String()
}
