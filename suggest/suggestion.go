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

package suggest

import (
	"strings"

	"github.com/poiesic/notefind/core"
)

// Suggestion is one completion candidate: a note, a heading of a note, or
// a block of a note. The set of implementations is closed.
type Suggestion interface {
	// Document returns the note the suggestion links to.
	Document() core.Document
	suggestion()
}

// NoteSuggestion links to a whole note.
type NoteSuggestion struct {
	Doc core.Document
	// Alias is the alias that matched, empty when the title matched.
	Alias string
	Score float64
}

// HeadingSuggestion links to a heading inside a note.
type HeadingSuggestion struct {
	Doc     core.Document
	Heading core.Heading
}

// BlockSuggestion links to a block inside a note.
// A Block without an ID is pending: selecting it assigns one.
type BlockSuggestion struct {
	Doc   core.Document
	Block core.Block
}

func (s NoteSuggestion) Document() core.Document    { return s.Doc }
func (s HeadingSuggestion) Document() core.Document { return s.Doc }
func (s BlockSuggestion) Document() core.Document   { return s.Doc }

func (NoteSuggestion) suggestion()    {}
func (HeadingSuggestion) suggestion() {}
func (BlockSuggestion) suggestion()   {}

// Pending reports whether the block still needs an id.
func (s BlockSuggestion) Pending() bool {
	return !s.Block.HasID()
}

// FormatLink renders s as a wiki link. A non-empty display is appended
// after a pipe; otherwise a note matched through an alias shows that alias.
func FormatLink(s Suggestion, display string) string {
	var b strings.Builder
	b.WriteString("[[")
	b.WriteString(s.Document().Title)

	switch s := s.(type) {
	case NoteSuggestion:
		if display == "" {
			display = s.Alias
		}
	case HeadingSuggestion:
		b.WriteString("#")
		b.WriteString(s.Heading.Text)
	case BlockSuggestion:
		b.WriteString("#^")
		b.WriteString(s.Block.ID)
	}

	if display != "" {
		b.WriteString("|")
		b.WriteString(display)
	}
	b.WriteString("]]")
	return b.String()
}
