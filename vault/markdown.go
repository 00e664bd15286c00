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

package vault

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/poiesic/notefind/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// blockIDRe matches a trailing " ^id" marker.
var blockIDRe = regexp.MustCompile(`(?:^|\s)\^([A-Za-z0-9-]+)\s*$`)

// Headings returns the headings of doc in document order.
// Placeholders have no headings.
func (v *Vault) Headings(ctx context.Context, doc core.Document) ([]core.Heading, error) {
	if !doc.Exists {
		return []core.Heading{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := v.readNote(doc)
	if err != nil {
		return nil, err
	}
	_, body, _ := splitFrontMatter(data)

	headings := []core.Heading{}
	walkMarkdown(body, func(n ast.Node) {
		heading, ok := n.(*ast.Heading)
		if !ok {
			return
		}
		headings = append(headings, core.Heading{
			Text:  strings.TrimSpace(joinLines(heading, body)),
			Level: heading.Level,
		})
	})
	return headings, nil
}

// Blocks returns the paragraphs of doc in document order, each with the
// file line it ends on and its existing id, if any.
// Placeholders have no blocks.
func (v *Vault) Blocks(ctx context.Context, doc core.Document) ([]core.Block, error) {
	if !doc.Exists {
		return []core.Block{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := v.readNote(doc)
	if err != nil {
		return nil, err
	}
	return parseBlocks(data), nil
}

func parseBlocks(data []byte) []core.Block {
	_, body, lineOffset := splitFrontMatter(data)

	blocks := []core.Block{}
	walkMarkdown(body, func(n ast.Node) {
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
		default:
			return
		}

		lines := n.Lines()
		if lines == nil || lines.Len() == 0 {
			return
		}
		last := lines.At(lines.Len() - 1)

		block := core.Block{
			Line: 1 + lineOffset + bytes.Count(body[:last.Start], []byte("\n")),
			Text: strings.TrimSpace(joinLines(n, body)),
		}
		if m := blockIDRe.FindStringSubmatchIndex(block.Text); m != nil {
			block.ID = block.Text[m[2]:m[3]]
			block.Text = strings.TrimSpace(block.Text[:m[0]])
		}
		if block.Text == "" {
			return
		}
		blocks = append(blocks, block)
	})
	return blocks
}

// walkMarkdown calls visit for every node of the markdown AST on entry.
func walkMarkdown(source []byte, visit func(n ast.Node)) {
	document := goldmark.DefaultParser().Parse(text.NewReader(source))
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			visit(n)
		}
		return ast.WalkContinue, nil
	})
}

// joinLines joins the raw source lines of a block node with single spaces.
func joinLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	if lines == nil {
		return ""
	}
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		if part := strings.TrimSpace(string(segment.Value(source))); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}
