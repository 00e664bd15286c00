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
	"context"
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/poiesic/notefind/core"
	"github.com/poiesic/notefind/query"
)

var wikiLinkRe = regexp.MustCompile(`\[\[([^\[\]\n]+?)\]\]`)

// note is the per-file result of parsing a vault note.
type note struct {
	doc   core.Document
	links []string
}

// Documents collects one document per note plus a placeholder for every
// link target that matches no note title. Unreadable notes are skipped and
// notes with malformed front matter are kept without aliases; their errors
// are returned together with the documents. Documents are sorted by path.
func (v *Vault) Documents(ctx context.Context) ([]core.Document, error) {
	paths, err := v.notePaths(ctx)
	if err != nil {
		return nil, err
	}

	notes := make([]*note, len(paths))
	parseErr := v.forEach(ctx, paths, func(i int, rel string) error {
		n, err := v.parseNote(rel)
		notes[i] = n
		return err
	})

	docs := make([]core.Document, 0, len(paths))
	known := make(map[string]struct{}, len(paths))
	for _, n := range notes {
		if n == nil {
			continue
		}
		docs = append(docs, n.doc)
		known[strings.ToLower(n.doc.Title)] = struct{}{}
	}

	placeholders := 0
	for _, n := range notes {
		if n == nil {
			continue
		}
		for _, target := range n.links {
			title := linkTitle(target)
			if strings.TrimSpace(title) == "" {
				v.logger.Warn("skipping link without a note title", "path", n.doc.Path, "link", target)
				continue
			}
			key := strings.ToLower(title)
			if _, ok := known[key]; ok {
				continue
			}
			known[key] = struct{}{}
			docs = append(docs, newPlaceholder(target))
			placeholders++
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})

	v.logger.Debug("collected vault documents",
		"notes", len(docs)-placeholders,
		"placeholders", placeholders,
		"failed", parseErr != nil)

	return docs, parseErr
}

// parseNote reads a single note. A note whose front matter cannot be
// parsed is still returned, without aliases, together with the error.
// Files whose name yields no title are skipped.
func (v *Vault) parseNote(rel string) (*note, error) {
	title := titleFromPath(rel)
	if strings.TrimSpace(title) == "" {
		v.logger.Warn("skipping note without a title", "path", rel)
		return nil, nil
	}

	data, err := os.ReadFile(v.absPath(rel))
	if err != nil {
		return nil, err
	}

	fm, body, _ := splitFrontMatter(data)
	aliases, aliasErr := parseAliases(fm)
	if aliasErr != nil {
		v.logger.Warn("ignoring malformed front matter", "path", rel, "err", aliasErr)
		aliases = nil
		aliasErr = fmt.Errorf("front matter: %w", aliasErr)
	}

	return &note{
		doc:   core.NewDocument(rel, title, aliases...),
		links: extractLinks(body),
	}, aliasErr
}

// extractLinks returns the note part of every wiki link in body, in order
// of first appearance.
func extractLinks(body []byte) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, match := range wikiLinkRe.FindAllSubmatch(body, -1) {
		target := strings.TrimSpace(query.Parse(string(match[1])).Note)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		links = append(links, target)
	}
	return links
}

// linkTitle reduces a link target such as "folder/Note.md" to a note title.
func linkTitle(target string) string {
	base := path.Base(target)
	if strings.EqualFold(path.Ext(base), NoteExtension) {
		base = base[:len(base)-len(NoteExtension)]
	}
	return base
}

func newPlaceholder(target string) core.Document {
	return core.Document{
		Id:    core.IDFromContent(target),
		Path:  target,
		Title: linkTitle(target),
	}
}
