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

package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/notefind/analysis"
	"github.com/poiesic/notefind/core"
)

// Score weights. Rank orders downstream depend on these exact values.
const (
	QueryWeight  = 0.5
	SourceWeight = 0.4
	TitleBonus   = 0.1
)

// source is one searchable text of a document with its analysis precomputed.
type source struct {
	text   string
	title  bool
	tokens []string
	stems  map[string]struct{} // union of the stem sets of all tokens
}

type entry struct {
	doc     core.Document
	sources []source
}

// Index ranks a fixed set of documents against free-text queries.
type Index struct {
	entries []entry
	stemmer analysis.Stemmer
	logger  *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithStemmer sets the stemmer used for documents and queries.
// Default is analysis.Default().
func WithStemmer(stemmer analysis.Stemmer) Option {
	return func(idx *Index) error {
		if stemmer == nil {
			return ErrStemmerRequired
		}
		idx.stemmer = stemmer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// NewIndex builds an index over docs.
// A document without a title is rejected with core.ErrInvalidDocument.
func NewIndex(docs []core.Document, opts ...Option) (*Index, error) {
	idx := &Index{
		stemmer: analysis.Default(),
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	idx.entries = make([]entry, 0, len(docs))
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return nil, err
		}
		idx.entries = append(idx.entries, idx.newEntry(docs[i]))
	}

	idx.logger.Debug("built search index", "documents", len(idx.entries))
	return idx, nil
}

func (idx *Index) newEntry(doc core.Document) entry {
	texts := doc.Sources()
	sources := make([]source, len(texts))
	for i, text := range texts {
		sources[i] = idx.newSource(text, i == 0)
	}
	return entry{doc: doc, sources: sources}
}

func (idx *Index) newSource(text string, title bool) source {
	tokens := analysis.Tokenize(text)
	stems := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		for _, stem := range idx.stemmer.Stem(token) {
			stems[stem] = struct{}{}
		}
	}
	return source{text: text, title: title, tokens: tokens, stems: stems}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Documents returns the indexed documents in insertion order.
func (idx *Index) Documents() []core.Document {
	docs := make([]core.Document, len(idx.entries))
	for i, e := range idx.entries {
		docs[i] = e.doc
	}
	return docs
}

// Search ranks every document against query, most relevant first.
// Documents that match no query word are omitted. The result is never nil.
func (idx *Index) Search(query string) []core.SearchResult {
	return idx.SearchWithMonitor(query, nil)
}

// SearchWithMonitor is Search with a monitor receiving callbacks for each stage.
func (idx *Index) SearchWithMonitor(query string, monitor SearchMonitor) []core.SearchResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	tokens := analysis.Tokenize(query)
	if len(tokens) == 0 {
		results := []core.SearchResult{}
		monitor.Finish(results)
		return results
	}

	q := idx.prepare(tokens)
	monitor.AfterTokenization(tokens[:len(tokens)-1], q.trailing)

	results := make([]core.SearchResult, 0)
	for _, e := range idx.entries {
		var best float64
		var alias string
		for i := range e.sources {
			src := &e.sources[i]
			score := q.score(src)
			monitor.SourceScored(e.doc, src.text, score)
			if src.title {
				best = score
				continue
			}
			// Aliases must beat the title strictly.
			if score > best {
				best = score
				alias = src.text
			}
		}
		if best <= 0 {
			continue
		}

		result := core.SearchResult{Document: e.doc, MatchedAlias: alias, Score: best}
		monitor.DocumentMatched(result)
		results = append(results, result)
	}

	// Sort by score descending, keeping corpus order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	monitor.Finish(results)

	return results
}

// preparedQuery holds the per-query analysis shared by all documents.
type preparedQuery struct {
	anchors       [][]string // stem sets of every token but the last
	trailing      string
	trailingStems []string
}

func (idx *Index) prepare(tokens []string) *preparedQuery {
	last := len(tokens) - 1
	anchors := make([][]string, last)
	for i, token := range tokens[:last] {
		anchors[i] = idx.stemmer.Stem(token)
	}
	return &preparedQuery{
		anchors:       anchors,
		trailing:      tokens[last],
		trailingStems: idx.stemmer.Stem(tokens[last]),
	}
}

func (q *preparedQuery) score(src *source) float64 {
	if len(src.tokens) == 0 {
		return 0
	}

	matched := 0
	for _, stems := range q.anchors {
		if src.hasAnyStem(stems) {
			matched++
		}
	}
	if q.matchesTrailing(src) {
		matched++
	}
	if matched == 0 {
		return 0
	}

	total := len(q.anchors) + 1
	queryRatio := float64(matched) / float64(total)
	sourceRatio := float64(min(matched, len(src.tokens))) / float64(len(src.tokens))

	score := QueryWeight*queryRatio + SourceWeight*sourceRatio
	if src.title {
		score += TitleBonus
	}
	return score
}

// matchesTrailing reports whether the last query word matches src as a raw
// token prefix, as a stem prefix, or through a shared stem.
func (q *preparedQuery) matchesTrailing(src *source) bool {
	for _, token := range src.tokens {
		if strings.HasPrefix(token, q.trailing) {
			return true
		}
	}
	for stem := range src.stems {
		if strings.HasPrefix(stem, q.trailing) {
			return true
		}
	}
	return src.hasAnyStem(q.trailingStems)
}

func (s *source) hasAnyStem(stems []string) bool {
	for _, stem := range stems {
		if _, ok := s.stems[stem]; ok {
			return true
		}
	}
	return false
}
