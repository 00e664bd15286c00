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
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/poiesic/notefind/analysis"
	"github.com/poiesic/notefind/core"
	"github.com/poiesic/notefind/query"
	"github.com/poiesic/notefind/recency"
	"github.com/poiesic/notefind/search"
)

const (
	// DefaultLimit is the maximum number of suggestions returned.
	DefaultLimit = 20

	// BlockIDLength is the length of generated block ids.
	BlockIDLength = 6

	maxBlockIDAttempts = 100
)

// Source supplies the documents and note contents suggestions are built from.
// vault.Vault implements it.
type Source interface {
	Documents(ctx context.Context) ([]core.Document, error)
	Headings(ctx context.Context, doc core.Document) ([]core.Heading, error)
	Blocks(ctx context.Context, doc core.Document) ([]core.Block, error)
	BlockIDs(ctx context.Context) (map[string]struct{}, error)
	AppendBlockID(ctx context.Context, doc core.Document, line int, id string) error
}

// IDGenerator returns a candidate block id.
type IDGenerator func() (string, error)

// Suggester ranks link suggestions for raw queries.
type Suggester struct {
	source     Source
	ledger     *recency.Ledger
	stemmer    analysis.Stemmer
	limit      int
	boostCount int
	newID      IDGenerator
	monitor    search.SearchMonitor
	logger     *slog.Logger
	index      atomic.Pointer[search.Index]
}

// Option configures a Suggester.
type Option func(*Suggester) error

// WithStemmer sets the stemmer used for notes, headings and blocks.
// Default is analysis.Default().
func WithStemmer(stemmer analysis.Stemmer) Option {
	return func(s *Suggester) error {
		if stemmer == nil {
			return ErrStemmerRequired
		}
		s.stemmer = stemmer
		return nil
	}
}

// WithLimit sets the maximum number of suggestions.
// Default is DefaultLimit.
func WithLimit(limit int) Option {
	return func(s *Suggester) error {
		if limit < 1 {
			return ErrInvalidLimit
		}
		s.limit = limit
		return nil
	}
}

// WithBoostCount sets how many recently selected notes are moved to the top.
// Zero disables boosting. Default is recency.DefaultBoostCount.
func WithBoostCount(count int) Option {
	return func(s *Suggester) error {
		if count < 0 {
			return ErrInvalidBoostCount
		}
		s.boostCount = count
		return nil
	}
}

// WithIDGenerator sets the source of new block ids.
// Default generates BlockIDLength lowercase hex characters.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Suggester) error {
		if gen == nil {
			return ErrIDGeneratorRequired
		}
		s.newID = gen
		return nil
	}
}

// WithMonitor sets a monitor receiving note search callbacks.
func WithMonitor(monitor search.SearchMonitor) Option {
	return func(s *Suggester) error {
		s.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suggester) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Suggester over source. It starts with an empty index;
// call Rebuild to load documents.
func New(source Source, ledger *recency.Ledger, opts ...Option) (*Suggester, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if ledger == nil {
		return nil, ErrLedgerRequired
	}

	s := &Suggester{
		source:     source,
		ledger:     ledger,
		stemmer:    analysis.Default(),
		limit:      DefaultLimit,
		boostCount: recency.DefaultBoostCount,
		newID:      randomBlockID,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	empty, err := s.newIndex(nil)
	if err != nil {
		return nil, err
	}
	s.index.Store(empty)

	return s, nil
}

func (s *Suggester) newIndex(docs []core.Document) (*search.Index, error) {
	return search.NewIndex(docs, search.WithStemmer(s.stemmer), search.WithLogger(s.logger))
}

// Rebuild collects documents from the source and swaps in a fresh index.
// If the source returns documents together with an error, the index is
// rebuilt from those documents and the error is still returned.
func (s *Suggester) Rebuild(ctx context.Context) error {
	docs, err := s.source.Documents(ctx)
	if err != nil && len(docs) == 0 {
		return err
	}

	idx, buildErr := s.newIndex(docs)
	if buildErr != nil {
		return buildErr
	}
	s.index.Store(idx)

	s.logger.Info("rebuilt suggestion index", "documents", idx.Len())
	return err
}

// Index returns the current note index.
func (s *Suggester) Index() *search.Index {
	return s.index.Load()
}

// Ledger returns the recency ledger selections are recorded in.
func (s *Suggester) Ledger() *recency.Ledger {
	return s.ledger
}

// Suggest returns the suggestions for raw, best first. An empty slice means
// no match; errors come only from the source.
func (s *Suggester) Suggest(ctx context.Context, raw string) ([]Suggestion, error) {
	q := query.Parse(raw)

	switch q.Kind {
	case query.SubpathHeading:
		return s.suggestHeadings(ctx, q)
	case query.SubpathBlock:
		return s.suggestBlocks(ctx, q)
	default:
		return s.suggestNotes(q), nil
	}
}

// rankNotes searches the note index and applies the recency boost.
func (s *Suggester) rankNotes(phrase string) []core.SearchResult {
	results := s.index.Load().SearchWithMonitor(phrase, s.monitor)
	return recency.BoostN(s.ledger, results, func(r core.SearchResult) string {
		return r.Document.Title
	}, s.boostCount)
}

func (s *Suggester) suggestNotes(q query.Query) []Suggestion {
	results := s.rankNotes(q.Note)
	if len(results) > s.limit {
		results = results[:s.limit]
	}

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = NoteSuggestion{Doc: r.Document, Alias: r.MatchedAlias, Score: r.Score}
	}
	return suggestions
}

// resolveNote finds the note a sub-link query targets: a note whose title
// equals phrase ignoring case, else the best ranked note.
func (s *Suggester) resolveNote(phrase string) (core.Document, bool) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return core.Document{}, false
	}

	for _, doc := range s.index.Load().Documents() {
		if strings.EqualFold(doc.Title, phrase) {
			return doc, true
		}
	}

	results := s.rankNotes(phrase)
	if len(results) == 0 {
		return core.Document{}, false
	}
	return results[0].Document, true
}

func (s *Suggester) suggestHeadings(ctx context.Context, q query.Query) ([]Suggestion, error) {
	doc, ok := s.resolveNote(q.Note)
	if !ok {
		return []Suggestion{}, nil
	}

	headings, err := s.source.Headings(ctx, doc)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(headings))
	for i, h := range headings {
		texts[i] = h.Text
	}
	order, err := s.filter(texts, q.Subpath)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, len(order))
	for i, pos := range order {
		suggestions[i] = HeadingSuggestion{Doc: doc, Heading: headings[pos]}
	}
	return suggestions, nil
}

func (s *Suggester) suggestBlocks(ctx context.Context, q query.Query) ([]Suggestion, error) {
	doc, ok := s.resolveNote(q.Note)
	if !ok {
		return []Suggestion{}, nil
	}

	blocks, err := s.source.Blocks(ctx, doc)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	order, err := s.filter(texts, q.Subpath)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, len(order))
	for i, pos := range order {
		suggestions[i] = BlockSuggestion{Doc: doc, Block: blocks[pos]}
	}
	return suggestions, nil
}

// filter ranks texts against phrase with a throwaway index and returns the
// positions of the matches, best first, capped at the limit. A blank phrase
// keeps every text in its original order.
func (s *Suggester) filter(texts []string, phrase string) ([]int, error) {
	if strings.TrimSpace(phrase) == "" {
		order := make([]int, 0, min(len(texts), s.limit))
		for i := 0; i < len(texts) && len(order) < s.limit; i++ {
			order = append(order, i)
		}
		return order, nil
	}

	docs := make([]core.Document, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, core.Document{Path: strconv.Itoa(i), Title: text, Exists: true})
	}

	idx, err := s.newIndex(docs)
	if err != nil {
		return nil, err
	}

	results := idx.Search(phrase)
	order := make([]int, 0, min(len(results), s.limit))
	for _, r := range results {
		if len(order) == s.limit {
			break
		}
		pos, err := strconv.Atoi(r.Document.Path)
		if err != nil {
			return nil, err
		}
		order = append(order, pos)
	}
	return order, nil
}

// Select records the suggestion's note as recently used and returns its
// link. A pending block gets a fresh id written back to the note first.
func (s *Suggester) Select(ctx context.Context, suggestion Suggestion, display string) (string, error) {
	switch sel := suggestion.(type) {
	case NoteSuggestion, HeadingSuggestion:
	case BlockSuggestion:
		if sel.Pending() {
			id, err := s.uniqueBlockID(ctx)
			if err != nil {
				return "", err
			}
			if err := s.source.AppendBlockID(ctx, sel.Doc, sel.Block.Line, id); err != nil {
				return "", err
			}
			sel.Block.ID = id
			suggestion = sel
		}
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownSuggestion, suggestion)
	}

	title := suggestion.Document().Title
	s.ledger.Record(title)

	link := FormatLink(suggestion, display)
	s.logger.Debug("selected suggestion", "title", title, "link", link)
	return link, nil
}

// uniqueBlockID generates ids until one is unused anywhere in the source.
func (s *Suggester) uniqueBlockID(ctx context.Context) (string, error) {
	existing, err := s.source.BlockIDs(ctx)
	if err != nil {
		return "", err
	}

	for range maxBlockIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if _, taken := existing[id]; !taken {
			return id, nil
		}
		s.logger.Debug("block id collision", "id", id)
	}
	return "", ErrBlockIDExhausted
}

// randomBlockID returns BlockIDLength lowercase hex characters.
func randomBlockID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String()[:BlockIDLength], nil
}
