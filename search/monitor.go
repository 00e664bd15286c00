package search

import (
	"log/slog"

	"github.com/poiesic/notefind/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterTokenization(anchors []string, trailing string)
	SourceScored(doc core.Document, source string, score float64)
	DocumentMatched(result core.SearchResult)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                   {}
func (n *noopMonitor) AfterTokenization(_ []string, _ string)           {}
func (n *noopMonitor) SourceScored(_ core.Document, _ string, _ float64) {}
func (n *noopMonitor) DocumentMatched(_ core.SearchResult)              {}
func (n *noopMonitor) Finish(_ []core.SearchResult)                     {}

// LogMonitor reports every search stage to a logger at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a LogMonitor. A nil logger uses slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger}
}

func (m *LogMonitor) Start(query string) {
	m.logger.Debug("search started", "query", query)
}

func (m *LogMonitor) AfterTokenization(anchors []string, trailing string) {
	m.logger.Debug("query tokenized", "anchors", anchors, "trailing", trailing)
}

func (m *LogMonitor) SourceScored(doc core.Document, source string, score float64) {
	if score > 0 {
		m.logger.Debug("source scored", "path", doc.Path, "source", source, "score", score)
	}
}

func (m *LogMonitor) DocumentMatched(result core.SearchResult) {
	m.logger.Debug("document matched",
		"title", result.Document.Title,
		"alias", result.MatchedAlias,
		"score", result.Score)
}

func (m *LogMonitor) Finish(results []core.SearchResult) {
	m.logger.Debug("search finished", "results", len(results))
}
