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

package notefind

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/poiesic/notefind/analysis"
	"github.com/poiesic/notefind/recency"
	"github.com/poiesic/notefind/suggest"
)

// Config holds the settings of a Workspace.
type Config struct {
	// DatabasePath is the BadgerDB directory the recency ledger is kept in.
	// Empty keeps the ledger in memory only.
	DatabasePath string

	// Languages selects the stemmers, e.g. "russian", "english".
	// An empty list disables stemming; matching then relies on literal prefixes.
	Languages []string

	// Limit is the maximum number of suggestions returned.
	// Default: 20
	Limit int

	// BoostCount is the number of recently selected notes moved to the top.
	// Default: 3
	BoostCount int

	// LedgerCapacity is the number of titles the recency ledger remembers.
	// Default: 1000
	LedgerCapacity int

	// PoolSize is the number of workers parsing notes.
	// Default: runtime.NumCPU()
	PoolSize int

	// Logger receives log output of every component. Default: slog.Default()
	Logger *slog.Logger
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithDatabasePath sets the directory the recency ledger is persisted in.
func WithDatabasePath(path string) Option {
	return func(c *Config) {
		c.DatabasePath = path
	}
}

// WithLanguages sets the stemming languages.
func WithLanguages(languages ...string) Option {
	return func(c *Config) {
		c.Languages = languages
	}
}

// WithLimit sets the maximum number of suggestions.
func WithLimit(limit int) Option {
	return func(c *Config) {
		c.Limit = limit
	}
}

// WithBoostCount sets how many recent notes are boosted.
func WithBoostCount(count int) Option {
	return func(c *Config) {
		c.BoostCount = count
	}
}

// WithLedgerCapacity sets how many titles the recency ledger remembers.
func WithLedgerCapacity(capacity int) Option {
	return func(c *Config) {
		c.LedgerCapacity = capacity
	}
}

// WithPoolSize sets the number of note parsing workers.
func WithPoolSize(size int) Option {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns a Config with an in-memory ledger and Russian and
// English stemming.
func DefaultConfig() *Config {
	return &Config{
		Languages:      []string{analysis.LanguageRussian, analysis.LanguageEnglish},
		Limit:          suggest.DefaultLimit,
		BoostCount:     recency.DefaultBoostCount,
		LedgerCapacity: recency.DefaultCapacity,
		PoolSize:       max(runtime.NumCPU(), 1),
		Logger:         slog.Default(),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDatabasePath("/var/lib/notefind"),
//	    WithLanguages("english"),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.Limit < 1 {
		err = multierror.Append(err, errors.New("config: Limit must be at least 1"))
	}
	if c.BoostCount < 0 {
		err = multierror.Append(err, errors.New("config: BoostCount must not be negative"))
	}
	if c.LedgerCapacity < 1 {
		err = multierror.Append(err, errors.New("config: LedgerCapacity must be at least 1"))
	}
	if c.PoolSize < 1 {
		err = multierror.Append(err, errors.New("config: PoolSize must be at least 1"))
	}
	if _, langErr := analysis.ForLanguages(c.Languages...); langErr != nil {
		err = multierror.Append(err, langErr)
	}
	return err
}
