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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/poiesic/notefind/analysis"
	"github.com/poiesic/notefind/recency"
	"github.com/poiesic/notefind/search"
	"github.com/poiesic/notefind/storage"
	"github.com/poiesic/notefind/storage/badger"
	"github.com/poiesic/notefind/suggest"
	"github.com/poiesic/notefind/vault"
)

const (
	// rebuildDelay coalesces bursts of file events into one rebuild.
	rebuildDelay = 250 * time.Millisecond

	flushAttempts = 3
	flushBackoff  = 10 * time.Millisecond
)

// Workspace is an opened vault with its suggestion index and recency ledger.
type Workspace struct {
	config     *Config
	vault      *vault.Vault
	backend    *badger.Backend
	ledgerRepo storage.LedgerRepository
	ledger     *recency.Ledger
	suggester  *suggest.Suggester
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens the vault at vaultPath and builds its index.
// Notes that fail to parse are logged and left out; any other failure
// aborts the open.
func Open(ctx context.Context, vaultPath string, opts ...Option) (*Workspace, error) {
	return OpenWithConfig(ctx, vaultPath, NewConfig(opts...))
}

// OpenWithConfig is Open with an explicit Config.
func OpenWithConfig(ctx context.Context, vaultPath string, cfg *Config) (*Workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stemmer, err := analysis.ForLanguages(cfg.Languages...)
	if err != nil {
		return nil, err
	}

	// Open backend
	inMemory := cfg.DatabasePath == ""
	backend, err := badger.OpenBackend(cfg.DatabasePath, inMemory, badger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ledgerRepo, err := badger.NewLedgerRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	snapshot, err := ledgerRepo.LoadLedger(ctx)
	if err != nil {
		ledgerRepo.Close()
		backend.Close()
		return nil, fmt.Errorf("loading recency ledger: %w", err)
	}
	ledger, err := recency.FromSnapshot(snapshot, recency.WithCapacity(cfg.LedgerCapacity))
	if err != nil {
		ledgerRepo.Close()
		backend.Close()
		return nil, err
	}

	v, err := vault.New(vaultPath, vault.WithPoolSize(cfg.PoolSize), vault.WithLogger(logger))
	if err != nil {
		ledgerRepo.Close()
		backend.Close()
		return nil, err
	}

	suggestOpts := []suggest.Option{
		suggest.WithStemmer(stemmer),
		suggest.WithLimit(cfg.Limit),
		suggest.WithBoostCount(cfg.BoostCount),
		suggest.WithLogger(logger),
	}
	// Trace note searches only when debug logs are kept.
	if logger.Enabled(ctx, slog.LevelDebug) {
		suggestOpts = append(suggestOpts, suggest.WithMonitor(search.NewLogMonitor(logger)))
	}

	suggester, err := suggest.New(v, ledger, suggestOpts...)
	if err != nil {
		v.Release()
		ledgerRepo.Close()
		backend.Close()
		return nil, err
	}

	w := &Workspace{
		config:     cfg,
		vault:      v,
		backend:    backend,
		ledgerRepo: ledgerRepo,
		ledger:     ledger,
		suggester:  suggester,
		logger:     logger,
	}

	if err := w.Rebuild(ctx); err != nil {
		w.release()
		return nil, err
	}

	logger.Info("opened workspace",
		"vault", v.Root(),
		"documents", suggester.Index().Len(),
		"recent", ledger.Len())
	return w, nil
}

// Rebuild re-reads the vault. Notes that fail to parse are logged and
// skipped; only failures that prevent reading the vault are returned.
func (w *Workspace) Rebuild(ctx context.Context) error {
	if w.isClosed() {
		return ErrWorkspaceClosed
	}

	err := w.suggester.Rebuild(ctx)
	var partial *multierror.Error
	if errors.As(err, &partial) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		for _, fileErr := range partial.Errors {
			w.logger.Warn("skipping unreadable note", "err", fileErr)
		}
		return nil
	}
	return err
}

// Suggest returns link suggestions for a raw query such as "box",
// "box#lid" or "box^hinge|display".
func (w *Workspace) Suggest(ctx context.Context, raw string) ([]suggest.Suggestion, error) {
	if w.isClosed() {
		return nil, ErrWorkspaceClosed
	}
	return w.suggester.Suggest(ctx, raw)
}

// Select records the suggestion as used, persists the ledger and returns
// the link to insert.
func (w *Workspace) Select(ctx context.Context, s suggest.Suggestion, display string) (string, error) {
	if w.isClosed() {
		return "", ErrWorkspaceClosed
	}

	link, err := w.suggester.Select(ctx, s, display)
	if err != nil {
		return "", err
	}
	if err := w.Flush(ctx); err != nil {
		return "", err
	}
	return link, nil
}

// Recent returns up to limit ledger entries, newest first.
// A limit of zero or less returns every entry.
func (w *Workspace) Recent(limit int) []recency.Entry {
	entries := w.ledger.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Ledger returns the recency ledger.
func (w *Workspace) Ledger() *recency.Ledger {
	return w.ledger
}

// Vault returns the underlying vault.
func (w *Workspace) Vault() *vault.Vault {
	return w.vault
}

// Config returns the configuration the workspace was opened with.
func (w *Workspace) Config() *Config {
	return w.config
}

// Flush persists the recency ledger.
func (w *Workspace) Flush(ctx context.Context) error {
	err := storage.Retry(ctx, func() error {
		return w.ledgerRepo.SaveLedger(ctx, w.ledger.Snapshot())
	}, badger.IsConflict, flushAttempts, flushBackoff)
	if err != nil {
		return fmt.Errorf("saving recency ledger: %w", err)
	}
	return nil
}

// Watch rebuilds the index whenever notes change, until ctx is done.
// onRebuild, if not nil, is called after every rebuild attempt.
func (w *Workspace) Watch(ctx context.Context, onRebuild func(error)) error {
	if w.isClosed() {
		return ErrWorkspaceClosed
	}

	watcher, err := w.vault.Watch()
	if err != nil {
		return err
	}
	defer watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	return watcher.Run(ctx, func(rel string) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDelay, func() {
			err := w.Rebuild(ctx)
			if err != nil {
				w.logger.Error("error rebuilding index", "err", err)
			}
			if onRebuild != nil {
				onRebuild(err)
			}
		})
	})
}

// Close persists the ledger and releases all resources.
func (w *Workspace) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	var result *multierror.Error
	if err := w.Flush(context.Background()); err != nil {
		w.logger.Error("error flushing recency ledger", "err", err)
		result = multierror.Append(result, err)
	}
	if err := w.release(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (w *Workspace) release() error {
	w.vault.Release()

	var result *multierror.Error
	if err := w.ledgerRepo.Close(); err != nil {
		w.logger.Error("error closing ledger repository", "err", err)
		result = multierror.Append(result, err)
	}
	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (w *Workspace) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
