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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/notefind/core"
)

// NoteExtension is the file extension of notes.
const NoteExtension = ".md"

// DefaultIgnoredFolders are folder names skipped while walking a vault.
var DefaultIgnoredFolders = []string{".git", ".obsidian", ".trash"}

// Vault is a directory of markdown notes.
type Vault struct {
	root    string
	ignored map[string]struct{}
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault) error

// WithPoolSize sets the worker pool size for concurrent file parsing.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(v *Vault) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if v.pool != nil {
			v.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		v.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// WithIgnoredFolders replaces the folder names skipped while walking.
// Default is DefaultIgnoredFolders.
func WithIgnoredFolders(names ...string) Option {
	return func(v *Vault) error {
		v.ignored = make(map[string]struct{}, len(names))
		for _, name := range names {
			v.ignored[name] = struct{}{}
		}
		return nil
	}
}

// New opens the vault rooted at root.
func New(root string, opts ...Option) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotDirectory, root)
	}

	poolSize := max(runtime.NumCPU(), 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		root:   abs,
		pool:   pool,
		logger: slog.Default(),
	}
	v.ignored = make(map[string]struct{}, len(DefaultIgnoredFolders))
	for _, name := range DefaultIgnoredFolders {
		v.ignored[name] = struct{}{}
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(v); optErr != nil {
			v.Release()
			return nil, optErr
		}
	}

	return v, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Release releases the worker pool.
// The vault should not be used after calling Release.
func (v *Vault) Release() {
	if v.pool != nil {
		v.pool.Release()
	}
}

// notePaths lists slash-separated vault-relative paths of every note, sorted.
func (v *Vault) notePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				v.logger.Warn("skipping unreadable path", "path", p, "err", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if _, skip := v.ignored[d.Name()]; skip && p != v.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), NoteExtension) {
			return nil
		}

		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(paths)
	return paths, nil
}

// forEach runs fn for every path on the worker pool and waits for all of
// them. Failures are aggregated; one failing file never stops the others.
func (v *Vault) forEach(ctx context.Context, paths []string, fn func(i int, rel string) error) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)
	appendErr := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	for i, rel := range paths {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		submitErr := v.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				return
			}
			if err := fn(i, rel); err != nil {
				appendErr(fmt.Errorf("%s: %w", rel, err))
			}
		})
		if submitErr != nil {
			wg.Done()
			appendErr(fmt.Errorf("%s: %w", rel, submitErr))
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		appendErr(err)
	}
	return result.ErrorOrNil()
}

// absPath converts a vault-relative slash path into an absolute file path.
func (v *Vault) absPath(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(rel))
}

// readNote reads the contents of an existing note document.
func (v *Vault) readNote(doc core.Document) ([]byte, error) {
	if !doc.Exists {
		return nil, fmt.Errorf("%w: %s", ErrPlaceholderDocument, doc.Title)
	}
	return os.ReadFile(v.absPath(doc.Path))
}

// titleFromPath derives a note title from its file name.
func titleFromPath(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
