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
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports note changes below a vault root.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	ignored map[string]struct{}
	once    sync.Once
	logger  *slog.Logger
}

// Watch starts watching every directory below the vault root.
// Directories created later are added as they appear.
func (v *Vault) Watch() (*Watcher, error) {
	return newWatcher(v.root, v.ignored, v.logger)
}

// NewWatcher watches the vault rooted at root using the default ignored folders.
func NewWatcher(root string) (*Watcher, error) {
	ignored := make(map[string]struct{}, len(DefaultIgnoredFolders))
	for _, name := range DefaultIgnoredFolders {
		ignored[name] = struct{}{}
	}
	return newWatcher(root, ignored, slog.Default())
}

func newWatcher(root string, ignored map[string]struct{}, logger *slog.Logger) (*Watcher, error) {
	if root == "" {
		return nil, errors.New("vault directory cannot be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		root:    abs,
		ignored: ignored,
		logger:  logger,
	}
	if err := w.addRecursive(abs); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers the vault-relative slash path of every created, written,
// removed or renamed note to onChange until ctx is done or the watcher is
// closed. Watch errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(rel string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "err", err)
					}
					continue
				}
			}

			rel, ok := w.relevantPath(event)
			if !ok {
				continue
			}
			w.logger.Debug("note changed", "path", rel, "op", event.Op.String())
			onChange(rel)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("vault watcher error", "err", err)
			}
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var closeErr error
	w.once.Do(func() {
		closeErr = w.watcher.Close()
	})
	return closeErr
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if _, skip := w.ignored[d.Name()]; skip && p != w.root {
			return filepath.SkipDir
		}

		return w.watcher.Add(p)
	})
}

// relevantPath returns the vault-relative path of a note event.
func (w *Watcher) relevantPath(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(event.Name), NoteExtension) {
		return "", false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	for _, part := range strings.Split(rel, "/") {
		if _, skip := w.ignored[part]; skip {
			return "", false
		}
	}
	return rel, true
}
