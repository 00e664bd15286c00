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

package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notefind/storage"
)

// LedgerRepository implements storage.LedgerRepository for BadgerDB.
// Each ledger entry is stored under its own key so a snapshot of a full
// ledger stays well below badger's transaction limits.
type LedgerRepository struct {
	backend *Backend
}

var _ storage.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(backend *Backend) (*LedgerRepository, error) {
	return &LedgerRepository{
		backend: backend,
	}, nil
}

// Close releases resources. LedgerRepository has no resources to release;
// the backend is closed by its owner.
func (r *LedgerRepository) Close() error {
	return nil
}

// LoadLedger reads every stored ledger entry.
func (r *LedgerRepository) LoadLedger(ctx context.Context) (map[string]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := make(map[string]int64)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeLedgerScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			title, ok := titleFromLedgerKey(item.Key())
			if !ok {
				continue
			}

			var stamp int64
			err := item.Value(func(val []byte) error {
				var err error
				stamp, err = storage.UnmarshalStamp(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("reading ledger entry %q: %w", title, err)
			}
			snapshot[title] = stamp
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("loaded ledger", "entries", len(snapshot))
	return snapshot, nil
}

// SaveLedger replaces every stored entry with snapshot in one transaction.
func (r *LedgerRepository) SaveLedger(ctx context.Context, snapshot map[string]int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range ledgerKeys(tx) {
			if title, ok := titleFromLedgerKey(key); ok {
				if _, keep := snapshot[title]; keep {
					continue
				}
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		for title, stamp := range snapshot {
			if err := tx.Set(makeLedgerKey(title), storage.MarshalStamp(stamp)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.backend.logger.Debug("saved ledger", "entries", len(snapshot))
	return nil
}

// ledgerKeys collects copies of all ledger keys visible in tx.
func ledgerKeys(tx *badger.Txn) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeLedgerScanPrefix()
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys
}
