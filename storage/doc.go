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

// Package storage provides the persistence abstraction for notefind.
//
// The only state notefind owns is the recency ledger: a mapping from note
// title to the Unix millisecond timestamp of its last selection. Everything
// else is derived from the vault on every rebuild. This package defines the
// repository interface that keeps the ledger's storage swappable; the
// badger subpackage implements it on top of BadgerDB.
//
// # Usage
//
// Open a repository backed by a directory on disk:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewLedgerRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	snapshot, err := repo.LoadLedger(ctx)
//	ledger, err := recency.FromSnapshot(snapshot)
//	...
//	err = repo.SaveLedger(ctx, ledger.Snapshot())
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryLedgerRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation.
// Pass context.Background() for operations without specific timeout
// requirements.
package storage
