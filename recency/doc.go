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

// Package recency tracks which documents were selected most recently and
// promotes them in result lists.
//
// A Ledger maps a document title to the millisecond timestamp of its last
// selection. It holds at most a fixed number of entries, evicting the oldest
// first. Boost and BoostN reorder any slice of results given a function that
// extracts a title from an item:
//
//	ledger.Record("Wooden box")
//	results = recency.Boost(ledger, results, func(r core.SearchResult) string {
//	    return r.Document.Title
//	})
//
// The ledger round-trips through a plain title-to-milliseconds mapping, both
// as a Go map (Snapshot, FromSnapshot) and as JSON. Persisting that mapping is
// up to the caller.
//
// # Thread Safety
//
// A Ledger is safe for concurrent use. Readers always observe whole entries.
package recency
