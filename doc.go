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

// Package notefind completes wiki links over a vault of markdown notes.
//
// Notes are matched by title and alias with morphological (Russian and
// English) stemming, prefix matching on the word being typed and word order
// independence. Notes selected recently are promoted to the top, and the
// recency ledger survives restarts in a BadgerDB directory.
//
// # Usage
//
//	ws, err := notefind.Open(ctx, "/path/to/vault",
//	    notefind.WithDatabasePath("/path/to/db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ws.Close()
//
//	suggestions, err := ws.Suggest(ctx, "деревянную кор")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	link, err := ws.Select(ctx, suggestions[0], "")
//
// Queries follow the link grammar of package query: "note#heading" lists
// the headings of a note and "note^block" its paragraphs.
package notefind
