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

// Package suggest turns raw link queries into ranked link suggestions.
//
// A Suggester ties the pieces of notefind together. It parses the query
// with package query, ranks notes with a search.Index, promotes recently
// selected notes with a recency.Ledger and, for "note#heading" and
// "note^block" queries, resolves the target note and ranks its headings or
// blocks instead.
//
//	s, err := suggest.New(v, ledger, suggest.WithLimit(10))
//	if err != nil {
//	    return err
//	}
//	if err := s.Rebuild(ctx); err != nil {
//	    return err
//	}
//	suggestions, err := s.Suggest(ctx, "wooden bo")
//	link, err := s.Select(ctx, suggestions[0], "")
//
// Selecting a block that has no id yet generates one, writes it back to the
// note through the Source, and links to it.
package suggest
