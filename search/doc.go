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

// Package search provides morphological full-text search over note titles and aliases.
//
// The Index type ranks documents against a short query by combining three
// kinds of word matching:
//   - Stemmed matching for every query word but the last
//   - Prefix matching for the last word, so partially typed words still match
//   - Stemmed matching for the last word once it has been typed completely
//
// Word order is irrelevant. Each document is scored over its title and every
// alias; the best source wins, with the title preferred on ties. Scores mix
// the fraction of query words found, the fraction of source words matched and
// a small bonus for title matches.
//
// An Index is immutable after construction and safe for concurrent searches.
// Rebuild a new Index when the corpus changes.
package search
