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

package suggest

import "errors"

var (
	// ErrSourceRequired indicates that a document source is required but was not provided.
	ErrSourceRequired = errors.New("document source is required")

	// ErrLedgerRequired indicates that a recency ledger is required but was not provided.
	ErrLedgerRequired = errors.New("recency ledger is required")

	// ErrStemmerRequired indicates that a stemmer option was given a nil stemmer.
	ErrStemmerRequired = errors.New("stemmer is required")

	// ErrInvalidLimit indicates a suggestion limit below one.
	ErrInvalidLimit = errors.New("suggestion limit must be at least 1")

	// ErrInvalidBoostCount indicates a negative boost count.
	ErrInvalidBoostCount = errors.New("boost count must not be negative")

	// ErrIDGeneratorRequired indicates that an id generator option was given nil.
	ErrIDGeneratorRequired = errors.New("block id generator is required")

	// ErrBlockIDExhausted indicates that no unused block id could be generated.
	ErrBlockIDExhausted = errors.New("could not generate an unused block id")

	// ErrUnknownSuggestion indicates a Suggestion implementation from outside this package.
	ErrUnknownSuggestion = errors.New("unknown suggestion type")
)
