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

package core

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Title must not be empty or whitespace only
//   - Path must not be empty
//
// NOT validated:
//   - Aliases (empty aliases simply never match)
//   - Exists (placeholders are scored like real documents)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("%w: %w (path %q)", ErrInvalidDocument, ErrEmptyTitle, doc.Path)
	}

	if doc.Path == "" {
		return fmt.Errorf("%w: %w (title %q)", ErrInvalidDocument, ErrEmptyPath, doc.Title)
	}

	return nil
}
