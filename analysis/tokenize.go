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

package analysis

import "strings"

// Tokenize lowercases text and splits it into word tokens.
//
// A token is a maximal run of ASCII letters, Cyrillic letters (including ё)
// and digits. Everything else, hyphens and punctuation included, separates
// tokens. The result is never nil.
func Tokenize(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), isSeparator)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return false
	case r >= '0' && r <= '9':
		return false
	case r >= 'а' && r <= 'я', r == 'ё':
		return false
	}
	return true
}
