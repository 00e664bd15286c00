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

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

// Stemmer reduces a token to its canonical stems.
// Implementations must be deterministic and safe for concurrent use.
type Stemmer interface {
	// Stem returns the stems of a lowercase token. Language stemmers never
	// return an empty slice for a non-empty token.
	Stem(token string) []string
}

// Language names accepted by ForLanguages.
const (
	LanguageEnglish = "english"
	LanguageRussian = "russian"
)

// snowballStemmer adapts a Snowball stemming function to Stemmer.
type snowballStemmer struct {
	language  string
	stem      func(word string, stemStopWords bool) string
	normalize func(word string) string
}

var _ Stemmer = (*snowballStemmer)(nil)

// yoReplacer folds ё into е; the Russian Snowball rules only know the latter.
var yoReplacer = strings.NewReplacer("ё", "е", "Ё", "Е")

// English returns the Snowball English (Porter2) stemmer.
func English() Stemmer {
	return &snowballStemmer{language: LanguageEnglish, stem: english.Stem}
}

// Russian returns the Snowball Russian stemmer with ё normalization.
func Russian() Stemmer {
	return &snowballStemmer{
		language:  LanguageRussian,
		stem:      russian.Stem,
		normalize: yoReplacer.Replace,
	}
}

func (s *snowballStemmer) Stem(token string) []string {
	if token == "" {
		return []string{}
	}
	word := token
	if s.normalize != nil {
		word = s.normalize(word)
	}
	stemmed := s.stem(word, true)
	if stemmed == "" {
		stemmed = word
	}
	return []string{stemmed}
}

func (s *snowballStemmer) String() string {
	return s.language
}

// Composite unions the stems produced by a list of stemmers.
type Composite struct {
	stemmers []Stemmer
}

var _ Stemmer = (*Composite)(nil)

// NewComposite creates a Composite over the given stemmers, consulted in order.
func NewComposite(stemmers ...Stemmer) *Composite {
	return &Composite{stemmers: append([]Stemmer(nil), stemmers...)}
}

// Default returns the Russian+English composite used when nothing else is configured.
func Default() *Composite {
	return NewComposite(Russian(), English())
}

// ForLanguages builds a Composite from language names such as "russian" or "en".
func ForLanguages(languages ...string) (*Composite, error) {
	stemmers := make([]Stemmer, 0, len(languages))
	for _, lang := range languages {
		switch strings.ToLower(strings.TrimSpace(lang)) {
		case LanguageEnglish, "en":
			stemmers = append(stemmers, English())
		case LanguageRussian, "ru":
			stemmers = append(stemmers, Russian())
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
		}
	}
	return NewComposite(stemmers...), nil
}

// Stem returns the deduplicated union of every sub-stemmer's output in
// first-seen order. With no sub-stemmers the result is empty.
func (c *Composite) Stem(token string) []string {
	switch len(c.stemmers) {
	case 0:
		return []string{}
	case 1:
		return c.stemmers[0].Stem(token)
	}

	seen := make(map[string]struct{}, len(c.stemmers))
	stems := make([]string, 0, len(c.stemmers))
	for _, stemmer := range c.stemmers {
		for _, stem := range stemmer.Stem(token) {
			if _, ok := seen[stem]; ok {
				continue
			}
			seen[stem] = struct{}{}
			stems = append(stems, stem)
		}
	}
	return stems
}

// Len returns the number of composed stemmers.
func (c *Composite) Len() int {
	return len(c.stemmers)
}
