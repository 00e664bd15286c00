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

// Package analysis turns raw text into comparable word forms.
//
// Tokenize splits text into lowercase word tokens over the Latin and Cyrillic
// alphabets. A Stemmer reduces one token to one or more canonical stems;
// English and Russian wrap the Snowball algorithms and Composite unions the
// output of several stemmers so a mixed-language corpus can be searched with a
// single capability:
//
//	stemmer := analysis.NewComposite(analysis.Russian(), analysis.English())
//	stems := stemmer.Stem("коробки") // ["коробк"]
//
// A Composite with no stemmers yields no stems. Callers treat that as a
// degraded mode where only literal comparisons can match.
package analysis
