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

package recency

import "sort"

// Boost moves up to DefaultBoostCount recently selected items to the front.
// See BoostN.
func Boost[T any](l *Ledger, items []T, titleOf func(T) string) []T {
	return BoostN(l, items, titleOf, DefaultBoostCount)
}

// BoostN moves the count most recently selected items to the front of items,
// newest first. Every other item, recent ones past the cutoff included,
// follows in its original relative order. When no item appears in the ledger
// the input slice itself is returned.
func BoostN[T any](l *Ledger, items []T, titleOf func(T) string, count int) []T {
	if l == nil || count <= 0 || len(items) == 0 {
		return items
	}

	// Titles are extracted before locking so titleOf may use the ledger.
	itemTitles := make([]string, len(items))
	for i, item := range items {
		itemTitles[i] = titleOf(item)
	}

	type hit struct {
		index int
		stamp int64
	}

	var hits []hit
	l.mu.RLock()
	for i, title := range itemTitles {
		if stamp, ok := l.entries[title]; ok {
			hits = append(hits, hit{index: i, stamp: stamp})
		}
	}
	l.mu.RUnlock()

	if len(hits) == 0 {
		return items
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].stamp > hits[j].stamp
	})
	if len(hits) > count {
		hits = hits[:count]
	}

	boosted := make([]bool, len(items))
	out := make([]T, 0, len(items))
	for _, h := range hits {
		boosted[h.index] = true
		out = append(out, items[h.index])
	}
	for i, item := range items {
		if !boosted[i] {
			out = append(out, item)
		}
	}
	return out
}
