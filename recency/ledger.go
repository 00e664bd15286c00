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

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

const (
	// DefaultCapacity is the maximum number of titles a ledger remembers.
	DefaultCapacity = 1000

	// DefaultBoostCount is the number of recent items Boost moves to the front.
	DefaultBoostCount = 3
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Entry is a single ledger record.
type Entry struct {
	Title string
	Stamp int64 // Unix milliseconds of the last selection
}

// Ledger remembers when each title was last selected.
type Ledger struct {
	mu       sync.RWMutex
	entries  map[string]int64
	newest   int64
	capacity int
	clock    Clock
}

// Option configures a Ledger.
type Option func(*Ledger) error

// WithClock sets the clock used by Record.
// Default is time.Now.
func WithClock(clock Clock) Option {
	return func(l *Ledger) error {
		if clock == nil {
			clock = time.Now
		}
		l.clock = clock
		return nil
	}
}

// WithCapacity sets the maximum number of entries.
// Default is DefaultCapacity.
func WithCapacity(capacity int) Option {
	return func(l *Ledger) error {
		if capacity < 1 {
			return ErrInvalidCapacity
		}
		l.capacity = capacity
		return nil
	}
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		entries:  make(map[string]int64),
		capacity: DefaultCapacity,
		clock:    time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// FromSnapshot creates a ledger hydrated from a title-to-milliseconds mapping.
// A nil or empty snapshot yields an empty ledger. Snapshots larger than the
// capacity keep only their newest entries.
func FromSnapshot(snapshot map[string]int64, opts ...Option) (*Ledger, error) {
	l, err := NewLedger(opts...)
	if err != nil {
		return nil, err
	}
	l.Restore(snapshot)
	return l, nil
}

// Record marks title as selected now, replacing any earlier stamp, and evicts
// the oldest entries once the ledger grows past its capacity.
//
// Stamps are strictly increasing within a ledger: when the clock has not moved
// past the newest stamp the new one is placed right after it, so the stored
// stamp can be later than the value the clock returned.
func (l *Ledger) Record(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	now := l.clock().UnixMilli()
	if now <= l.newest {
		now = l.newest + 1
	}
	l.newest = now
	l.entries[title] = now

	if len(l.entries) > l.capacity {
		l.prune()
	}
}

// Timestamp returns the stamp recorded for title.
func (l *Ledger) Timestamp(title string) (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stamp, ok := l.entries[title]
	return stamp, ok
}

// Len returns the number of titles in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of titles kept.
func (l *Ledger) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.capacity < 1 {
		return DefaultCapacity
	}
	return l.capacity
}

// Entries returns all entries, most recent first.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedEntries(l.entries)
}

// Snapshot returns a copy of the ledger as a title-to-milliseconds mapping.
func (l *Ledger) Snapshot() map[string]int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snapshot := make(map[string]int64, len(l.entries))
	for title, stamp := range l.entries {
		snapshot[title] = stamp
	}
	return snapshot
}

// Restore replaces the ledger contents with snapshot.
func (l *Ledger) Restore(snapshot map[string]int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	l.entries = make(map[string]int64, len(snapshot))
	l.newest = 0
	for title, stamp := range snapshot {
		l.entries[title] = stamp
		if stamp > l.newest {
			l.newest = stamp
		}
	}
	if len(l.entries) > l.capacity {
		l.prune()
	}
}

// MarshalJSON encodes the ledger as a {"title": millis} object.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}

// UnmarshalJSON replaces the ledger contents from a {"title": millis} object.
// JSON null yields an empty ledger.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var snapshot map[string]int64
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	l.Restore(snapshot)
	return nil
}

// init fills in defaults for a zero-value Ledger. Must be called with lock held.
func (l *Ledger) init() {
	if l.entries == nil {
		l.entries = make(map[string]int64)
	}
	if l.capacity < 1 {
		l.capacity = DefaultCapacity
	}
	if l.clock == nil {
		l.clock = time.Now
	}
}

// prune keeps the capacity newest entries. Must be called with lock held.
func (l *Ledger) prune() {
	sorted := sortedEntries(l.entries)
	for _, evicted := range sorted[l.capacity:] {
		delete(l.entries, evicted.Title)
	}
}

// sortedEntries orders entries newest first, breaking ties by title.
func sortedEntries(entries map[string]int64) []Entry {
	sorted := make([]Entry, 0, len(entries))
	for title, stamp := range entries {
		sorted = append(sorted, Entry{Title: title, Stamp: stamp})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Stamp != sorted[j].Stamp {
			return sorted[i].Stamp > sorted[j].Stamp
		}
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}
