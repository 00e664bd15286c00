package storage

import "context"

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close releases resources held by the repository.
	Close() error
}

// LedgerRepository persists recency ledger snapshots.
type LedgerRepository interface {
	Repository

	// LoadLedger returns the stored title-to-milliseconds mapping.
	// An empty store yields an empty, non-nil map.
	LoadLedger(ctx context.Context) (map[string]int64, error)

	// SaveLedger replaces the stored mapping with snapshot atomically.
	SaveLedger(ctx context.Context, snapshot map[string]int64) error
}
