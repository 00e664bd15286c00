package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notefind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedgerRepository(t *testing.T) (storage.LedgerRepository, *Backend) {
	t.Helper()
	repo, backend, err := NewMemoryLedgerRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo, backend
}

func TestLedgerRepository_LoadEmpty(t *testing.T) {
	repo, _ := newTestLedgerRepository(t)

	snapshot, err := repo.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
}

func TestLedgerRepository_SaveAndLoad(t *testing.T) {
	repo, _ := newTestLedgerRepository(t)
	ctx := context.Background()

	want := map[string]int64{
		"Деревянная коробка": 1700000000000,
		"Lamp":               1700000000500,
		"notes: with colon":  42,
	}
	require.NoError(t, repo.SaveLedger(ctx, want))

	got, err := repo.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLedgerRepository_SaveReplaces(t *testing.T) {
	repo, _ := newTestLedgerRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveLedger(ctx, map[string]int64{"A": 1, "B": 2}))
	require.NoError(t, repo.SaveLedger(ctx, map[string]int64{"B": 5, "C": 3}))

	got, err := repo.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"B": 5, "C": 3}, got)

	t.Run("empty snapshot clears", func(t *testing.T) {
		require.NoError(t, repo.SaveLedger(ctx, nil))
		got, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLedgerRepository_FullLedger(t *testing.T) {
	repo, _ := newTestLedgerRepository(t)
	ctx := context.Background()

	want := make(map[string]int64, 1000)
	for i := 0; i < 1000; i++ {
		want[fmt.Sprintf("note-%04d", i)] = int64(i)
	}
	require.NoError(t, repo.SaveLedger(ctx, want))

	got, err := repo.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1000)
	assert.Equal(t, want, got)
}

func TestLedgerRepository_IgnoresOtherKeys(t *testing.T) {
	repo, backend := newTestLedgerRepository(t)
	ctx := context.Background()

	err := backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("other:key"), []byte("value")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	require.NoError(t, repo.SaveLedger(ctx, map[string]int64{"A": 1}))
	got, err := repo.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1}, got)
}

func TestLedgerRepository_CorruptValue(t *testing.T) {
	repo, backend := newTestLedgerRepository(t)

	err := backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeLedgerKey("A"), []byte{0xff, 0xff}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	_, err = repo.LoadLedger(context.Background())
	assert.ErrorIs(t, err, storage.ErrTruncatedData)
}

func TestLedgerRepository_CancelledContext(t *testing.T) {
	repo, _ := newTestLedgerRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadLedger(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.SaveLedger(ctx, map[string]int64{"A": 1}), context.Canceled)
}

func TestLedgerRepository_ClosedBackend(t *testing.T) {
	repo, backend, err := NewMemoryLedgerRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = repo.LoadLedger(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestLedgerRepository_CloseLeavesBackendOpen(t *testing.T) {
	repo, backend := newTestLedgerRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveLedger(ctx, map[string]int64{"A": 1}))
	require.NoError(t, repo.Close())
	assert.False(t, backend.IsClosed())

	again, err := NewLedgerRepository(backend)
	require.NoError(t, err)
	got, err := again.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1}, got)
}

func TestLedgerRepository_SaveOnClosedBackend(t *testing.T) {
	repo, backend, err := NewMemoryLedgerRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	assert.ErrorIs(t, repo.SaveLedger(context.Background(), map[string]int64{"A": 1}), storage.ErrStorageClosed)
}

func TestLedgerRepository_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewLedgerRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.SaveLedger(ctx, map[string]int64{"A": 1000}))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	repo, err = NewLedgerRepository(backend)
	require.NoError(t, err)

	got, err := repo.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 1000}, got)
}
