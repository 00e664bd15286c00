package recency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) string { return s }

func TestBoost(t *testing.T) {
	t.Run("recorded item moves to front", func(t *testing.T) {
		l, err := NewLedger(WithClock(fixedClock(1000)))
		require.NoError(t, err)
		l.Record("B")

		assert.Equal(t, []string{"B", "A", "C"}, Boost(l, []string{"A", "B", "C"}, identity))
	})

	t.Run("recent items ordered newest first, rest keep order", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"C": 3000, "A": 1000})
		require.NoError(t, err)

		assert.Equal(t, []string{"C", "A", "B", "D"}, Boost(l, []string{"A", "B", "C", "D"}, identity))
	})

	t.Run("count limits boosted items", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"A": 3000, "B": 2000, "C": 1000})
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B", "C"}, BoostN(l, []string{"A", "B", "C"}, identity, 1))
	})

	t.Run("recent items past the cutoff keep their position", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"D": 4000, "C": 3000, "B": 2000, "A": 1000})
		require.NoError(t, err)

		items := []string{"A", "X", "B", "C", "D"}
		assert.Equal(t, []string{"D", "C", "B", "A", "X"}, Boost(l, items, identity))
		assert.Equal(t, []string{"D", "A", "X", "B", "C"}, BoostN(l, items, identity, 1))
	})

	t.Run("no recent items returns input unchanged", func(t *testing.T) {
		l, err := NewLedger()
		require.NoError(t, err)

		items := []string{"A", "B"}
		boosted := Boost(l, items, identity)
		assert.Equal(t, items, boosted)
		assert.Same(t, &items[0], &boosted[0])
	})

	t.Run("non-positive count returns input unchanged", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"B": 1000})
		require.NoError(t, err)

		items := []string{"A", "B"}
		assert.Equal(t, items, BoostN(l, items, identity, 0))
		assert.Equal(t, items, BoostN(l, items, identity, -1))
	})

	t.Run("nil ledger", func(t *testing.T) {
		items := []string{"A", "B"}
		assert.Equal(t, items, Boost(nil, items, identity))
	})

	t.Run("empty input", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"A": 1000})
		require.NoError(t, err)
		assert.Empty(t, Boost(l, []string{}, identity))
	})

	t.Run("boosting does not modify input", func(t *testing.T) {
		l, err := FromSnapshot(map[string]int64{"C": 1000})
		require.NoError(t, err)

		items := []string{"A", "B", "C"}
		_ = Boost(l, items, identity)
		assert.Equal(t, []string{"A", "B", "C"}, items)
	})

	t.Run("works on structured items", func(t *testing.T) {
		type note struct {
			title string
			score float64
		}
		l, err := FromSnapshot(map[string]int64{"Lamp": 1000})
		require.NoError(t, err)

		items := []note{{"Box", 1.0}, {"Lamp", 0.5}}
		boosted := Boost(l, items, func(n note) string { return n.title })
		require.Len(t, boosted, 2)
		assert.Equal(t, "Lamp", boosted[0].title)
		assert.Equal(t, "Box", boosted[1].title)
	})
}
