package ports

import (
	"context"
	"testing"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore implementation
// adheres to the defined interface contract. The store must be empty when passed in.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()

	t.Run("Empty List", func(t *testing.T) {
		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Append keeps insertion order", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, domain.Record{Input: "abc", Output: []int{2}}))
		require.NoError(t, store.Append(ctx, domain.Record{Input: "dz_a_aazzaaa", Output: []int{28, 53, 1}}))
		require.NoError(t, store.Append(ctx, domain.Record{Input: "3,1,2", Output: []int{}}))

		records, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "abc", records[0].Input)
		assert.Equal(t, []int{2}, records[0].Output)
		assert.Equal(t, "dz_a_aazzaaa", records[1].Input)
		assert.Equal(t, []int{28, 53, 1}, records[1].Output)
		assert.Equal(t, "3,1,2", records[2].Input)
		assert.Empty(t, records[2].Output)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))

		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
