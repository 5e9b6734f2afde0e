package whitelist

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

func TestMemoryStoreAddRemove(t *testing.T) {
	ctx := context.Background()
	terms := testTerms()

	t.Run("add then has", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Add(ctx, terms))

		present, err := store.Has(ctx, terms.Key())
		require.NoError(t, err)
		assert.True(t, present)
	})

	t.Run("duplicate add fails", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Add(ctx, terms))

		err := store.Add(ctx, terms)
		var dupErr *domain.AlreadyWhitelistedError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, terms.Licensee, dupErr.Licensee)
	})

	t.Run("remove then has", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Add(ctx, terms))

		require.NoError(t, store.Remove(ctx, terms))

		present, err := store.Has(ctx, terms.Key())
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("remove of absent entry fails", func(t *testing.T) {
		store := NewMemoryStore()

		err := store.Remove(ctx, terms)
		var missErr *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missErr)
		assert.Equal(t, terms.ParentIPID, missErr.ParentIPID)
	})

	t.Run("remove never consults the wildcard key", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Add(ctx, terms.Wildcard()))

		// The wildcard entry exists, but removing the exact tuple still
		// fails because the exact key is absent.
		err := store.Remove(ctx, terms)
		var missErr *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missErr)

		present, err := store.Has(ctx, terms.Wildcard().Key())
		require.NoError(t, err)
		assert.True(t, present)
	})

	t.Run("add remove add behaves like a fresh add", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Add(ctx, terms))
		require.NoError(t, store.Remove(ctx, terms))
		require.NoError(t, store.Add(ctx, terms))

		present, err := store.Has(ctx, terms.Key())
		require.NoError(t, err)
		assert.True(t, present)
	})
}

func TestMemoryStoreAddBatch(t *testing.T) {
	ctx := context.Background()

	batch := func() []Terms {
		entries := make([]Terms, 3)
		for i := range entries {
			entries[i] = testTerms()
			entries[i].LicenseTermsID = uint64(i + 1)
		}
		return entries
	}

	t.Run("all entries land", func(t *testing.T) {
		store := NewMemoryStore()
		entries := batch()

		require.NoError(t, store.AddBatch(ctx, entries))

		for _, e := range entries {
			present, err := store.Has(ctx, e.Key())
			require.NoError(t, err)
			assert.True(t, present)
		}
	})

	t.Run("conflict with existing entry aborts the whole batch", func(t *testing.T) {
		store := NewMemoryStore()
		entries := batch()
		require.NoError(t, store.Add(ctx, entries[2]))

		err := store.AddBatch(ctx, entries)
		var dupErr *domain.AlreadyWhitelistedError
		require.ErrorAs(t, err, &dupErr)

		// Nothing else from the batch was applied.
		for _, e := range entries[:2] {
			present, hasErr := store.Has(ctx, e.Key())
			require.NoError(t, hasErr)
			assert.False(t, present)
		}
	})

	t.Run("duplicate within the batch aborts the whole batch", func(t *testing.T) {
		store := NewMemoryStore()
		entries := batch()
		entries = append(entries, entries[0])

		err := store.AddBatch(ctx, entries)
		var dupErr *domain.AlreadyWhitelistedError
		require.ErrorAs(t, err, &dupErr)

		for _, e := range entries[:3] {
			present, hasErr := store.Has(ctx, e.Key())
			require.NoError(t, hasErr)
			assert.False(t, present)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.AddBatch(ctx, nil))

		listed, err := store.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestMemoryStoreRemoveBatch(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*MemoryStore, []Terms) {
		t.Helper()
		store := NewMemoryStore()
		entries := make([]Terms, 3)
		for i := range entries {
			entries[i] = testTerms()
			entries[i].LicenseTermsID = uint64(i + 1)
			require.NoError(t, store.Add(ctx, entries[i]))
		}
		return store, entries
	}

	t.Run("all entries removed", func(t *testing.T) {
		store, entries := seed(t)

		require.NoError(t, store.RemoveBatch(ctx, entries))

		for _, e := range entries {
			present, err := store.Has(ctx, e.Key())
			require.NoError(t, err)
			assert.False(t, present)
		}
	})

	t.Run("one missing entry aborts the whole batch", func(t *testing.T) {
		store, entries := seed(t)
		missing := testTerms()
		missing.LicenseTermsID = 99

		err := store.RemoveBatch(ctx, append(entries, missing))
		var missErr *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missErr)
		assert.Equal(t, uint64(99), missErr.LicenseTermsID)

		// The seeded entries all survive.
		for _, e := range entries {
			present, hasErr := store.Has(ctx, e.Key())
			require.NoError(t, hasErr)
			assert.True(t, present)
		}
	})

	t.Run("same entry listed twice aborts the whole batch", func(t *testing.T) {
		store, entries := seed(t)

		err := store.RemoveBatch(ctx, []Terms{entries[0], entries[0]})
		var missErr *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missErr)

		present, hasErr := store.Has(ctx, entries[0].Key())
		require.NoError(t, hasErr)
		assert.True(t, present)
	})
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	entries := make([]Terms, 5)
	for i := range entries {
		entries[i] = testTerms()
		entries[i].LicenseTermsID = uint64(i + 1)
		require.NoError(t, store.Add(ctx, entries[i]))
	}

	t.Run("full listing", func(t *testing.T) {
		listed, err := store.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, listed, 5)
	})

	t.Run("stable order across calls", func(t *testing.T) {
		first, err := store.List(ctx, 0, 0)
		require.NoError(t, err)
		second, err := store.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("pagination windows never overlap", func(t *testing.T) {
		page1, err := store.List(ctx, 2, 0)
		require.NoError(t, err)
		page2, err := store.List(ctx, 2, 2)
		require.NoError(t, err)
		page3, err := store.List(ctx, 2, 4)
		require.NoError(t, err)

		assert.Len(t, page1, 2)
		assert.Len(t, page2, 2)
		assert.Len(t, page3, 1)

		seen := map[common.Hash]bool{}
		for _, page := range [][]Terms{page1, page2, page3} {
			for _, e := range page {
				key := e.Key()
				assert.False(t, seen[key])
				seen[key] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("offset past the end returns empty", func(t *testing.T) {
		listed, err := store.List(ctx, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}
