package token

import (
	"context"
	"testing"

	"liquidator/core"
	"liquidator/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	core.ITokenStore
	finds int
}

func (s *countingStore) Find(ctx context.Context, currencyID uint16) (*core.Token, error) {
	s.finds++
	return s.ITokenStore.Find(ctx, currencyID)
}

func TestCacheFind(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{ITokenStore: memstore.NewTokens(core.Token{ID: 1, CurrencyID: 1, Symbol: "cUSDC", Decimals: 8})}
	cache := Cache(store)

	for i := 0; i < 3; i++ {
		token, err := cache.Find(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "cUSDC", token.Symbol)
	}
	assert.Equal(t, 1, store.finds)

	// unknown currencies are not cached
	for i := 0; i < 2; i++ {
		token, err := cache.Find(ctx, 9)
		require.NoError(t, err)
		assert.Zero(t, token.ID)
	}
	assert.Equal(t, 3, store.finds)
}

func TestCacheSaveInvalidates(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{ITokenStore: memstore.NewTokens(core.Token{ID: 1, CurrencyID: 1, Symbol: "cUSDC", Decimals: 8})}
	cache := Cache(store)

	_, err := cache.Find(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, cache.Save(ctx, &core.Token{ID: 1, CurrencyID: 1, Symbol: "cUSDC", Decimals: 6}))

	token, err := cache.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(6), token.Decimals)
	assert.Equal(t, 2, store.finds)
}
