package priceoracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"liquidator/core"
	"liquidator/internal/memstore"
	"liquidator/pkg/number"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle map[string]string

func (o fakeOracle) PullPriceTicker(_ context.Context, assetID string, _ time.Time) (*core.PriceTicker, error) {
	price, ok := o[assetID]
	if !ok {
		return nil, errors.New("not found")
	}

	return &core.PriceTicker{Symbol: assetID, Price: number.Decimal(price)}, nil
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	rates := memstore.NewRates()
	for _, id := range []uint16{1, 2, 3} {
		require.NoError(t, rates.SaveETHRate(ctx, &core.ETHRate{
			CurrencyID:   id,
			RateDecimals: number.Pow10(18),
			Rate:         number.Pow10(18),
		}))
	}

	tokens := memstore.NewTokens(
		core.Token{CurrencyID: 1, AssetID: "ceth", UnderlyingAssetID: "eth"},
		core.Token{CurrencyID: 2, AssetID: "cusdc", UnderlyingAssetID: "usdc"},
		core.Token{CurrencyID: 3, AssetID: "cdai", UnderlyingAssetID: "dai"},
	)

	oracle := fakeOracle{"eth": "2000", "usdc": "1"}
	w := New(rates, tokens, oracle, nil, clock.NewMock(), core.PriceOracle{ETHAssetID: "eth"})

	require.NoError(t, w.refresh(ctx, time.Now()))

	eth, err := rates.FindETHRate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, number.Pow10(18).String(), eth.Rate.String())
	assert.Zero(t, eth.Version, "unchanged rate is not written")

	usdc, err := rates.FindETHRate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "500000000000000", usdc.Rate.String())
	assert.Equal(t, int64(1), usdc.Version)

	dai, err := rates.FindETHRate(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, number.Pow10(18).String(), dai.Rate.String(), "missing ticker keeps the old rate")
}

func TestRefreshWithoutETHPrice(t *testing.T) {
	w := New(memstore.NewRates(), memstore.NewTokens(), fakeOracle{}, nil, clock.NewMock(), core.PriceOracle{ETHAssetID: "eth"})
	assert.Error(t, w.refresh(context.Background(), time.Now()))
}
