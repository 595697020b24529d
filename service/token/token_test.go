package token

import (
	"context"
	"testing"
	"time"

	"liquidator/core"
	"liquidator/internal/memstore"
	"liquidator/pkg/number"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	traceID = "0b4c5a4e-3a43-4f8f-9a4e-2b4f0c1a6d11"
	account = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"
)

var (
	cDAI = core.Token{
		CurrencyID:         2,
		Symbol:             "cDAI",
		AssetID:            "a1a7d7d1-6c3b-3f4f-8b0e-7c2c0d3b0a01",
		UnderlyingAssetID:  "b2b8e8e2-7d4c-3a5a-9c1f-8d3d1e4c1b02",
		Decimals:           8,
		UnderlyingDecimals: 18,
	}

	usdt = core.Token{
		CurrencyID:     3,
		Symbol:         "USDT",
		AssetID:        "c3c9f9f3-8e5d-3b6b-8d20-9e4e2f5d2c03",
		Decimals:       6,
		HasTransferFee: true,
	}
)

func newService() (core.ITokenService, *memstore.Rates) {
	rates := memstore.NewRates()
	_ = rates.SaveAssetRate(context.Background(), &core.AssetRate{
		CurrencyID:         cDAI.CurrencyID,
		Rate:               decimal.NewFromInt(2).Mul(number.Pow10(26)),
		UnderlyingDecimals: number.Pow10(18),
	})

	return New(memstore.NewTokens(cDAI, usdt), rates), rates
}

func TestGetAssetToken(t *testing.T) {
	ctx := context.Background()
	s, _ := newService()

	token, err := s.GetAssetToken(ctx, cDAI.CurrencyID)
	require.NoError(t, err)
	assert.Equal(t, "cDAI", token.Symbol)

	_, err = s.GetAssetToken(ctx, 9)
	assert.Equal(t, core.ErrTokenNotFound, errors.Cause(err))
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	s, _ := newService()
	settlement := core.NewSettlement(traceID, time.Unix(1700000000, 0))

	amount, err := s.Transfer(ctx, settlement, &cDAI, account, decimal.NewFromInt(-500))
	require.NoError(t, err)
	assert.Equal(t, "-500", amount.String())

	amount, err = s.Transfer(ctx, settlement, &usdt, account, decimal.NewFromInt(-700))
	require.NoError(t, err)
	assert.Equal(t, "-700", amount.String())

	_, err = s.Transfer(ctx, settlement, &cDAI, account, decimal.Zero)
	require.NoError(t, err)

	transfers := settlement.Transfers()
	require.Len(t, transfers, 2)
	assert.Equal(t, core.TransferStatusPending, transfers[0].Status)
	assert.Equal(t, core.TransferStatusPending, transfers[1].Status)
	assert.Equal(t, usdt.AssetID, transfers[1].AssetID)
	assert.NotEqual(t, transfers[0].TraceID, transfers[1].TraceID)
	assert.Equal(t, traceID, transfers[1].SettleID)
}

func TestTransferRejectsPull(t *testing.T) {
	ctx := context.Background()
	s, _ := newService()
	settlement := core.NewSettlement(traceID, time.Unix(1700000000, 0))

	for _, token := range []*core.Token{&cDAI, &usdt} {
		_, err := s.Transfer(ctx, settlement, token, account, decimal.NewFromInt(1))
		assert.Equal(t, core.ErrPullUnsupported, errors.Cause(err), token.Symbol)
	}

	assert.Empty(t, settlement.Transfers())
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	s, _ := newService()
	settlement := core.NewSettlement(traceID, time.Unix(1700000000, 0))

	// 5000 cDAI at 0.02 DAI each
	internal, err := s.Redeem(ctx, settlement, &cDAI, account, decimal.NewFromInt(5000).Mul(number.Pow10(8)))
	require.NoError(t, err)
	assert.Equal(t, decimal.NewFromInt(-5000).Mul(number.Pow10(8)).String(), internal.String())

	transfers := settlement.Transfers()
	require.Len(t, transfers, 1)
	assert.True(t, transfers[0].Redeem)
	assert.Equal(t, cDAI.UnderlyingAssetID, transfers[0].AssetID)
	assert.Equal(t, decimal.NewFromInt(-100).Mul(number.Pow10(18)).String(), transfers[0].Amount.String())

	_, err = s.Redeem(ctx, settlement, &usdt, account, decimal.NewFromInt(1))
	assert.Equal(t, core.ErrRateNotFound, errors.Cause(err))
}
