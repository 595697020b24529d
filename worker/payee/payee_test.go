package payee

import (
	"context"
	"testing"
	"time"

	"liquidator/core"
	"liquidator/internal/memstore"
	"liquidator/service/balance"
	"liquidator/service/token"
	"liquidator/service/wallet"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	payer     = "1c7e4f2a-8b3d-4e6f-9a0b-2c4d6e8f0a1b"
	usdcAsset = "9b180ab6-6abe-3dc0-a13f-04169eb34bfa"
	ethAsset  = "43d61dcd-e413-450d-80b8-101d5e903357"
)

func newPayee() (*Payee, *memstore.Settlements) {
	settlements := memstore.NewSettlements()
	tokens := memstore.NewTokens(
		core.Token{CurrencyID: 1, Symbol: "cUSDC", AssetID: usdcAsset, Decimals: 8},
		core.Token{CurrencyID: 2, Symbol: "ETH", AssetID: ethAsset, Decimals: 18},
	)

	tokenz := token.New(tokens, memstore.NewRates())
	w := New(
		nil,
		nil,
		settlements.Transfers,
		settlements.Accounts,
		tokenz,
		balance.New(settlements.Balances, tokenz),
		settlements,
	)

	return w, settlements
}

func memo(t *testing.T, currencyID uint16) string {
	s, err := wallet.EncodeMemo(wallet.Memo{SettleID: "deposit", CurrencyID: currencyID})
	require.NoError(t, err)
	return s
}

func payment(id, assetID, amount, memo string) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: id,
		TraceID:    id,
		OpponentID: payer,
		AssetID:    assetID,
		Amount:     decimal.RequireFromString(amount),
		Memo:       memo,
		CreatedAt:  time.Unix(1700000000, 0),
	}
}

func cash(t *testing.T, settlements *memstore.Settlements, currencyID uint16) string {
	b, err := settlements.Balances.Find(context.Background(), payer, currencyID)
	require.NoError(t, err)
	return b.CashBalance.String()
}

func TestCreditPayment(t *testing.T) {
	ctx := context.Background()
	w, settlements := newPayee()

	require.NoError(t, w.handleSnapshots(ctx, []*core.Snapshot{
		payment("s1", usdcAsset, "0.5", memo(t, 1)),
		payment("s2", ethAsset, "0.5", memo(t, 2)),
		payment("s3", usdcAsset, "0.25", memo(t, 1)),
	}))

	assert.Equal(t, "75000000", cash(t, settlements, 1))
	// 18 decimals scaled down to internal precision
	assert.Equal(t, "50000000", cash(t, settlements, 2))

	accountContext, err := settlements.Accounts.Find(ctx, payer)
	require.NoError(t, err)
	assert.True(t, accountContext.IsActiveInBalances(1))
	assert.True(t, accountContext.IsActiveInBalances(2))

	transfers, err := settlements.Transfers.ListBySettleID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "50000000", transfers[0].Amount.String())
	assert.Equal(t, core.TransferStatusDone, transfers[0].Status)

	pending, err := settlements.Transfers.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCreditPaymentOnce(t *testing.T) {
	ctx := context.Background()
	w, settlements := newPayee()
	s := payment("s1", usdcAsset, "0.5", memo(t, 1))

	require.NoError(t, w.handleSnapshots(ctx, []*core.Snapshot{s, s}))
	require.NoError(t, w.handleSnapshots(ctx, []*core.Snapshot{s}))

	assert.Equal(t, "50000000", cash(t, settlements, 1))
	assert.Len(t, settlements.Transfers.All(), 1)
}

func TestRefundPayment(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *core.Snapshot
	}{
		{"invalid memo", payment("s1", usdcAsset, "0.5", "hello")},
		{"unknown currency", payment("s1", usdcAsset, "0.5", memo(t, 9))},
		{"asset does not match the currency", payment("s1", ethAsset, "0.5", memo(t, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			w, settlements := newPayee()

			require.NoError(t, w.handleSnapshot(ctx, tt.snapshot))
			assert.Equal(t, "0", cash(t, settlements, 1))
			assert.Equal(t, "0", cash(t, settlements, 2))

			pending, err := settlements.Transfers.ListPending(ctx, 10)
			require.NoError(t, err)
			require.Len(t, pending, 1)
			assert.Equal(t, payer, pending[0].OpponentID)
			assert.Equal(t, tt.snapshot.AssetID, pending[0].AssetID)
			assert.Equal(t, "-50000000", pending[0].Amount.String())
			assert.Equal(t, "s1", pending[0].SettleID)

			// handled once
			require.NoError(t, w.handleSnapshot(ctx, tt.snapshot))
			assert.Len(t, settlements.Transfers.All(), 1)
		})
	}
}

func TestSkipSnapshot(t *testing.T) {
	ctx := context.Background()
	w, settlements := newPayee()

	payout := payment("s1", usdcAsset, "-0.5", memo(t, 1))
	external := payment("s2", usdcAsset, "0.5", memo(t, 1))
	external.OpponentID = ""

	require.NoError(t, w.handleSnapshots(ctx, []*core.Snapshot{payout, external}))
	assert.Empty(t, settlements.Transfers.All())
	assert.Equal(t, "0", cash(t, settlements, 1))
}

func TestCreditPaymentRetriesFailedCommit(t *testing.T) {
	ctx := context.Background()
	w, settlements := newPayee()
	s := payment("s1", usdcAsset, "0.5", memo(t, 1))

	settlements.FailAfter = 1
	err := w.handleSnapshot(ctx, s)
	assert.Equal(t, memstore.ErrInjectedFault, errors.Cause(err))
	assert.Equal(t, "0", cash(t, settlements, 1))
	assert.Empty(t, settlements.Transfers.All())

	settlements.FailAfter = -1
	require.NoError(t, w.handleSnapshot(ctx, s))
	assert.Equal(t, "50000000", cash(t, settlements, 1))
}
