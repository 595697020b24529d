package balance

import (
	"context"
	"testing"
	"time"

	"liquidator/core"
	"liquidator/internal/memstore"
	"liquidator/service/token"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	traceID = "5f0e8c1d-2b7a-4d3e-9a61-0c5b8f7d2e44"
	account = "3d2b6c31-0f8e-4a52-8b1d-6e7f9a0c1b23"
)

var usdc = core.Token{
	CurrencyID: 3,
	Symbol:     "USDC",
	AssetID:    "9b180ab6-6abe-3dc0-a13f-04169eb34bfa",
	Decimals:   6,
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func setup() (core.IBalanceService, *memstore.Balances) {
	balances := memstore.NewBalances()
	tokens := token.New(memstore.NewTokens(usdc), memstore.NewRates())
	return New(balances, tokens), balances
}

func activeContext(currencies ...uint16) *core.AccountContext {
	c := &core.AccountContext{Account: account, Version: 1}
	for _, id := range currencies {
		_ = c.SetActiveCurrency(id, true, core.ActiveInBalances)
	}

	return c
}

func newSettlement() *core.Settlement {
	return core.NewSettlement(traceID, time.Unix(1700000000, 0))
}

func TestLoadBalanceState(t *testing.T) {
	ctx := context.Background()
	s, balances := setup()
	balances.Put(core.Balance{Account: account, CurrencyID: 3, CashBalance: d(1000), NTokenBalance: d(20)})

	state, err := s.LoadBalanceState(ctx, account, 3, activeContext(3))
	require.NoError(t, err)
	assert.Equal(t, "1000", state.StoredCashBalance.String())
	assert.Equal(t, "20", state.StoredNTokenBalance.String())
	assert.EqualValues(t, 1, state.Version)

	state, err = s.LoadBalanceState(ctx, account, 3, activeContext())
	require.NoError(t, err)
	assert.True(t, state.StoredCashBalance.IsZero(), "inactive currency holds nothing")
	assert.EqualValues(t, 1, state.Version)

	_, err = s.LoadBalanceState(ctx, account, 0, activeContext())
	assert.Equal(t, core.ErrInvalidCurrency, errors.Cause(err))
}

func TestFinalizeCredit(t *testing.T) {
	ctx := context.Background()
	s, _ := setup()
	settlement := newSettlement()
	accountContext := activeContext()

	state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
	require.NoError(t, err)
	state.NetCashChange = d(500)
	state.NetNTokenTransfer = d(7)

	require.NoError(t, s.Finalize(ctx, settlement, state, account, accountContext, false))

	staged := settlement.Balances()
	require.Len(t, staged, 1)
	assert.Equal(t, "500", staged[0].CashBalance.String())
	assert.Equal(t, "7", staged[0].NTokenBalance.String())
	assert.True(t, accountContext.IsActiveInBalances(3))
	assert.Zero(t, accountContext.HasDebt)
	assert.Len(t, settlement.AccountContexts(), 1)
	assert.Empty(t, settlement.Transfers())
}

func TestFinalizeDebtFlag(t *testing.T) {
	ctx := context.Background()
	s, _ := setup()
	settlement := newSettlement()
	accountContext := activeContext()

	state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
	require.NoError(t, err)
	state.NetCashChange = d(-10)

	require.NoError(t, s.Finalize(ctx, settlement, state, account, accountContext, false))
	assert.Equal(t, core.HasCashDebt, accountContext.HasDebt&core.HasCashDebt)
}

func TestFinalizeOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := setup()
	settlement := newSettlement()
	accountContext := activeContext()

	state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
	require.NoError(t, err)
	state.NetCashChange = d(1)
	require.NoError(t, s.Finalize(ctx, settlement, state, account, accountContext, false))

	err = s.Finalize(ctx, settlement, state, account, accountContext, false)
	assert.Equal(t, core.ErrBalanceAlreadyFinalized, errors.Cause(err))
}

func TestFinalizeWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("rounds to token precision", func(t *testing.T) {
		s, _ := setup()
		settlement := newSettlement()
		accountContext := activeContext()

		state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
		require.NoError(t, err)
		state.NetCashChange = d(123456789)
		state.NetAssetTransferInternalPrecision = d(-123456789)

		require.NoError(t, s.Finalize(ctx, settlement, state, account, accountContext, false))
		assert.Equal(t, "-123456700", state.NetAssetTransferInternalPrecision.String())
		assert.Equal(t, "89", settlement.Balances()[0].CashBalance.String())

		transfers := settlement.Transfers()
		require.Len(t, transfers, 1)
		assert.Equal(t, "-1234567", transfers[0].Amount.String())
		assert.Equal(t, core.TransferStatusPending, transfers[0].Status)
	})

	t.Run("cannot overdraw", func(t *testing.T) {
		s, balances := setup()
		balances.Put(core.Balance{Account: account, CurrencyID: 3, CashBalance: d(100)})
		settlement := newSettlement()
		accountContext := activeContext(3)

		state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
		require.NoError(t, err)
		state.NetAssetTransferInternalPrecision = d(-101)

		err = s.Finalize(ctx, settlement, state, account, accountContext, false)
		assert.Equal(t, core.ErrNegativeWithdraw, errors.Cause(err))
		assert.Empty(t, settlement.Balances())
		assert.Empty(t, settlement.Transfers())
	})

	t.Run("full withdraw deactivates currency", func(t *testing.T) {
		s, balances := setup()
		balances.Put(core.Balance{Account: account, CurrencyID: 3, CashBalance: d(100)})
		settlement := newSettlement()
		accountContext := activeContext(3)

		state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
		require.NoError(t, err)
		state.NetAssetTransferInternalPrecision = d(-100)

		require.NoError(t, s.Finalize(ctx, settlement, state, account, accountContext, false))
		assert.True(t, settlement.Balances()[0].CashBalance.IsZero())
		assert.False(t, accountContext.IsActiveInBalances(3))
	})
}

func TestFinalizeNegativeNToken(t *testing.T) {
	ctx := context.Background()
	s, _ := setup()
	settlement := newSettlement()
	accountContext := activeContext()

	state, err := s.LoadBalanceState(ctx, account, 3, accountContext)
	require.NoError(t, err)
	state.NetNTokenTransfer = d(-1)

	err = s.Finalize(ctx, settlement, state, account, accountContext, false)
	assert.Equal(t, core.ErrNegativeNTokenBalance, errors.Cause(err))
	assert.Empty(t, settlement.Balances())
}
