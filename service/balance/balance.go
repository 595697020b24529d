package balance

import (
	"context"

	"liquidator/core"
	"liquidator/pkg/liquidation"
	"liquidator/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// New new balance service
func New(balances core.IBalanceStore, tokens core.ITokenService) core.IBalanceService {
	return &balanceService{
		balances: balances,
		tokens:   tokens,
	}
}

type balanceService struct {
	balances core.IBalanceStore
	tokens   core.ITokenService
}

func (s *balanceService) LoadBalanceState(ctx context.Context, account string, currencyID uint16, accountContext *core.AccountContext) (*core.BalanceState, error) {
	if currencyID == 0 || currencyID > core.MaxCurrencyID {
		return nil, errors.Wrapf(core.ErrInvalidCurrency, "balance/currency-%d", currencyID)
	}

	balance, err := s.balances.Find(ctx, account, currencyID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("balances.Find")
		return nil, err
	}

	state := &core.BalanceState{
		CurrencyID: currencyID,
		Version:    balance.Version,
	}

	// inactive currencies hold no balance
	if accountContext.IsActiveInBalances(currencyID) {
		state.StoredCashBalance = balance.CashBalance
		state.StoredNTokenBalance = balance.NTokenBalance
	}

	return state, nil
}

func (s *balanceService) Finalize(
	ctx context.Context,
	settlement *core.Settlement,
	balance *core.BalanceState,
	account string,
	accountContext *core.AccountContext,
	redeemToUnderlying bool,
) error {
	log := logger.FromContext(ctx).WithField("account", account).WithField("currency", balance.CurrencyID)

	if settlement.IsFinalized(account, balance.CurrencyID) {
		return errors.Wrap(core.ErrBalanceAlreadyFinalized, "balance/finalized")
	}

	if balance.NetAssetTransferInternalPrecision.IsNegative() {
		remaining, err := number.Of(balance.StoredCashBalance).
			Add(balance.NetCashChange).
			Add(balance.NetAssetTransferInternalPrecision).
			Result()
		if err != nil {
			return errors.Wrap(err, "balance/withdraw")
		}

		if err := liquidation.Require(!remaining.IsNegative(), "balance/negative-withdraw", core.ErrNegativeWithdraw); err != nil {
			return err
		}
	}

	if !balance.NetAssetTransferInternalPrecision.IsZero() {
		transferred, err := s.finalizeTransfer(ctx, settlement, balance, account, redeemToUnderlying)
		if err != nil {
			log.WithError(err).Errorln("finalize transfer")
			return err
		}

		balance.NetAssetTransferInternalPrecision = transferred
	}

	cash, err := number.Of(balance.StoredCashBalance).
		Add(balance.NetCashChange).
		Add(balance.NetAssetTransferInternalPrecision).
		Result()
	if err != nil {
		return errors.Wrap(err, "balance/cash")
	}

	nTokens, err := number.Of(balance.StoredNTokenBalance).
		Add(balance.NetNTokenTransfer).
		Add(balance.NetNTokenSupplyChange).
		Result()
	if err != nil {
		return errors.Wrap(err, "balance/ntoken")
	}

	if err := liquidation.Require(!nTokens.IsNegative(), "balance/negative-ntoken", core.ErrNegativeNTokenBalance); err != nil {
		return err
	}

	if accountContext.Account == "" {
		accountContext.Account = account
	}

	isActive := !cash.IsZero() || !nTokens.IsZero()
	if err := accountContext.SetActiveCurrency(balance.CurrencyID, isActive, core.ActiveInBalances); err != nil {
		return errors.Wrap(err, "balance/set-active-currency")
	}

	if cash.IsNegative() {
		accountContext.HasDebt |= core.HasCashDebt
	}

	if err := settlement.StageBalance(&core.Balance{
		Account:       account,
		CurrencyID:    balance.CurrencyID,
		CashBalance:   cash,
		NTokenBalance: nTokens,
		Version:       balance.Version,
	}); err != nil {
		return errors.Wrap(err, "balance/stage")
	}

	settlement.StageAccountContext(accountContext)
	return nil
}

// finalizeTransfer moves the asset transfer through the token and returns the
// amount actually moved in internal precision
func (s *balanceService) finalizeTransfer(
	ctx context.Context,
	settlement *core.Settlement,
	balance *core.BalanceState,
	account string,
	redeemToUnderlying bool,
) (decimal.Decimal, error) {
	token, err := s.tokens.GetAssetToken(ctx, balance.CurrencyID)
	if err != nil {
		return decimal.Zero, err
	}

	external, err := liquidation.ConvertToExternal(token, balance.NetAssetTransferInternalPrecision)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "balance/convert-to-external")
	}

	if redeemToUnderlying && external.IsNegative() {
		return s.tokens.Redeem(ctx, settlement, token, account, external.Neg())
	}

	moved, err := s.tokens.Transfer(ctx, settlement, token, account, external)
	if err != nil {
		return decimal.Zero, err
	}

	return liquidation.ConvertToInternal(token, moved)
}
