package liquidation

import (
	"context"
	"encoding/json"

	"liquidator/core"
	"liquidator/pkg/id"
	"liquidator/pkg/liquidation"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// New new liquidation service
func New(
	aggregator core.IRiskAggregator,
	accounts core.IAccountContextStore,
	balances core.IBalanceService,
	tokens core.ITokenService,
	liquidations core.ILiquidationStore,
	settlements core.ISettlementStore,
	clock clock.Clock,
) core.ILiquidationService {
	return &liquidationService{
		aggregator:   aggregator,
		accounts:     accounts,
		balances:     balances,
		tokens:       tokens,
		liquidations: liquidations,
		settlements:  settlements,
		clock:        clock,
	}
}

type liquidationService struct {
	aggregator   core.IRiskAggregator
	accounts     core.IAccountContextStore
	balances     core.IBalanceService
	tokens       core.ITokenService
	liquidations core.ILiquidationStore
	settlements  core.ISettlementStore
	clock        clock.Clock
}

func (s *liquidationService) PreLiquidationActions(ctx context.Context, liquidator, account string, localCurrency, collateralCurrency uint16) (*core.AccountContext, *core.LiquidationFactors, *core.PortfolioState, error) {
	if err := liquidation.Require(localCurrency != 0, "liquidation/zero-local-currency", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, nil, err
	}

	if err := liquidation.Require(liquidator != "", "liquidation/no-liquidator", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, nil, err
	}

	if err := liquidation.Require(account != liquidator, "liquidation/self-liquidation", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, nil, err
	}

	if err := liquidation.Require(localCurrency != collateralCurrency, "liquidation/same-currency", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, nil, err
	}

	accountContext, factors, assets, err := s.aggregator.GetLiquidationFactors(ctx, account, localCurrency, collateralCurrency)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("aggregator.GetLiquidationFactors")
		return nil, nil, nil, err
	}

	return accountContext, factors, core.NewPortfolioState(assets), nil
}

func (s *liquidationService) FinalizeLiquidatorLocal(
	ctx context.Context,
	settlement *core.Settlement,
	liquidator string,
	localCurrency uint16,
	netLocalFromLiquidator decimal.Decimal,
	netLocalNTokens decimal.Decimal,
) (*core.AccountContext, error) {
	log := logger.FromContext(ctx).WithField("liquidator", liquidator)

	liquidatorContext, err := s.accounts.Find(ctx, liquidator)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return nil, err
	}

	balance, err := s.balances.LoadBalanceState(ctx, liquidator, localCurrency, liquidatorContext)
	if err != nil {
		return nil, err
	}

	switch {
	case netLocalFromLiquidator.IsPositive():
		// the dapp wallet cannot pull from the liquidator, the purchase is paid
		// from cash deposited before and the liquidator must not carry debt
		if err := liquidation.Require(
			balance.StoredCashBalance.GreaterThanOrEqual(netLocalFromLiquidator),
			"liquidation/insufficient-prefunded-balance",
			core.ErrInsufficientPrefundedBalance,
		); err != nil {
			return nil, err
		}

		if err := liquidation.Require(liquidatorContext.HasDebt == 0, "liquidation/liquidator-has-debt", core.ErrDebtPresentDuringFeeToken); err != nil {
			return nil, err
		}

		balance.NetCashChange = netLocalFromLiquidator.Neg()
	case netLocalFromLiquidator.IsNegative():
		token, err := s.tokens.GetAssetToken(ctx, localCurrency)
		if err != nil {
			log.WithError(err).Errorln("tokenz.GetAssetToken")
			return nil, err
		}

		external, err := liquidation.ConvertToExternal(token, netLocalFromLiquidator)
		if err != nil {
			return nil, errors.Wrap(err, "liquidation/convert-to-external")
		}

		if _, err := s.tokens.Transfer(ctx, settlement, token, liquidator, external); err != nil {
			log.WithError(err).Errorln("tokenz.Transfer")
			return nil, err
		}
	}

	balance.NetNTokenTransfer = netLocalNTokens
	if err := s.balances.Finalize(ctx, settlement, balance, liquidator, liquidatorContext, false); err != nil {
		return nil, err
	}

	return liquidatorContext, nil
}

func (s *liquidationService) FinalizeLiquidatorCollateral(
	ctx context.Context,
	settlement *core.Settlement,
	liquidator string,
	liquidatorContext *core.AccountContext,
	collateralCurrency uint16,
	netCollateralToLiquidator decimal.Decimal,
	netCollateralNTokens decimal.Decimal,
	withdrawCollateral bool,
	redeemToUnderlying bool,
) (*core.AccountContext, error) {
	balance, err := s.balances.LoadBalanceState(ctx, liquidator, collateralCurrency, liquidatorContext)
	if err != nil {
		return nil, err
	}

	balance.NetCashChange = netCollateralToLiquidator
	if withdrawCollateral {
		// the payout nets off the credit
		balance.NetAssetTransferInternalPrecision = netCollateralToLiquidator.Neg()
	}

	balance.NetNTokenTransfer = netCollateralNTokens
	if err := s.balances.Finalize(ctx, settlement, balance, liquidator, liquidatorContext, redeemToUnderlying); err != nil {
		return nil, err
	}

	return liquidatorContext, nil
}

func (s *liquidationService) FinalizeLiquidatedLocalBalance(
	ctx context.Context,
	settlement *core.Settlement,
	account string,
	localCurrency uint16,
	accountContext *core.AccountContext,
	netLocalFromLiquidator decimal.Decimal,
) error {
	balance, err := s.balances.LoadBalanceState(ctx, account, localCurrency, accountContext)
	if err != nil {
		return err
	}

	balance.NetCashChange = netLocalFromLiquidator
	return s.balances.Finalize(ctx, settlement, balance, account, accountContext, false)
}

func (s *liquidationService) QuoteCollateral(ctx context.Context, req *core.LiquidationRequest) (*core.LiquidationResult, error) {
	_, result, err := s.calculateCollateral(ctx, req)
	return result, err
}

func (s *liquidationService) LiquidateCollateral(ctx context.Context, req *core.LiquidationRequest) (*core.LiquidationResult, error) {
	if req.TraceID == "" {
		req.TraceID = id.GenTraceID()
	}

	log := logger.FromContext(ctx).WithField("trace", req.TraceID)
	ctx = logger.WithContext(ctx, log)

	existing, err := s.liquidations.FindByTraceID(ctx, req.TraceID)
	if err != nil {
		log.WithError(err).Errorln("liquidations.FindByTraceID")
		return nil, err
	}

	if existing.ID > 0 {
		var result core.LiquidationResult
		if err := json.Unmarshal(existing.Data, &result); err != nil {
			return nil, err
		}

		return &result, nil
	}

	accountContext, result, err := s.calculateCollateral(ctx, req)
	if err != nil {
		return nil, err
	}

	settlement := core.NewSettlement(req.TraceID, s.clock.Now())

	// liquidated account gives up collateral and has its local debt repaid
	collateral, err := s.balances.LoadBalanceState(ctx, req.Account, req.CollateralCurrency, accountContext)
	if err != nil {
		return nil, err
	}

	collateral.NetCashChange = result.CollateralAssetToSell.Neg()
	if err := s.balances.Finalize(ctx, settlement, collateral, req.Account, accountContext, false); err != nil {
		return nil, err
	}

	if err := s.FinalizeLiquidatedLocalBalance(ctx, settlement, req.Account, req.LocalCurrency, accountContext, result.LocalAssetFromLiquidator); err != nil {
		return nil, err
	}

	liquidatorContext, err := s.FinalizeLiquidatorLocal(ctx, settlement, req.Liquidator, req.LocalCurrency, result.LocalAssetFromLiquidator, decimal.Zero)
	if err != nil {
		return nil, err
	}

	if _, err := s.FinalizeLiquidatorCollateral(
		ctx,
		settlement,
		req.Liquidator,
		liquidatorContext,
		req.CollateralCurrency,
		result.CollateralAssetToSell,
		decimal.Zero,
		req.WithdrawCollateral,
		req.RedeemToUnderlying,
	); err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	settlement.Liquidation = &core.Liquidation{
		CreatedAt:          settlement.CreatedAt,
		TraceID:            req.TraceID,
		Liquidator:         req.Liquidator,
		Account:            req.Account,
		LocalCurrency:      req.LocalCurrency,
		CollateralCurrency: req.CollateralCurrency,
		Data:               data,
	}

	if err := s.settlements.Commit(ctx, settlement); err != nil {
		log.WithError(err).Errorln("settlements.Commit")
		return nil, err
	}

	log.WithField("local", result.LocalAssetFromLiquidator).
		WithField("collateral", result.CollateralAssetToSell).
		Infoln("liquidated")

	return result, nil
}

// calculateCollateral sizes a collateral currency liquidation of cash
func (s *liquidationService) calculateCollateral(ctx context.Context, req *core.LiquidationRequest) (*core.AccountContext, *core.LiquidationResult, error) {
	if err := liquidation.Require(req.CollateralCurrency != 0, "liquidation/zero-collateral-currency", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, err
	}

	if err := liquidation.Require(!req.MaxCollateralLiquidation.IsNegative(), "liquidation/negative-max-collateral", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, err
	}

	accountContext, factors, _, err := s.PreLiquidationActions(ctx, req.Liquidator, req.Account, req.LocalCurrency, req.CollateralCurrency)
	if err != nil {
		return nil, nil, err
	}

	if err := liquidation.Require(factors.LocalAssetAvailable.IsNegative(), "liquidation/no-local-debt", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, err
	}

	if err := liquidation.Require(factors.CollateralAssetAvailable.IsPositive(), "liquidation/no-collateral", core.ErrInvalidLiquidationRequest); err != nil {
		return nil, nil, err
	}

	benefit, discount, err := liquidation.CalculateCrossCurrencyBenefitAndDiscount(factors)
	if err != nil {
		return nil, nil, err
	}

	collateralToRaise, err := liquidation.CalculateCollateralToRaise(factors, discount, benefit)
	if err != nil {
		return nil, nil, err
	}

	collateralToRaise, err = liquidation.CalculateLiquidationAmount(collateralToRaise, factors.CollateralAssetAvailable, req.MaxCollateralLiquidation)
	if err != nil {
		return nil, nil, err
	}

	collateralPresentValue, err := liquidation.ConvertToUnderlying(factors.CashGroup.AssetRate, collateralToRaise)
	if err != nil {
		return nil, nil, errors.Wrap(err, "liquidation/collateral-present-value")
	}

	collateralToRaise, localFromLiquidator, err := liquidation.CalculateLocalToPurchase(factors, discount, collateralPresentValue, collateralToRaise)
	if err != nil {
		return nil, nil, err
	}

	result := &core.LiquidationResult{
		TraceID:                        req.TraceID,
		Liquidator:                     req.Liquidator,
		Account:                        req.Account,
		LocalCurrency:                  req.LocalCurrency,
		CollateralCurrency:             req.CollateralCurrency,
		NetETHValue:                    factors.NetETHValue,
		LiquidationDiscount:            discount,
		CollateralAssetBenefitRequired: benefit,
		CollateralAssetToSell:          collateralToRaise,
		LocalAssetFromLiquidator:       localFromLiquidator,
	}

	return accountContext, result, nil
}
