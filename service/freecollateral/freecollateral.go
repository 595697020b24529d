package freecollateral

import (
	"context"

	"liquidator/core"
	"liquidator/pkg/liquidation"
	"liquidator/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// New new risk aggregator valuing cash balances only
func New(
	accounts core.IAccountContextStore,
	balances core.IBalanceStore,
	portfolios core.IPortfolioStore,
	rates core.IRateStore,
) core.IRiskAggregator {
	return &aggregator{
		accounts:   accounts,
		balances:   balances,
		portfolios: portfolios,
		rates:      rates,
	}
}

type aggregator struct {
	accounts   core.IAccountContextStore
	balances   core.IBalanceStore
	portfolios core.IPortfolioStore
	rates      core.IRateStore
}

func (s *aggregator) GetLiquidationFactors(ctx context.Context, account string, localCurrency, collateralCurrency uint16) (*core.AccountContext, *core.LiquidationFactors, []*core.PortfolioAsset, error) {
	log := logger.FromContext(ctx).WithField("account", account)

	accountContext, err := s.accounts.Find(ctx, account)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return nil, nil, nil, err
	}

	assets, err := s.portfolios.List(ctx, account)
	if err != nil {
		log.WithError(err).Errorln("portfolios.List")
		return nil, nil, nil, err
	}

	if err := liquidation.Require(len(assets) == 0, "freecollateral/portfolio-assets", core.ErrUnsupportedPortfolio); err != nil {
		return nil, nil, nil, err
	}

	factors := &core.LiquidationFactors{
		Account:                  account,
		NetETHValue:              decimal.Zero,
		LocalAssetAvailable:      decimal.Zero,
		CollateralAssetAvailable: decimal.Zero,
	}

	for _, currencyID := range accountContext.BalanceCurrencies() {
		balance, err := s.balances.Find(ctx, account, currencyID)
		if err != nil {
			log.WithError(err).Errorln("balances.Find")
			return nil, nil, nil, err
		}

		if err := liquidation.Require(balance.NTokenBalance.IsZero(), "freecollateral/ntoken-balance", core.ErrUnsupportedPortfolio); err != nil {
			return nil, nil, nil, err
		}

		ethRate, assetRate, err := s.findRates(ctx, currencyID)
		if err != nil {
			return nil, nil, nil, err
		}

		underlying, err := liquidation.ConvertToUnderlying(*assetRate, balance.CashBalance)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "freecollateral/convert-to-underlying")
		}

		eth, err := liquidation.ConvertToETH(*ethRate, underlying)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "freecollateral/convert-to-eth")
		}

		if factors.NetETHValue, err = number.Of(factors.NetETHValue).Add(eth).Result(); err != nil {
			return nil, nil, nil, errors.Wrap(err, "freecollateral/net-eth-value")
		}

		switch currencyID {
		case localCurrency:
			factors.LocalAssetAvailable = balance.CashBalance
		case collateralCurrency:
			factors.CollateralAssetAvailable = balance.CashBalance
		}
	}

	if err := liquidation.Require(factors.NetETHValue.IsNegative(), "freecollateral/sufficient-collateral", core.ErrSufficientCollateral); err != nil {
		return nil, nil, nil, err
	}

	localETHRate, localAssetRate, err := s.findRates(ctx, localCurrency)
	if err != nil {
		return nil, nil, nil, err
	}

	factors.LocalETHRate = *localETHRate
	factors.LocalAssetRate = *localAssetRate
	factors.CashGroup = core.CashGroup{CurrencyID: localCurrency, AssetRate: *localAssetRate}

	if collateralCurrency != 0 {
		collateralETHRate, collateralAssetRate, err := s.findRates(ctx, collateralCurrency)
		if err != nil {
			return nil, nil, nil, err
		}

		factors.CollateralETHRate = *collateralETHRate
		factors.CashGroup = core.CashGroup{CurrencyID: collateralCurrency, AssetRate: *collateralAssetRate}
	}

	return accountContext, factors, assets, nil
}

func (s *aggregator) findRates(ctx context.Context, currencyID uint16) (*core.ETHRate, *core.AssetRate, error) {
	log := logger.FromContext(ctx).WithField("currency", currencyID)

	ethRate, err := s.rates.FindETHRate(ctx, currencyID)
	if err != nil {
		log.WithError(err).Errorln("rates.FindETHRate")
		return nil, nil, err
	}

	assetRate, err := s.rates.FindAssetRate(ctx, currencyID)
	if err != nil {
		log.WithError(err).Errorln("rates.FindAssetRate")
		return nil, nil, err
	}

	if err := liquidation.Require(
		ethRate.Rate.IsPositive() && ethRate.RateDecimals.IsPositive() && assetRate.Rate.IsPositive() && assetRate.UnderlyingDecimals.IsPositive(),
		"freecollateral/rate-not-found",
		core.ErrRateNotFound,
	); err != nil {
		return nil, nil, err
	}

	return ethRate, assetRate, nil
}
