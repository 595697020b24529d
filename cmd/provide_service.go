package cmd

import (
	"liquidator/core"
	balanceservice "liquidator/service/balance"
	"liquidator/service/freecollateral"
	liquidationservice "liquidator/service/liquidation"
	"liquidator/service/oracle"
	"liquidator/service/session"
	tokenservice "liquidator/service/token"
	userservice "liquidator/service/user"
	"liquidator/service/wallet"

	"github.com/fox-one/pkg/store/db"
)

func provideTokenService(db *db.DB) core.ITokenService {
	return tokenservice.New(provideTokenStore(db), provideRateStore(db))
}

func provideRiskAggregator(db *db.DB) core.IRiskAggregator {
	return freecollateral.New(
		provideAccountContextStore(db),
		provideBalanceStore(db),
		providePortfolioStore(db),
		provideRateStore(db),
	)
}

func provideBalanceService(db *db.DB) core.IBalanceService {
	return balanceservice.New(provideBalanceStore(db), provideTokenService(db))
}

func provideLiquidationService(db *db.DB) core.ILiquidationService {
	return liquidationservice.New(
		provideRiskAggregator(db),
		provideAccountContextStore(db),
		provideBalanceService(db),
		provideTokenService(db),
		provideLiquidationStore(db),
		provideSettlementStore(db),
		provideClock(),
	)
}

func provideWalletService() core.IWalletService {
	return wallet.New(provideDapp())
}

func providePriceService() core.IPriceOracleService {
	return oracle.New(provideConfig().PriceOracle)
}

func provideSession() core.Session {
	return session.New(userservice.New(), cfg.Session.Capacity, []string{cfg.Dapp.ClientID})
}
