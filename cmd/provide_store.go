package cmd

import (
	"liquidator/core"
	"liquidator/store/account"
	"liquidator/store/balance"
	"liquidator/store/liquidation"
	"liquidator/store/portfolio"
	"liquidator/store/rate"
	"liquidator/store/settlement"
	"liquidator/store/token"
	"liquidator/store/transfer"

	"github.com/fox-one/pkg/store/db"
)

func provideBalanceStore(db *db.DB) core.IBalanceStore {
	return balance.New(db)
}

func provideAccountContextStore(db *db.DB) core.IAccountContextStore {
	return account.New(db)
}

func providePortfolioStore(db *db.DB) core.IPortfolioStore {
	return portfolio.New(db)
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return token.Cache(token.New(db))
}

func provideRateStore(db *db.DB) core.IRateStore {
	return rate.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideLiquidationStore(db *db.DB) core.ILiquidationStore {
	return liquidation.New(db)
}

func provideSettlementStore(db *db.DB) core.ISettlementStore {
	return settlement.New(
		db,
		provideBalanceStore(db),
		provideAccountContextStore(db),
		provideTransferStore(db),
		provideLiquidationStore(db),
	)
}
