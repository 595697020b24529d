package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ETHRate exchange rate between a currency's underlying and ETH with its risk adjustments.
// Buffer, Haircut and LiquidationDiscount are percentages on base 100.
type ETHRate struct {
	ID                  uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	CreatedAt           time.Time       `json:"created_at,omitempty"`
	UpdatedAt           time.Time       `json:"updated_at,omitempty"`
	CurrencyID          uint16          `sql:"unique_index:eth_rate_currency_idx" json:"currency_id"`
	RateDecimals        decimal.Decimal `sql:"type:varchar(80)" json:"rate_decimals"`
	Rate                decimal.Decimal `sql:"type:varchar(80)" json:"rate"`
	Buffer              decimal.Decimal `sql:"type:varchar(16)" json:"buffer"`
	Haircut             decimal.Decimal `sql:"type:varchar(16)" json:"haircut"`
	LiquidationDiscount decimal.Decimal `sql:"type:varchar(16)" json:"liquidation_discount"`
	Version             int64           `json:"version"`
}

// AssetRate exchange rate between an asset token and its underlying
type AssetRate struct {
	ID                 uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	CreatedAt          time.Time       `json:"created_at,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at,omitempty"`
	CurrencyID         uint16          `sql:"unique_index:asset_rate_currency_idx" json:"currency_id"`
	Rate               decimal.Decimal `sql:"type:varchar(80)" json:"rate"`
	UnderlyingDecimals decimal.Decimal `sql:"type:varchar(80)" json:"underlying_decimals"`
}

// CashGroup per currency market parameters
type CashGroup struct {
	CurrencyID uint16    `json:"currency_id"`
	AssetRate  AssetRate `json:"asset_rate"`
}

// LiquidationFactors risk snapshot of an account, read-only once built
type LiquidationFactors struct {
	Account string `json:"account"`
	// NetETHValue aggregate free collateral, negative when liquidatable
	NetETHValue decimal.Decimal `json:"net_eth_value"`
	// LocalAssetAvailable cash held in the local currency, negative is debt
	LocalAssetAvailable      decimal.Decimal `json:"local_asset_available"`
	CollateralAssetAvailable decimal.Decimal `json:"collateral_asset_available"`
	LocalETHRate             ETHRate         `json:"local_eth_rate"`
	CollateralETHRate        ETHRate         `json:"collateral_eth_rate"`
	LocalAssetRate           AssetRate       `json:"local_asset_rate"`
	// CashGroup of the collateral currency, or of the local currency
	// when no collateral currency is given
	CashGroup CashGroup `json:"cash_group"`
}

// IRateStore rate store interface
type IRateStore interface {
	FindETHRate(ctx context.Context, currencyID uint16) (*ETHRate, error)
	FindAssetRate(ctx context.Context, currencyID uint16) (*AssetRate, error)
	ListETHRates(ctx context.Context) ([]*ETHRate, error)
	SaveETHRate(ctx context.Context, rate *ETHRate) error
	SaveAssetRate(ctx context.Context, rate *AssetRate) error
	UpdateRate(ctx context.Context, rate *ETHRate) error
}

// IRiskAggregator builds the risk snapshot of an account
type IRiskAggregator interface {
	GetLiquidationFactors(ctx context.Context, account string, localCurrency, collateralCurrency uint16) (*AccountContext, *LiquidationFactors, []*PortfolioAsset, error)
}
