package liquidation

import (
	"github.com/shopspring/decimal"
)

var (
	// PercentageDecimals base of every percentage
	PercentageDecimals = decimal.NewFromInt(100)
	// DefaultLiquidationPortion share of the available balance a liquidator may always take
	DefaultLiquidationPortion = decimal.NewFromInt(40)
	// InternalTokenPrecision precision of every internal balance
	InternalTokenPrecision = decimal.New(1, 8)
	// AssetRateDecimalDifference scale of asset rates over underlying decimals
	AssetRateDecimalDifference = decimal.New(1, 10)
)
