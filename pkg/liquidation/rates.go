package liquidation

import (
	"liquidator/core"
	"liquidator/pkg/number"

	"github.com/shopspring/decimal"
)

// ExchangeRate rate of base quoted in quote, scaled by quote.RateDecimals
func ExchangeRate(base, quote core.ETHRate) (decimal.Decimal, error) {
	return number.MulDiv(base.Rate, quote.RateDecimals, quote.Rate)
}

// ConvertToETH converts an internal balance to ETH, applying the haircut to
// positive balances and the buffer to negative ones
func ConvertToETH(rate core.ETHRate, balance decimal.Decimal) (decimal.Decimal, error) {
	multiplier := rate.Haircut
	if balance.IsNegative() {
		multiplier = rate.Buffer
	}

	return number.Of(balance).
		Mul(rate.Rate).
		Mul(multiplier).
		Div(PercentageDecimals).
		Div(rate.RateDecimals).
		Result()
}

// ConvertETHTo converts an ETH value to the currency's underlying
func ConvertETHTo(rate core.ETHRate, balance decimal.Decimal) (decimal.Decimal, error) {
	return number.MulDiv(balance, rate.RateDecimals, rate.Rate)
}

// ConvertToUnderlying asset cash to underlying, both in internal precision
func ConvertToUnderlying(rate core.AssetRate, assetBalance decimal.Decimal) (decimal.Decimal, error) {
	return number.Of(assetBalance).
		Mul(rate.Rate).
		Div(AssetRateDecimalDifference).
		Div(rate.UnderlyingDecimals).
		Result()
}

// ConvertFromUnderlying underlying to asset cash, both in internal precision
func ConvertFromUnderlying(rate core.AssetRate, underlyingBalance decimal.Decimal) (decimal.Decimal, error) {
	return number.Of(underlyingBalance).
		Mul(AssetRateDecimalDifference).
		Mul(rate.UnderlyingDecimals).
		Div(rate.Rate).
		Result()
}

// ConvertToExternal internal precision to the token's own decimals
func ConvertToExternal(token *core.Token, amount decimal.Decimal) (decimal.Decimal, error) {
	precision := token.Precision()
	if precision.Equal(InternalTokenPrecision) {
		return amount, number.Check(amount)
	}

	return number.MulDiv(amount, precision, InternalTokenPrecision)
}

// ConvertToInternal the token's own decimals to internal precision
func ConvertToInternal(token *core.Token, amount decimal.Decimal) (decimal.Decimal, error) {
	precision := token.Precision()
	if precision.Equal(InternalTokenPrecision) {
		return amount, number.Check(amount)
	}

	return number.MulDiv(amount, InternalTokenPrecision, precision)
}
