package liquidation

import (
	"liquidator/core"
	"liquidator/pkg/number"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CalculateLiquidationAmount bounds the amount a liquidator may purchase.
//
// The result starts from required, is capped by maxTotalBalance, is raised to
// the default portion of maxTotalBalance and finally capped by userMax.
// A zero userMax means no user limit.
func CalculateLiquidationAmount(required, maxTotalBalance, userMax decimal.Decimal) (decimal.Decimal, error) {
	for _, v := range []decimal.Decimal{required, maxTotalBalance, userMax} {
		if err := number.Check(v); err != nil {
			return decimal.Zero, err
		}
	}

	defaultAllowed, err := number.MulDiv(maxTotalBalance, DefaultLiquidationPortion, PercentageDecimals)
	if err != nil {
		return decimal.Zero, err
	}

	result := required
	if required.GreaterThan(maxTotalBalance) {
		result = maxTotalBalance
	}

	if required.LessThan(defaultAllowed) {
		result = defaultAllowed
	}

	if userMax.IsPositive() && result.GreaterThan(userMax) {
		result = userMax
	}

	return result, nil
}

// CalculateCrossCurrencyBenefitAndDiscount collateral asset cash needed to bring
// the net ETH value back to zero, and the larger of the two liquidation discounts
func CalculateCrossCurrencyBenefitAndDiscount(factors *core.LiquidationFactors) (decimal.Decimal, decimal.Decimal, error) {
	haircut := factors.CollateralETHRate.Haircut
	if err := Require(haircut.IsPositive(), "liquidation/zero-collateral-haircut", core.ErrDivisionByZeroRisk); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if err := Require(factors.NetETHValue.IsNegative(), "liquidation/non-negative-net-eth-value", core.ErrRiskParameterFault); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	underlying, err := ConvertETHTo(factors.CollateralETHRate, factors.NetETHValue.Neg())
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/convert-eth-to-collateral")
	}

	// back out the haircut applied by the free collateral calculation
	underlying, err = number.MulDiv(underlying, PercentageDecimals, haircut)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/remove-haircut")
	}

	benefit, err := ConvertFromUnderlying(factors.CashGroup.AssetRate, underlying)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/convert-from-underlying")
	}

	discount := decimal.Max(factors.LocalETHRate.LiquidationDiscount, factors.CollateralETHRate.LiquidationDiscount)
	return benefit, discount, nil
}

// CalculateLocalToPurchase local asset cash the liquidator pays for collateralPV
// of collateral underlying. The payment never exceeds the local debt; when it
// would, both amounts are scaled down by the same ratio.
func CalculateLocalToPurchase(
	factors *core.LiquidationFactors,
	liquidationDiscount decimal.Decimal,
	collateralPresentValue decimal.Decimal,
	collateralAssetBalanceToSell decimal.Decimal,
) (decimal.Decimal, decimal.Decimal, error) {
	if err := Require(factors.LocalAssetAvailable.IsNegative(), "liquidation/local-asset-not-negative", core.ErrRiskParameterFault); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if err := Require(liquidationDiscount.IsPositive(), "liquidation/zero-discount", core.ErrRiskParameterFault); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	rate, err := ExchangeRate(factors.LocalETHRate, factors.CollateralETHRate)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/exchange-rate")
	}

	localUnderlying, err := number.Of(collateralPresentValue).
		Mul(PercentageDecimals).
		Mul(factors.LocalETHRate.RateDecimals).
		Div(rate).
		Div(liquidationDiscount).
		Result()
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/local-underlying")
	}

	localAsset, err := ConvertFromUnderlying(factors.LocalAssetRate, localUnderlying)
	if err != nil {
		return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/convert-from-underlying")
	}

	maxLocalAsset := factors.LocalAssetAvailable.Neg()
	if localAsset.GreaterThan(maxLocalAsset) {
		collateralAssetBalanceToSell, err = number.MulDiv(collateralAssetBalanceToSell, maxLocalAsset, localAsset)
		if err != nil {
			return decimal.Zero, decimal.Zero, errors.Wrap(err, "liquidation/clamp-collateral")
		}

		localAsset = maxLocalAsset
	}

	return collateralAssetBalanceToSell, localAsset, nil
}

// CalculateCollateralToRaise collateral asset cash to sell so that the account
// gains benefitRequired of collateral value.
//
//	benefit = localPurchased * localBuffer * exchangeRate - collateralToSell * haircut
//	localPurchased = collateralToSell / (exchangeRate * discount)
//	collateralToSell = benefit / (localBuffer / discount - haircut)
func CalculateCollateralToRaise(factors *core.LiquidationFactors, liquidationDiscount, benefitRequired decimal.Decimal) (decimal.Decimal, error) {
	if err := Require(liquidationDiscount.IsPositive(), "liquidation/zero-discount", core.ErrRiskParameterFault); err != nil {
		return decimal.Zero, err
	}

	denominator, err := number.Of(factors.LocalETHRate.Buffer).
		Mul(PercentageDecimals).
		Div(liquidationDiscount).
		Sub(factors.CollateralETHRate.Haircut).
		Result()
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "liquidation/collateral-denominator")
	}

	if err := Require(denominator.IsPositive(), "liquidation/non-positive-collateral-denominator", core.ErrRiskParameterFault); err != nil {
		return decimal.Zero, err
	}

	return number.MulDiv(benefitRequired, PercentageDecimals, denominator)
}
