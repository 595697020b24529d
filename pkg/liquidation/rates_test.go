package liquidation

import (
	"testing"

	"liquidator/core"
	"liquidator/pkg/number"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRate(t *testing.T) {
	base := parityETHRate(100)
	base.Rate = d(2).Mul(number.Pow10(18))
	quote := parityETHRate(100)
	quote.Rate = d(4).Mul(number.Pow10(18))

	rate, err := ExchangeRate(base, quote)
	require.NoError(t, err)
	assert.Equal(t, d(5).Mul(number.Pow10(17)).String(), rate.String())

	quote.Rate = decimal.Zero
	_, err = ExchangeRate(base, quote)
	assert.Equal(t, number.ErrDivisionByZero, errors.Cause(err))
}

func TestConvertToETH(t *testing.T) {
	rate := parityETHRate(100)
	rate.Rate = d(2).Mul(number.Pow10(18))
	rate.Haircut = d(80)
	rate.Buffer = d(120)

	v, err := ConvertToETH(rate, d(1000))
	require.NoError(t, err)
	assert.Equal(t, "1600", v.String())

	v, err = ConvertToETH(rate, d(-1000))
	require.NoError(t, err)
	assert.Equal(t, "-2400", v.String())
}

func TestConvertETHTo(t *testing.T) {
	rate := parityETHRate(100)
	rate.Rate = d(2).Mul(number.Pow10(18))

	v, err := ConvertETHTo(rate, d(1001))
	require.NoError(t, err)
	assert.Equal(t, "500", v.String())
}

func TestAssetRateConversions(t *testing.T) {
	// cDAI style: 0.02 underlying per asset token, 18 underlying decimals
	rate := core.AssetRate{
		Rate:               d(2).Mul(number.Pow10(26)),
		UnderlyingDecimals: number.Pow10(18),
	}

	underlying, err := ConvertToUnderlying(rate, d(5000).Mul(InternalTokenPrecision))
	require.NoError(t, err)
	assert.Equal(t, d(100).Mul(InternalTokenPrecision).String(), underlying.String())

	asset, err := ConvertFromUnderlying(rate, underlying)
	require.NoError(t, err)
	assert.Equal(t, d(5000).Mul(InternalTokenPrecision).String(), asset.String())
}

func TestTokenPrecisionConversions(t *testing.T) {
	tests := []struct {
		decimals int32
		internal string
		external string
		back     string
	}{
		{8, "123456789", "123456789", "123456789"},
		{18, "100000000", "1000000000000000000", "100000000"},
		{6, "123456789", "1234567", "123456700"},
		{6, "-123456789", "-1234567", "-123456700"},
	}

	for _, tt := range tests {
		token := &core.Token{Decimals: tt.decimals}

		external, err := ConvertToExternal(token, number.Decimal(tt.internal))
		require.NoError(t, err)
		assert.Equal(t, tt.external, external.String())

		internal, err := ConvertToInternal(token, external)
		require.NoError(t, err)
		assert.Equal(t, tt.back, internal.String())
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(true, "ok", core.ErrUnknown))

	err := Require(false, "liquidation/self", core.ErrInvalidLiquidationRequest)
	assert.Equal(t, core.ErrInvalidLiquidationRequest, errors.Cause(err))
	assert.Contains(t, err.Error(), "liquidation/self")
}
