package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrInvalidLiquidationRequest malformed liquidation request
	ErrInvalidLiquidationRequest ErrorCode = 100100
	// ErrRiskParameterFault risk snapshot violates its invariants
	ErrRiskParameterFault ErrorCode = 100101
	// ErrDivisionByZeroRisk zero haircut on the collateral currency
	ErrDivisionByZeroRisk ErrorCode = 100102
	// ErrInsufficientPrefundedBalance liquidator cash cannot cover a transfer fee token purchase
	ErrInsufficientPrefundedBalance ErrorCode = 100103
	// ErrDebtPresentDuringFeeToken liquidator has debt while paying with a transfer fee token
	ErrDebtPresentDuringFeeToken ErrorCode = 100104
	// ErrSufficientCollateral account is not liquidatable
	ErrSufficientCollateral ErrorCode = 100105
	// ErrUnsupportedPortfolio account holds assets the risk aggregator cannot value
	ErrUnsupportedPortfolio ErrorCode = 100106

	// ErrBalanceAlreadyFinalized balance finalized twice in one settlement
	ErrBalanceAlreadyFinalized ErrorCode = 100200
	// ErrNegativeWithdraw withdraw more than the cash balance
	ErrNegativeWithdraw ErrorCode = 100201
	// ErrNegativeNTokenBalance nToken balance below zero
	ErrNegativeNTokenBalance ErrorCode = 100202
	// ErrTooManyActiveCurrencies account context is full
	ErrTooManyActiveCurrencies ErrorCode = 100203
	// ErrInvalidCurrency currency id out of range
	ErrInvalidCurrency ErrorCode = 100204
	// ErrStaleState row changed since it was loaded
	ErrStaleState ErrorCode = 100205

	// ErrTokenNotFound no token for the currency
	ErrTokenNotFound ErrorCode = 100300
	// ErrRateNotFound no rate for the currency
	ErrRateNotFound ErrorCode = 100301
	// ErrPullUnsupported transfer pulling funds from an account, only payments to the dapp bring funds in
	ErrPullUnsupported ErrorCode = 100302
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
