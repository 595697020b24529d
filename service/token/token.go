package token

import (
	"context"

	"liquidator/core"
	"liquidator/pkg/liquidation"

	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// New new token service
func New(tokens core.ITokenStore, rates core.IRateStore) core.ITokenService {
	return &tokenService{
		tokens: tokens,
		rates:  rates,
	}
}

type tokenService struct {
	tokens core.ITokenStore
	rates  core.IRateStore
}

func (s *tokenService) GetAssetToken(ctx context.Context, currencyID uint16) (*core.Token, error) {
	token, err := s.tokens.Find(ctx, currencyID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("tokens.Find")
		return nil, err
	}

	if err := liquidation.Require(token.CurrencyID > 0 && token.CurrencyID == currencyID, "token/not-found", core.ErrTokenNotFound); err != nil {
		return nil, err
	}

	return token, nil
}

func (s *tokenService) Transfer(ctx context.Context, settlement *core.Settlement, token *core.Token, account string, externalAmount decimal.Decimal) (decimal.Decimal, error) {
	if externalAmount.IsZero() {
		return decimal.Zero, nil
	}

	// the dapp wallet cannot pull, funds only arrive as payments credited by the payee worker
	if err := liquidation.Require(externalAmount.IsNegative(), "token/pull-unsupported", core.ErrPullUnsupported); err != nil {
		return decimal.Zero, err
	}

	transfer := &core.Transfer{
		OpponentID: account,
		CurrencyID: token.CurrencyID,
		AssetID:    token.AssetID,
		Amount:     externalAmount,
		Decimals:   token.Decimals,
		Status:     core.TransferStatusPending,
	}

	settlement.AddTransfer(transfer)
	return externalAmount, nil
}

func (s *tokenService) Redeem(ctx context.Context, settlement *core.Settlement, token *core.Token, account string, externalAmount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("currency", token.CurrencyID)

	if err := liquidation.Require(externalAmount.IsPositive(), "token/non-positive-redeem", core.ErrOperationForbidden); err != nil {
		return decimal.Zero, err
	}

	rate, err := s.rates.FindAssetRate(ctx, token.CurrencyID)
	if err != nil {
		log.WithError(err).Errorln("rates.FindAssetRate")
		return decimal.Zero, err
	}

	if err := liquidation.Require(rate.Rate.IsPositive(), "token/asset-rate-not-found", core.ErrRateNotFound); err != nil {
		return decimal.Zero, err
	}

	assetInternal, err := liquidation.ConvertToInternal(token, externalAmount)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "token/convert-to-internal")
	}

	underlying, err := liquidation.ConvertToUnderlying(*rate, assetInternal)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "token/convert-to-underlying")
	}

	underlyingToken := &core.Token{Decimals: token.UnderlyingDecimals}
	underlyingExternal, err := liquidation.ConvertToExternal(underlyingToken, underlying)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "token/convert-to-external")
	}

	settlement.AddTransfer(&core.Transfer{
		OpponentID: account,
		CurrencyID: token.CurrencyID,
		AssetID:    token.UnderlyingAssetID,
		Amount:     underlyingExternal.Neg(),
		Decimals:   token.UnderlyingDecimals,
		Redeem:     true,
		Status:     core.TransferStatusPending,
	})

	return assetInternal.Neg(), nil
}
