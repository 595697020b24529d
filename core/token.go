package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Token asset token of a currency
type Token struct {
	ID                uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
	CurrencyID        uint16    `sql:"unique_index:token_currency_idx" json:"currency_id"`
	Symbol            string    `sql:"size:32" json:"symbol"`
	AssetID           string    `sql:"size:36" json:"asset_id"`
	UnderlyingAssetID string    `sql:"size:36" json:"underlying_asset_id"`
	// Decimals decimal places of the external token
	Decimals           int32 `json:"decimals"`
	UnderlyingDecimals int32 `json:"underlying_decimals"`
	HasTransferFee     bool  `json:"has_transfer_fee"`
}

// Precision 10^Decimals
func (t *Token) Precision() decimal.Decimal {
	return decimal.New(1, t.Decimals)
}

// ITokenStore token store interface
type ITokenStore interface {
	// Find returns an empty token when the currency is unknown
	Find(ctx context.Context, currencyID uint16) (*Token, error)
	List(ctx context.Context) ([]*Token, error)
	Save(ctx context.Context, token *Token) error
}

// ITokenService token transfer interface
type ITokenService interface {
	GetAssetToken(ctx context.Context, currencyID uint16) (*Token, error)
	// Transfer pays -externalAmount of the token out to the account. Positive
	// amounts would pull from the account and are rejected. Returns the
	// external amount moved.
	Transfer(ctx context.Context, settlement *Settlement, token *Token, account string, externalAmount decimal.Decimal) (decimal.Decimal, error)
	// Redeem burns externalAmount of the asset token and pays the underlying
	// to the account. Returns the asset cash change in internal precision.
	Redeem(ctx context.Context, settlement *Settlement, token *Token, account string, externalAmount decimal.Decimal) (decimal.Decimal, error)
}
