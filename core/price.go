package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceOracleService oracle price service interface
type IPriceOracleService interface {
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
}
