package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType portfolio asset type
type AssetType uint8

const (
	// AssetTypeFCash fixed rate cash
	AssetTypeFCash AssetType = 1
	// AssetTypeLiquidityToken liquidity token
	AssetTypeLiquidityToken AssetType = 2
)

// PortfolioAsset asset held in an account portfolio
type PortfolioAsset struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
	Account    string          `sql:"size:36;index:portfolio_account_idx" json:"account"`
	CurrencyID uint16          `json:"currency_id"`
	Maturity   int64           `json:"maturity"`
	AssetType  AssetType       `json:"asset_type"`
	Notional   decimal.Decimal `sql:"type:varchar(80)" json:"notional"`
}

// PortfolioState in memory portfolio of one liquidation call
type PortfolioState struct {
	StoredAssets      []*PortfolioAsset `json:"stored_assets"`
	NewAssets         []*PortfolioAsset `json:"new_assets"`
	LastNewAssetIndex int               `json:"last_new_asset_index"`
	StoredAssetLength int               `json:"stored_asset_length"`
}

// NewPortfolioState wrap stored assets with no new assets
func NewPortfolioState(stored []*PortfolioAsset) *PortfolioState {
	return &PortfolioState{
		StoredAssets:      stored,
		NewAssets:         []*PortfolioAsset{},
		LastNewAssetIndex: 0,
		StoredAssetLength: len(stored),
	}
}

// IPortfolioStore portfolio store interface
type IPortfolioStore interface {
	List(ctx context.Context, account string) ([]*PortfolioAsset, error)
}
