package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// LiquidationRequest collateral currency liquidation request.
// The api sets Liquidator from the authenticated user.
type LiquidationRequest struct {
	TraceID            string `json:"trace_id,omitempty" valid:"uuid"`
	Liquidator         string `json:"liquidator,omitempty" valid:"uuid"`
	Account            string `json:"account,omitempty" valid:"uuid,required"`
	LocalCurrency      uint16 `json:"local_currency,omitempty" valid:"required"`
	CollateralCurrency uint16 `json:"collateral_currency,omitempty" valid:"required"`
	// MaxCollateralLiquidation zero means no limit
	MaxCollateralLiquidation decimal.Decimal `json:"max_collateral_liquidation,omitempty"`
	WithdrawCollateral       bool            `json:"withdraw_collateral,omitempty"`
	RedeemToUnderlying       bool            `json:"redeem_to_underlying,omitempty"`
}

// LiquidationResult amounts of a collateral currency liquidation
type LiquidationResult struct {
	TraceID                        string          `json:"trace_id"`
	Liquidator                     string          `json:"liquidator"`
	Account                        string          `json:"account"`
	LocalCurrency                  uint16          `json:"local_currency"`
	CollateralCurrency             uint16          `json:"collateral_currency"`
	NetETHValue                    decimal.Decimal `json:"net_eth_value"`
	LiquidationDiscount            decimal.Decimal `json:"liquidation_discount"`
	CollateralAssetBenefitRequired decimal.Decimal `json:"collateral_asset_benefit_required"`
	CollateralAssetToSell          decimal.Decimal `json:"collateral_asset_to_sell"`
	LocalAssetFromLiquidator       decimal.Decimal `json:"local_asset_from_liquidator"`
}

// Liquidation committed liquidation record
type Liquidation struct {
	ID                 uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt          time.Time      `json:"created_at,omitempty"`
	TraceID            string         `sql:"size:36;unique_index:liquidation_trace_idx" json:"trace_id,omitempty"`
	Liquidator         string         `sql:"size:36" json:"liquidator,omitempty"`
	Account            string         `sql:"size:36;index:liquidation_account_idx" json:"account,omitempty"`
	LocalCurrency      uint16         `json:"local_currency,omitempty"`
	CollateralCurrency uint16         `json:"collateral_currency,omitempty"`
	Data               types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
}

// ILiquidationStore liquidation store interface
type ILiquidationStore interface {
	Create(ctx context.Context, tx *db.DB, liquidation *Liquidation) error
	// FindByTraceID returns an empty record when not found
	FindByTraceID(ctx context.Context, traceID string) (*Liquidation, error)
	ListByAccount(ctx context.Context, account string, limit int) ([]*Liquidation, error)
}

// ILiquidationService liquidation service interface
type ILiquidationService interface {
	PreLiquidationActions(ctx context.Context, liquidator, account string, localCurrency, collateralCurrency uint16) (*AccountContext, *LiquidationFactors, *PortfolioState, error)
	FinalizeLiquidatorLocal(ctx context.Context, settlement *Settlement, liquidator string, localCurrency uint16, netLocalFromLiquidator, netLocalNTokens decimal.Decimal) (*AccountContext, error)
	FinalizeLiquidatorCollateral(ctx context.Context, settlement *Settlement, liquidator string, liquidatorContext *AccountContext, collateralCurrency uint16, netCollateralToLiquidator, netCollateralNTokens decimal.Decimal, withdrawCollateral, redeemToUnderlying bool) (*AccountContext, error)
	FinalizeLiquidatedLocalBalance(ctx context.Context, settlement *Settlement, account string, localCurrency uint16, accountContext *AccountContext, netLocalFromLiquidator decimal.Decimal) error

	QuoteCollateral(ctx context.Context, req *LiquidationRequest) (*LiquidationResult, error)
	LiquidateCollateral(ctx context.Context, req *LiquidationRequest) (*LiquidationResult, error)
}
