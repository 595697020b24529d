package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Balance persisted cash and nToken balance of an account in one currency
type Balance struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
	Account       string          `sql:"size:36;unique_index:balance_account_currency_idx" json:"account"`
	CurrencyID    uint16          `sql:"unique_index:balance_account_currency_idx" json:"currency_id"`
	CashBalance   decimal.Decimal `sql:"type:varchar(80)" json:"cash_balance"`
	NTokenBalance decimal.Decimal `gorm:"column:ntoken_balance" sql:"type:varchar(80)" json:"ntoken_balance"`
	Version       int64           `json:"version"`
}

// BalanceState scratch record of one account and currency during a liquidation.
// Net fields accumulate deltas that Finalize applies exactly once.
type BalanceState struct {
	CurrencyID                        uint16          `json:"currency_id"`
	StoredCashBalance                 decimal.Decimal `json:"stored_cash_balance"`
	StoredNTokenBalance               decimal.Decimal `json:"stored_ntoken_balance"`
	NetCashChange                     decimal.Decimal `json:"net_cash_change"`
	NetAssetTransferInternalPrecision decimal.Decimal `json:"net_asset_transfer_internal_precision"`
	NetNTokenTransfer                 decimal.Decimal `json:"net_ntoken_transfer"`
	NetNTokenSupplyChange             decimal.Decimal `json:"net_ntoken_supply_change"`

	// Version of the loaded row, zero when the row does not exist yet
	Version int64 `json:"version"`
}

// IBalanceStore balance store interface
type IBalanceStore interface {
	// Find returns a zero balance when the row does not exist
	Find(ctx context.Context, account string, currencyID uint16) (*Balance, error)
	List(ctx context.Context, account string) ([]*Balance, error)
	Save(ctx context.Context, tx *db.DB, balance *Balance) error
}

// IBalanceService balance ledger interface
type IBalanceService interface {
	LoadBalanceState(ctx context.Context, account string, currencyID uint16, accountContext *AccountContext) (*BalanceState, error)
	// Finalize applies the net deltas of balance, stages the new row and the
	// updated account context into the settlement
	Finalize(ctx context.Context, settlement *Settlement, balance *BalanceState, account string, accountContext *AccountContext, redeemToUnderlying bool) error
}
