package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TransferStatus transfer status
type TransferStatus int

const (
	_ TransferStatus = iota
	// TransferStatusPending waiting for the cashier
	TransferStatusPending
	// TransferStatusDone delivered or received
	TransferStatusDone
)

// Transfer external token movement produced by a settlement
type Transfer struct {
	ID         uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
	TraceID    string    `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id,omitempty"`
	SettleID   string    `sql:"size:36;index:transfer_settle_idx" json:"settle_id,omitempty"`
	OpponentID string    `sql:"size:36" json:"opponent_id,omitempty"`
	CurrencyID uint16    `json:"currency_id,omitempty"`
	AssetID    string    `sql:"size:36" json:"asset_id,omitempty"`
	// Amount in external token units, positive received from the opponent,
	// negative paid to the opponent
	Amount   decimal.Decimal `sql:"type:varchar(80)" json:"amount,omitempty"`
	Decimals int32           `json:"decimals,omitempty"`
	Redeem   bool            `json:"redeem,omitempty"`
	Status   TransferStatus  `sql:"index:transfer_status_idx" json:"status,omitempty"`
}

// IsPayout transfer pays the opponent
func (t *Transfer) IsPayout() bool {
	return t.Amount.IsNegative()
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	ListPending(ctx context.Context, limit int) ([]*Transfer, error)
	ListBySettleID(ctx context.Context, settleID string) ([]*Transfer, error)
	UpdateStatus(ctx context.Context, transfer *Transfer, status TransferStatus) error
}
