package core

import (
	"context"
	"time"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"
)

// Wallet wallet
type Wallet struct {
	Client *mixin.Client `json:"client"`
	Pin    string        `json:"pin"`
}

// Snapshot mixin snapshot of the dapp wallet, a delivered payout or an incoming payment
type Snapshot struct {
	SnapshotID string          `json:"snapshot_id,omitempty"`
	TraceID    string          `json:"trace_id,omitempty"`
	OpponentID string          `json:"opponent_id,omitempty"`
	AssetID    string          `json:"asset_id,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	Memo       string          `json:"memo,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// IWalletService wallet service interface
type IWalletService interface {
	// HandleTransfer pays out a pending transfer, idempotent by its trace id
	HandleTransfer(ctx context.Context, transfer *Transfer) (*Snapshot, error)
	// PullSnapshots list wallet snapshots created after offset, oldest first
	PullSnapshots(ctx context.Context, offset time.Time, limit int) ([]*Snapshot, error)
}
