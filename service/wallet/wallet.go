package wallet

import (
	"context"
	"encoding/base64"
	"time"

	"liquidator/core"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/logger"
	"github.com/pkg/errors"
)

// Memo attached to every payout, and to payments prefunding a liquidator
type Memo struct {
	SettleID   string `msgpack:"s"`
	CurrencyID uint16 `msgpack:"c"`
	Redeem     bool   `msgpack:"r,omitempty"`
}

// EncodeMemo msgpack then base64
func EncodeMemo(memo Memo) (string, error) {
	b, err := msgpack.Marshal(memo)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeMemo reverse of EncodeMemo
func DecodeMemo(s string) (Memo, error) {
	var memo Memo

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return memo, err
	}

	err = msgpack.Unmarshal(b, &memo)
	return memo, err
}

// New new wallet service
func New(mainWallet *core.Wallet) core.IWalletService {
	return &walletService{
		MainWallet: mainWallet,
	}
}

type walletService struct {
	MainWallet *core.Wallet
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) (*core.Snapshot, error) {
	if !transfer.IsPayout() {
		return nil, errors.Wrap(core.ErrOperationForbidden, "wallet/not-a-payout")
	}

	memo, err := EncodeMemo(Memo{
		SettleID:   transfer.SettleID,
		CurrencyID: transfer.CurrencyID,
		Redeem:     transfer.Redeem,
	})
	if err != nil {
		return nil, err
	}

	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     transfer.Amount.Neg().Shift(-transfer.Decimals),
		TraceID:    transfer.TraceID,
		Memo:       memo,
	}

	snapshot, err := s.MainWallet.Client.Transfer(ctx, input, s.MainWallet.Pin)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("client.Transfer")
		return nil, err
	}

	return convertSnapshot(snapshot), nil
}

func (s *walletService) PullSnapshots(ctx context.Context, offset time.Time, limit int) ([]*core.Snapshot, error) {
	snapshots, err := s.MainWallet.Client.ReadSnapshots(ctx, "", offset, "ASC", limit)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("client.ReadSnapshots")
		return nil, err
	}

	results := make([]*core.Snapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		results = append(results, convertSnapshot(snapshot))
	}

	return results, nil
}

func convertSnapshot(snapshot *mixin.Snapshot) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: snapshot.SnapshotID,
		TraceID:    snapshot.TraceID,
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       snapshot.Memo,
		CreatedAt:  snapshot.CreatedAt,
	}
}
