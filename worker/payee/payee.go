package payee

import (
	"context"
	"time"

	"liquidator/core"
	"liquidator/pkg/liquidation"
	"liquidator/service/wallet"
	"liquidator/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/pkg/errors"
)

const (
	checkpointKey = "payee_snapshot_checkpoint"
	limit         = 500

	// mixin amounts carry at most 8 decimal places
	mixinDecimals = 8
)

// Payee credits payments to the dapp wallet to the cash balance of the payer.
// The memo names the currency, payments that cannot be credited are refunded.
type Payee struct {
	worker.TickWorker
	wallets     core.IWalletService
	property    property.Store
	transfers   core.ITransferStore
	accounts    core.IAccountContextStore
	tokenz      core.ITokenService
	balancez    core.IBalanceService
	settlements core.ISettlementStore
}

// New new payee worker
func New(
	wallets core.IWalletService,
	property property.Store,
	transfers core.ITransferStore,
	accounts core.IAccountContextStore,
	tokenz core.ITokenService,
	balancez core.IBalanceService,
	settlements core.ISettlementStore,
) *Payee {
	return &Payee{
		TickWorker:  worker.TickWorker{Delay: time.Second, ErrDelay: 5 * time.Second},
		wallets:     wallets,
		property:    property,
		transfers:   transfers,
		accounts:    accounts,
		tokenz:      tokenz,
		balancez:    balancez,
		settlements: settlements,
	}
}

// Run run worker
func (w *Payee) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Payee) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "payee")

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	offset := v.Time()
	snapshots, err := w.wallets.PullSnapshots(ctx, offset, limit)
	if err != nil {
		log.WithError(err).Errorln("walletz.PullSnapshots")
		return err
	}

	if len(snapshots) == 0 {
		return worker.ErrNoWork
	}

	if err := w.handleSnapshots(ctx, snapshots); err != nil {
		return err
	}

	next := snapshots[len(snapshots)-1].CreatedAt
	if !next.After(offset) {
		return worker.ErrNoWork
	}

	if err := w.property.Save(ctx, checkpointKey, next); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

func (w *Payee) handleSnapshots(ctx context.Context, snapshots []*core.Snapshot) error {
	for _, snapshot := range snapshots {
		if err := w.handleSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}

	return nil
}

func (w *Payee) handleSnapshot(ctx context.Context, snapshot *core.Snapshot) error {
	log := logger.FromContext(ctx).WithField("snapshot", snapshot.SnapshotID)
	ctx = logger.WithContext(ctx, log)

	// payouts of the dapp and deposits from outside mixin have no payer to credit
	if !snapshot.Amount.IsPositive() || snapshot.OpponentID == "" {
		return nil
	}

	handled, err := w.transfers.ListBySettleID(ctx, snapshot.SnapshotID)
	if err != nil {
		log.WithError(err).Errorln("transfers.ListBySettleID")
		return err
	}

	if len(handled) > 0 {
		return nil
	}

	settlement := core.NewSettlement(snapshot.SnapshotID, snapshot.CreatedAt)
	if err := w.credit(ctx, settlement, snapshot); err != nil {
		if _, ok := errors.Cause(err).(core.ErrorCode); !ok {
			return err
		}

		log.WithError(err).Infoln("refund")
		settlement = core.NewSettlement(snapshot.SnapshotID, snapshot.CreatedAt)
		w.refund(settlement, snapshot)
	}

	if err := w.settlements.Commit(ctx, settlement); err != nil {
		log.WithError(err).Errorln("settlements.Commit")
		return err
	}

	return nil
}

// credit stages the payment as cash of the payer in the memo currency
func (w *Payee) credit(ctx context.Context, settlement *core.Settlement, snapshot *core.Snapshot) error {
	memo, err := wallet.DecodeMemo(snapshot.Memo)
	if err != nil {
		return errors.Wrap(core.ErrOperationForbidden, "payee/invalid-memo")
	}

	token, err := w.tokenz.GetAssetToken(ctx, memo.CurrencyID)
	if err != nil {
		return err
	}

	if err := liquidation.Require(token.AssetID == snapshot.AssetID, "payee/asset-mismatch", core.ErrOperationForbidden); err != nil {
		return err
	}

	external := snapshot.Amount.Shift(token.Decimals).Truncate(0)
	if err := liquidation.Require(external.IsPositive(), "payee/dust", core.ErrOperationForbidden); err != nil {
		return err
	}

	internal, err := liquidation.ConvertToInternal(token, external)
	if err != nil {
		return errors.Wrapf(core.ErrOperationForbidden, "payee/convert-to-internal: %s", err)
	}

	accountContext, err := w.accounts.Find(ctx, snapshot.OpponentID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("accounts.Find")
		return err
	}

	balance, err := w.balancez.LoadBalanceState(ctx, snapshot.OpponentID, token.CurrencyID, accountContext)
	if err != nil {
		return err
	}

	balance.NetCashChange = internal
	if err := w.balancez.Finalize(ctx, settlement, balance, snapshot.OpponentID, accountContext, false); err != nil {
		return err
	}

	settlement.AddTransfer(&core.Transfer{
		OpponentID: snapshot.OpponentID,
		CurrencyID: token.CurrencyID,
		AssetID:    token.AssetID,
		Amount:     external,
		Decimals:   token.Decimals,
		Status:     core.TransferStatusDone,
	})

	return nil
}

// refund queues the whole payment back to the payer
func (w *Payee) refund(settlement *core.Settlement, snapshot *core.Snapshot) {
	settlement.AddTransfer(&core.Transfer{
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount.Shift(mixinDecimals).Truncate(0).Neg(),
		Decimals:   mixinDecimals,
		Status:     core.TransferStatusPending,
	})
}
