package cashier

import (
	"context"

	"liquidator/core"
	"liquidator/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Cashier cashier
//
// pays out pending transfers queued by settlements
type Cashier struct {
	worker.TickWorker
	transfers core.ITransferStore
	wallets   core.IWalletService
	cfg       Config
}

type Config struct {
	Batch    int   `json:"batch" valid:"required"`
	Capacity int64 `json:"capacity" valid:"required"`
}

// New new cashier
func New(
	transfers core.ITransferStore,
	wallets core.IWalletService,
	cfg Config,
) *Cashier {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	cashier := Cashier{
		transfers: transfers,
		wallets:   wallets,
		cfg:       cfg,
	}

	return &cashier
}

// Run run worker
func (w *Cashier) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Cashier) onWork(ctx context.Context) error {
	f := w.sync
	if w.cfg.Capacity > 1 {
		f = w.parallel(w.cfg.Capacity)
	}

	log := logger.FromContext(ctx).WithField("worker", "cashier")

	transfers, err := w.transfers.ListPending(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list transfers")
		return err
	}

	if len(transfers) == 0 {
		return worker.ErrNoWork
	}

	return f(ctx, transfers)
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	// deposits are already collected
	if transfer.IsPayout() {
		snapshot, err := w.wallets.HandleTransfer(ctx, transfer)
		if err != nil {
			log.WithError(err).Errorln("walletz.HandleTransfer")
			return err
		}

		log.WithField("snapshot", snapshot.SnapshotID).Infoln("paid")
	}

	if err := w.transfers.UpdateStatus(ctx, transfer, core.TransferStatusDone); err != nil {
		log.WithError(err).Errorln("transfers.UpdateStatus")
		return err
	}

	return nil
}
