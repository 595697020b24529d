package memstore

import (
	"context"
	"sync"

	"liquidator/core"

	"github.com/fox-one/pkg/store/db"
)

// Transfers in memory core.ITransferStore
type Transfers struct {
	mu   sync.Mutex
	rows []*core.Transfer
}

// NewTransfers new transfer store
func NewTransfers() *Transfers {
	return &Transfers{}
}

func (s *Transfers) Create(_ context.Context, _ *db.DB, transfer *core.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.rows {
		if t.TraceID == transfer.TraceID {
			return nil
		}
	}

	transfer.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, transfer)
	return nil
}

func (s *Transfers) ListPending(_ context.Context, limit int) ([]*core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transfers []*core.Transfer
	for _, t := range s.rows {
		if t.Status == core.TransferStatusPending && len(transfers) < limit {
			transfers = append(transfers, t)
		}
	}

	return transfers, nil
}

func (s *Transfers) ListBySettleID(_ context.Context, settleID string) ([]*core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transfers []*core.Transfer
	for _, t := range s.rows {
		if t.SettleID == settleID {
			transfers = append(transfers, t)
		}
	}

	return transfers, nil
}

func (s *Transfers) UpdateStatus(_ context.Context, transfer *core.Transfer, status core.TransferStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer.Status = status
	return nil
}

// All every transfer
func (s *Transfers) All() []*core.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*core.Transfer(nil), s.rows...)
}

func (s *Transfers) snapshot() []*core.Transfer {
	return s.All()
}

func (s *Transfers) restore(rows []*core.Transfer) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

// Liquidations in memory core.ILiquidationStore
type Liquidations struct {
	mu   sync.Mutex
	rows []*core.Liquidation
}

// NewLiquidations new liquidation store
func NewLiquidations() *Liquidations {
	return &Liquidations{}
}

func (s *Liquidations) Create(_ context.Context, _ *db.DB, liquidation *core.Liquidation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.rows {
		if l.TraceID == liquidation.TraceID {
			return core.ErrStaleState
		}
	}

	liquidation.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, liquidation)
	return nil
}

func (s *Liquidations) FindByTraceID(_ context.Context, traceID string) (*core.Liquidation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.rows {
		if l.TraceID == traceID {
			return l, nil
		}
	}

	return &core.Liquidation{}, nil
}

func (s *Liquidations) ListByAccount(_ context.Context, account string, limit int) ([]*core.Liquidation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*core.Liquidation
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if s.rows[i].Account == account {
			out = append(out, s.rows[i])
		}
	}

	return out, nil
}

func (s *Liquidations) snapshot() []*core.Liquidation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*core.Liquidation(nil), s.rows...)
}

func (s *Liquidations) restore(rows []*core.Liquidation) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

// Settlements in memory core.ISettlementStore, all or nothing like a db transaction
type Settlements struct {
	Balances     *Balances
	Accounts     *Accounts
	Transfers    *Transfers
	Liquidations *Liquidations

	// FailAfter fails a commit once this many rows are written, negative disables
	FailAfter int

	mu sync.Mutex
}

// NewSettlements new settlement store over fresh stores
func NewSettlements() *Settlements {
	return &Settlements{
		Balances:     NewBalances(),
		Accounts:     NewAccounts(),
		Transfers:    NewTransfers(),
		Liquidations: NewLiquidations(),
		FailAfter:    -1,
	}
}

func (s *Settlements) Commit(ctx context.Context, settlement *core.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		balances     = s.Balances.snapshot()
		accounts     = s.Accounts.snapshot()
		transfers    = s.Transfers.snapshot()
		liquidations = s.Liquidations.snapshot()
	)

	if err := s.commit(ctx, settlement); err != nil {
		s.Balances.restore(balances)
		s.Accounts.restore(accounts)
		s.Transfers.restore(transfers)
		s.Liquidations.restore(liquidations)
		return err
	}

	return nil
}

func (s *Settlements) commit(ctx context.Context, settlement *core.Settlement) error {
	written := 0
	step := func(err error) error {
		if err != nil {
			return err
		}

		written++
		if s.FailAfter >= 0 && written > s.FailAfter {
			return ErrInjectedFault
		}

		return nil
	}

	for _, b := range settlement.Balances() {
		if err := step(s.Balances.Save(ctx, nil, b)); err != nil {
			return err
		}
	}

	for _, c := range settlement.AccountContexts() {
		if err := step(s.Accounts.Save(ctx, nil, c)); err != nil {
			return err
		}
	}

	for _, t := range settlement.Transfers() {
		if err := step(s.Transfers.Create(ctx, nil, t)); err != nil {
			return err
		}
	}

	if l := settlement.Liquidation; l != nil {
		if err := step(s.Liquidations.Create(ctx, nil, l)); err != nil {
			return err
		}
	}

	return nil
}
