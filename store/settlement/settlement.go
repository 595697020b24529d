package settlement

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type settlementStore struct {
	db           *db.DB
	balances     core.IBalanceStore
	accounts     core.IAccountContextStore
	transfers    core.ITransferStore
	liquidations core.ILiquidationStore
}

// New new settlement store writing every staged row in one db transaction
func New(
	db *db.DB,
	balances core.IBalanceStore,
	accounts core.IAccountContextStore,
	transfers core.ITransferStore,
	liquidations core.ILiquidationStore,
) core.ISettlementStore {
	return &settlementStore{
		db:           db,
		balances:     balances,
		accounts:     accounts,
		transfers:    transfers,
		liquidations: liquidations,
	}
}

func (s *settlementStore) Commit(ctx context.Context, settlement *core.Settlement) error {
	log := logger.FromContext(ctx).WithField("settlement", settlement.TraceID)

	// versions are bumped by the stores, restore them if the transaction rolls back
	balanceVersions := make([]int64, len(settlement.Balances()))
	for idx, b := range settlement.Balances() {
		balanceVersions[idx] = b.Version
	}

	contextVersions := make([]int64, len(settlement.AccountContexts()))
	for idx, c := range settlement.AccountContexts() {
		contextVersions[idx] = c.Version
	}

	err := s.db.Tx(func(tx *db.DB) error {
		for _, b := range settlement.Balances() {
			if err := s.balances.Save(ctx, tx, b); err != nil {
				log.WithError(err).Errorln("balances.Save")
				return err
			}
		}

		for _, c := range settlement.AccountContexts() {
			if err := s.accounts.Save(ctx, tx, c); err != nil {
				log.WithError(err).Errorln("accounts.Save")
				return err
			}
		}

		for _, t := range settlement.Transfers() {
			if err := s.transfers.Create(ctx, tx, t); err != nil {
				log.WithError(err).Errorln("transfers.Create")
				return err
			}
		}

		if l := settlement.Liquidation; l != nil {
			if err := s.liquidations.Create(ctx, tx, l); err != nil {
				log.WithError(err).Errorln("liquidations.Create")
				return err
			}
		}

		return nil
	})

	if err != nil {
		for idx, b := range settlement.Balances() {
			b.Version = balanceVersions[idx]
		}

		for idx, c := range settlement.AccountContexts() {
			c.Version = contextVersions[idx]
		}
	}

	return err
}
