package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/uuid"
)

type balanceKey struct {
	account    string
	currencyID uint16
}

// Settlement unit of work of one liquidation. Finalize steps stage rows
// here and ISettlementStore.Commit persists all of them or none.
type Settlement struct {
	TraceID   string
	CreatedAt time.Time

	balances  []*Balance
	finalized map[balanceKey]bool
	contexts  []*AccountContext
	transfers []*Transfer

	Liquidation *Liquidation
}

// NewSettlement new settlement
func NewSettlement(traceID string, now time.Time) *Settlement {
	return &Settlement{
		TraceID:   traceID,
		CreatedAt: now,
		finalized: map[balanceKey]bool{},
	}
}

// IsFinalized balance of account in currency already staged
func (s *Settlement) IsFinalized(account string, currencyID uint16) bool {
	return s.finalized[balanceKey{account, currencyID}]
}

// StageBalance stage the new balance row, once per account and currency
func (s *Settlement) StageBalance(balance *Balance) error {
	key := balanceKey{balance.Account, balance.CurrencyID}
	if s.finalized[key] {
		return ErrBalanceAlreadyFinalized
	}

	s.finalized[key] = true
	s.balances = append(s.balances, balance)
	return nil
}

// StageAccountContext stage an account context, restaging the same account replaces it
func (s *Settlement) StageAccountContext(accountContext *AccountContext) {
	for idx, c := range s.contexts {
		if c.Account == accountContext.Account {
			s.contexts[idx] = accountContext
			return
		}
	}

	s.contexts = append(s.contexts, accountContext)
}

// AddTransfer queue a transfer with a trace id derived from the settlement
func (s *Settlement) AddTransfer(transfer *Transfer) {
	transfer.SettleID = s.TraceID
	transfer.TraceID = uuid.Modify(s.TraceID, fmt.Sprintf("transfer:%d", len(s.transfers)))
	transfer.CreatedAt = s.CreatedAt
	s.transfers = append(s.transfers, transfer)
}

// Balances staged balances
func (s *Settlement) Balances() []*Balance {
	return s.balances
}

// AccountContexts staged account contexts
func (s *Settlement) AccountContexts() []*AccountContext {
	return s.contexts
}

// Transfers queued transfers
func (s *Settlement) Transfers() []*Transfer {
	return s.transfers
}

// ISettlementStore settlement store interface
type ISettlementStore interface {
	// Commit persists every staged row in one transaction
	Commit(ctx context.Context, settlement *Settlement) error
}
