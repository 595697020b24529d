// Package memstore keeps liquidation state in memory. It backs the service
// tests and implements the same optimistic version rules as the sql stores.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"liquidator/core"

	"github.com/fox-one/pkg/store/db"
)

// ErrInjectedFault returned by a commit configured to fail
var ErrInjectedFault = errors.New("memstore: injected fault")

type balanceKey struct {
	account    string
	currencyID uint16
}

// Balances in memory core.IBalanceStore
type Balances struct {
	mu   sync.Mutex
	rows map[balanceKey]core.Balance
}

// NewBalances new balance store
func NewBalances() *Balances {
	return &Balances{rows: map[balanceKey]core.Balance{}}
}

// Put seed a balance row
func (s *Balances) Put(balance core.Balance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if balance.Version == 0 {
		balance.Version = 1
	}

	s.rows[balanceKey{balance.Account, balance.CurrencyID}] = balance
}

func (s *Balances) Find(_ context.Context, account string, currencyID uint16) (*core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.rows[balanceKey{account, currencyID}]; ok {
		return &b, nil
	}

	return &core.Balance{Account: account, CurrencyID: currencyID}, nil
}

func (s *Balances) List(_ context.Context, account string) ([]*core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var balances []*core.Balance
	for k, b := range s.rows {
		if k.account == account {
			b := b
			balances = append(balances, &b)
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].CurrencyID < balances[j].CurrencyID
	})

	return balances, nil
}

func (s *Balances) Save(_ context.Context, _ *db.DB, balance *core.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := balanceKey{balance.Account, balance.CurrencyID}
	if stored, ok := s.rows[key]; ok != (balance.Version > 0) || stored.Version != balance.Version {
		return core.ErrStaleState
	}

	balance.Version++
	s.rows[key] = *balance
	return nil
}

func (s *Balances) snapshot() map[balanceKey]core.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[balanceKey]core.Balance, len(s.rows))
	for k, v := range s.rows {
		out[k] = v
	}

	return out
}

func (s *Balances) restore(rows map[balanceKey]core.Balance) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

// Accounts in memory core.IAccountContextStore
type Accounts struct {
	mu   sync.Mutex
	rows map[string]*core.AccountContext
}

// NewAccounts new account context store
func NewAccounts() *Accounts {
	return &Accounts{rows: map[string]*core.AccountContext{}}
}

// Put seed an account context
func (s *Accounts) Put(accountContext *core.AccountContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := accountContext.Clone()
	if c.Version == 0 {
		c.Version = 1
	}

	s.rows[c.Account] = c
}

func (s *Accounts) Find(_ context.Context, account string) (*core.AccountContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.rows[account]; ok {
		return c.Clone(), nil
	}

	return &core.AccountContext{Account: account}, nil
}

func (s *Accounts) Save(_ context.Context, _ *db.DB, accountContext *core.AccountContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rows[accountContext.Account]
	if ok != (accountContext.Version > 0) || (ok && stored.Version != accountContext.Version) {
		return core.ErrStaleState
	}

	accountContext.Version++
	s.rows[accountContext.Account] = accountContext.Clone()
	return nil
}

func (s *Accounts) snapshot() map[string]*core.AccountContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*core.AccountContext, len(s.rows))
	for k, v := range s.rows {
		out[k] = v.Clone()
	}

	return out
}

func (s *Accounts) restore(rows map[string]*core.AccountContext) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}
