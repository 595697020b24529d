package memstore

import (
	"context"
	"sort"
	"sync"

	"liquidator/core"
)

// Tokens in memory core.ITokenStore
type Tokens struct {
	mu   sync.Mutex
	rows map[uint16]core.Token
}

// NewTokens new token store
func NewTokens(tokens ...core.Token) *Tokens {
	s := &Tokens{rows: map[uint16]core.Token{}}
	for _, t := range tokens {
		s.rows[t.CurrencyID] = t
	}

	return s
}

func (s *Tokens) Find(_ context.Context, currencyID uint16) (*core.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.rows[currencyID]
	return &t, nil
}

func (s *Tokens) List(_ context.Context) ([]*core.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := make([]*core.Token, 0, len(s.rows))
	for _, t := range s.rows {
		t := t
		tokens = append(tokens, &t)
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].CurrencyID < tokens[j].CurrencyID
	})

	return tokens, nil
}

func (s *Tokens) Save(_ context.Context, token *core.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[token.CurrencyID] = *token
	return nil
}

// Rates in memory core.IRateStore
type Rates struct {
	mu         sync.Mutex
	ethRates   map[uint16]core.ETHRate
	assetRates map[uint16]core.AssetRate
}

// NewRates new rate store
func NewRates() *Rates {
	return &Rates{
		ethRates:   map[uint16]core.ETHRate{},
		assetRates: map[uint16]core.AssetRate{},
	}
}

func (s *Rates) FindETHRate(_ context.Context, currencyID uint16) (*core.ETHRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.ethRates[currencyID]
	return &r, nil
}

func (s *Rates) FindAssetRate(_ context.Context, currencyID uint16) (*core.AssetRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.assetRates[currencyID]
	return &r, nil
}

func (s *Rates) ListETHRates(_ context.Context) ([]*core.ETHRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rates := make([]*core.ETHRate, 0, len(s.ethRates))
	for _, r := range s.ethRates {
		r := r
		rates = append(rates, &r)
	}

	sort.Slice(rates, func(i, j int) bool {
		return rates[i].CurrencyID < rates[j].CurrencyID
	})

	return rates, nil
}

func (s *Rates) SaveETHRate(_ context.Context, rate *core.ETHRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ethRates[rate.CurrencyID] = *rate
	return nil
}

func (s *Rates) SaveAssetRate(_ context.Context, rate *core.AssetRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assetRates[rate.CurrencyID] = *rate
	return nil
}

func (s *Rates) UpdateRate(_ context.Context, rate *core.ETHRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ethRates[rate.CurrencyID]
	if !ok || stored.Version != rate.Version {
		return core.ErrStaleState
	}

	stored.Rate = rate.Rate
	stored.Version++
	rate.Version = stored.Version
	s.ethRates[rate.CurrencyID] = stored
	return nil
}

// Portfolios in memory core.IPortfolioStore
type Portfolios struct {
	mu     sync.Mutex
	assets map[string][]*core.PortfolioAsset
}

// NewPortfolios new portfolio store
func NewPortfolios() *Portfolios {
	return &Portfolios{assets: map[string][]*core.PortfolioAsset{}}
}

// Add seed an asset
func (s *Portfolios) Add(asset *core.PortfolioAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets[asset.Account] = append(s.assets[asset.Account], asset)
}

func (s *Portfolios) List(_ context.Context, account string) ([]*core.PortfolioAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*core.PortfolioAsset(nil), s.assets[account]...), nil
}
