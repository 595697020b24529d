package core

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"sort"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
)

// DebtFlag account debt bits
type DebtFlag uint8

const (
	// HasAssetDebt negative portfolio asset present
	HasAssetDebt DebtFlag = 0x01
	// HasCashDebt negative cash balance present
	HasCashDebt DebtFlag = 0x02
)

// CurrencyFlag where a currency is active
type CurrencyFlag uint8

const (
	// ActiveInPortfolio currency has portfolio assets
	ActiveInPortfolio CurrencyFlag = 0x80
	// ActiveInBalances currency has a cash or nToken balance
	ActiveInBalances CurrencyFlag = 0x40
)

const (
	// MaxCurrencyID largest valid currency id
	MaxCurrencyID uint16 = 0x3FFF
	// MaxActiveCurrencies active currency slots per account
	MaxActiveCurrencies = 9
)

// ActiveCurrency active currency entry
type ActiveCurrency struct {
	CurrencyID uint16       `json:"currency_id"`
	Flags      CurrencyFlag `json:"flags"`
}

// ActiveCurrencies sorted by currency id
type ActiveCurrencies []ActiveCurrency

// Scan implements sql.Scanner
func (a *ActiveCurrencies) Scan(value interface{}) error {
	s, err := cast.ToStringE(value)
	if err != nil {
		return err
	}

	if s == "" {
		*a = nil
		return nil
	}

	return json.Unmarshal([]byte(s), a)
}

// Value implements driver.Valuer
func (a ActiveCurrencies) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(a)
	return string(b), err
}

// AccountContext per account flags and active currencies
type AccountContext struct {
	ID               uint64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	CreatedAt        time.Time        `json:"created_at,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at,omitempty"`
	Account          string           `sql:"size:36;unique_index:account_context_idx" json:"account"`
	NextSettleTime   int64            `json:"next_settle_time"`
	HasDebt          DebtFlag         `json:"has_debt"`
	AssetArrayLength uint8            `json:"asset_array_length"`
	BitmapCurrencyID uint16           `json:"bitmap_currency_id"`
	ActiveCurrencies ActiveCurrencies `sql:"type:varchar(512)" json:"active_currencies"`
	Version          int64            `json:"version"`
}

// IsActiveInBalances currency is tracked by the balance ledger
func (c *AccountContext) IsActiveInBalances(currencyID uint16) bool {
	if c.BitmapCurrencyID != 0 && c.BitmapCurrencyID == currencyID {
		return true
	}

	for _, a := range c.ActiveCurrencies {
		if a.CurrencyID == currencyID {
			return a.Flags&ActiveInBalances != 0
		}
	}

	return false
}

// SetActiveCurrency set or clear flags of a currency, keeping the list sorted.
// The bitmap currency is always active and never listed.
func (c *AccountContext) SetActiveCurrency(currencyID uint16, isActive bool, flags CurrencyFlag) error {
	if currencyID == 0 || currencyID > MaxCurrencyID {
		return ErrInvalidCurrency
	}

	if c.BitmapCurrencyID == currencyID {
		return nil
	}

	idx := sort.Search(len(c.ActiveCurrencies), func(i int) bool {
		return c.ActiveCurrencies[i].CurrencyID >= currencyID
	})

	found := idx < len(c.ActiveCurrencies) && c.ActiveCurrencies[idx].CurrencyID == currencyID
	switch {
	case found && isActive:
		c.ActiveCurrencies[idx].Flags |= flags
	case found:
		c.ActiveCurrencies[idx].Flags &^= flags
		if c.ActiveCurrencies[idx].Flags == 0 {
			c.ActiveCurrencies = append(c.ActiveCurrencies[:idx], c.ActiveCurrencies[idx+1:]...)
		}
	case isActive:
		if len(c.ActiveCurrencies) >= MaxActiveCurrencies {
			return ErrTooManyActiveCurrencies
		}

		c.ActiveCurrencies = append(c.ActiveCurrencies, ActiveCurrency{})
		copy(c.ActiveCurrencies[idx+1:], c.ActiveCurrencies[idx:])
		c.ActiveCurrencies[idx] = ActiveCurrency{CurrencyID: currencyID, Flags: flags}
	}

	return nil
}

// BalanceCurrencies currencies with a balance, the bitmap currency first
func (c *AccountContext) BalanceCurrencies() []uint16 {
	var ids []uint16
	if c.BitmapCurrencyID != 0 {
		ids = append(ids, c.BitmapCurrencyID)
	}

	for _, a := range c.ActiveCurrencies {
		if a.Flags&ActiveInBalances != 0 {
			ids = append(ids, a.CurrencyID)
		}
	}

	return ids
}

// Clone deep copy
func (c *AccountContext) Clone() *AccountContext {
	out := *c
	out.ActiveCurrencies = append(ActiveCurrencies(nil), c.ActiveCurrencies...)
	return &out
}

// IAccountContextStore account context store interface
type IAccountContextStore interface {
	// Find returns an empty context when the account has none
	Find(ctx context.Context, account string) (*AccountContext, error)
	Save(ctx context.Context, tx *db.DB, accountContext *AccountContext) error
}
