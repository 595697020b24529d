package balance

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type balanceStore struct {
	db *db.DB
}

// New new balance store
func New(db *db.DB) core.IBalanceStore {
	return &balanceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *balanceStore) Find(ctx context.Context, account string, currencyID uint16) (*core.Balance, error) {
	var balance core.Balance
	if err := s.db.View().Where("account = ? AND currency_id = ?", account, currencyID).First(&balance).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Balance{Account: account, CurrencyID: currencyID}, nil
		}

		return nil, err
	}

	return &balance, nil
}

func (s *balanceStore) List(ctx context.Context, account string) ([]*core.Balance, error) {
	var balances []*core.Balance
	if err := s.db.View().Where("account = ?", account).Order("currency_id").Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

// Save creates the row at version 0, otherwise updates it only if nobody else did
func (s *balanceStore) Save(ctx context.Context, tx *db.DB, balance *core.Balance) error {
	if balance.Version == 0 {
		balance.Version = 1
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	update := tx.Update().Model(core.Balance{}).
		Where("account = ? AND currency_id = ? AND version = ?", balance.Account, balance.CurrencyID, version).
		Updates(map[string]interface{}{
			"cash_balance":   balance.CashBalance,
			"ntoken_balance": balance.NTokenBalance,
			"version":        gorm.Expr("version + 1"),
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return core.ErrStaleState
	}

	balance.Version = version + 1
	return nil
}
