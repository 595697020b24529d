package account

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountContextStore struct {
	db *db.DB
}

// New new account context store
func New(db *db.DB) core.IAccountContextStore {
	return &accountContextStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AccountContext{})
		if err := tx.AutoMigrate(core.AccountContext{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountContextStore) Find(ctx context.Context, account string) (*core.AccountContext, error) {
	var accountContext core.AccountContext
	if err := s.db.View().Where("account = ?", account).First(&accountContext).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.AccountContext{Account: account}, nil
		}

		return nil, err
	}

	return &accountContext, nil
}

func (s *accountContextStore) Save(ctx context.Context, tx *db.DB, accountContext *core.AccountContext) error {
	if accountContext.Version == 0 {
		accountContext.Version = 1
		return tx.Update().Create(accountContext).Error
	}

	version := accountContext.Version
	update := tx.Update().Model(core.AccountContext{}).
		Where("account = ? AND version = ?", accountContext.Account, version).
		Updates(map[string]interface{}{
			"next_settle_time":   accountContext.NextSettleTime,
			"has_debt":           accountContext.HasDebt,
			"asset_array_length": accountContext.AssetArrayLength,
			"bitmap_currency_id": accountContext.BitmapCurrencyID,
			"active_currencies":  accountContext.ActiveCurrencies,
			"version":            gorm.Expr("version + 1"),
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return core.ErrStaleState
	}

	accountContext.Version = version + 1
	return nil
}
