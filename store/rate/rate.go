package rate

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type rateStore struct {
	db *db.DB
}

// New new rate store
func New(db *db.DB) core.IRateStore {
	return &rateStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ETHRate{})
		if err := tx.AutoMigrate(core.ETHRate{}).Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.AssetRate{})
		if err := tx.AutoMigrate(core.AssetRate{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *rateStore) FindETHRate(ctx context.Context, currencyID uint16) (*core.ETHRate, error) {
	var rate core.ETHRate
	if err := s.db.View().Where("currency_id = ?", currencyID).First(&rate).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.ETHRate{}, nil
		}

		return nil, err
	}

	return &rate, nil
}

func (s *rateStore) FindAssetRate(ctx context.Context, currencyID uint16) (*core.AssetRate, error) {
	var rate core.AssetRate
	if err := s.db.View().Where("currency_id = ?", currencyID).First(&rate).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.AssetRate{}, nil
		}

		return nil, err
	}

	return &rate, nil
}

func (s *rateStore) ListETHRates(ctx context.Context) ([]*core.ETHRate, error) {
	var rates []*core.ETHRate
	if err := s.db.View().Order("currency_id").Find(&rates).Error; err != nil {
		return nil, err
	}

	return rates, nil
}

// SaveETHRate insert or replace the risk parameters of a currency
func (s *rateStore) SaveETHRate(ctx context.Context, rate *core.ETHRate) error {
	return s.db.Tx(func(tx *db.DB) error {
		var stored core.ETHRate
		if err := tx.Update().Where("currency_id = ?", rate.CurrencyID).First(&stored).Error; err != nil {
			if !store.IsErrNotFound(err) {
				return err
			}

			rate.Version = 1
			return tx.Update().Create(rate).Error
		}

		rate.ID = stored.ID
		rate.CreatedAt = stored.CreatedAt
		rate.Version = stored.Version + 1
		return tx.Update().Save(rate).Error
	})
}

func (s *rateStore) SaveAssetRate(ctx context.Context, rate *core.AssetRate) error {
	return s.db.Update().
		Where("currency_id = ?", rate.CurrencyID).
		Assign(core.AssetRate{Rate: rate.Rate, UnderlyingDecimals: rate.UnderlyingDecimals}).
		FirstOrCreate(rate).Error
}

// UpdateRate stores a new oracle rate if the row is still at rate.Version
func (s *rateStore) UpdateRate(ctx context.Context, rate *core.ETHRate) error {
	version := rate.Version
	update := s.db.Update().Model(core.ETHRate{}).
		Where("currency_id = ? AND version = ?", rate.CurrencyID, version).
		Updates(map[string]interface{}{
			"rate":    rate.Rate,
			"version": gorm.Expr("version + 1"),
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return core.ErrStaleState
	}

	rate.Version = version + 1
	return nil
}
