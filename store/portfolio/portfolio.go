package portfolio

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store/db"
)

type portfolioStore struct {
	db *db.DB
}

// New new portfolio store
func New(db *db.DB) core.IPortfolioStore {
	return &portfolioStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PortfolioAsset{})
		if err := tx.AutoMigrate(core.PortfolioAsset{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *portfolioStore) List(ctx context.Context, account string) ([]*core.PortfolioAsset, error) {
	var assets []*core.PortfolioAsset
	if err := s.db.View().Where("account = ?", account).Order("currency_id, maturity, asset_type").Find(&assets).Error; err != nil {
		return nil, err
	}

	return assets, nil
}
