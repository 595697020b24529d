package liquidation

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type liquidationStore struct {
	db *db.DB
}

// New new liquidation store
func New(db *db.DB) core.ILiquidationStore {
	return &liquidationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Liquidation{})
		if err := tx.AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create fails on a duplicated trace id through the unique index
func (s *liquidationStore) Create(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	return tx.Update().Create(liquidation).Error
}

func (s *liquidationStore) FindByTraceID(ctx context.Context, traceID string) (*core.Liquidation, error) {
	var liquidation core.Liquidation
	if err := s.db.View().Where("trace_id = ?", traceID).First(&liquidation).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Liquidation{}, nil
		}

		return nil, err
	}

	return &liquidation, nil
}

func (s *liquidationStore) ListByAccount(ctx context.Context, account string, limit int) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	if err := s.db.View().
		Where("account = ?", account).
		Order("id DESC").
		Limit(limit).
		Find(&liquidations).Error; err != nil {
		return nil, err
	}

	return liquidations, nil
}
