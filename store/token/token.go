package token

import (
	"context"

	"liquidator/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type tokenStore struct {
	db *db.DB
}

// New new token store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Token{})
		if err := tx.AutoMigrate(core.Token{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Find(ctx context.Context, currencyID uint16) (*core.Token, error) {
	var token core.Token
	if err := s.db.View().Where("currency_id = ?", currencyID).First(&token).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Token{}, nil
		}

		return nil, err
	}

	return &token, nil
}

func (s *tokenStore) List(ctx context.Context) ([]*core.Token, error) {
	var tokens []*core.Token
	if err := s.db.View().Order("currency_id").Find(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}

func (s *tokenStore) Save(ctx context.Context, token *core.Token) error {
	return s.db.Update().
		Where("currency_id = ?", token.CurrencyID).
		Assign(map[string]interface{}{
			"symbol":              token.Symbol,
			"asset_id":            token.AssetID,
			"underlying_asset_id": token.UnderlyingAssetID,
			"decimals":            token.Decimals,
			"underlying_decimals": token.UnderlyingDecimals,
			"has_transfer_fee":    token.HasTransferFee,
		}).
		FirstOrCreate(token).Error
}
