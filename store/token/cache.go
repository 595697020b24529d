package token

import (
	"context"
	"fmt"

	"liquidator/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache tokens rarely change, keep found ones in memory
func Cache(store core.ITokenStore) core.ITokenStore {
	return &cacheTokenStore{
		ITokenStore: store,
		cache:       gcache.New(256).LRU().Build(),
		sf:          &singleflight.Group{},
	}
}

type cacheTokenStore struct {
	core.ITokenStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheTokenStore) Find(ctx context.Context, currencyID uint16) (*core.Token, error) {
	key := s.tokenKey(currencyID)
	if v, err := s.cache.Get(key); err == nil {
		if token, ok := v.(*core.Token); ok {
			return token, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		token, err := s.ITokenStore.Find(ctx, currencyID)
		if err != nil {
			return nil, err
		}

		if token.ID > 0 {
			_ = s.cache.Set(key, token)
		}

		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Token), nil
}

func (s *cacheTokenStore) Save(ctx context.Context, token *core.Token) error {
	if err := s.ITokenStore.Save(ctx, token); err != nil {
		return err
	}

	s.cache.Remove(s.tokenKey(token.CurrencyID))
	return nil
}

func (s *cacheTokenStore) tokenKey(currencyID uint16) string {
	return fmt.Sprintf("token:currency:%d", currencyID)
}
