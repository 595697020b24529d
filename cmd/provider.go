package cmd

import (
	"liquidator/core"

	"github.com/facebookgo/clock"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideDapp() *core.Wallet {
	c, err := mixin.NewFromKeystore(&cfg.Dapp.Keystore)
	if err != nil {
		panic(err)
	}

	return &core.Wallet{
		Client: c,
		Pin:    cfg.Dapp.Pin,
	}
}

func provideClock() clock.Clock {
	return clock.New()
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}
