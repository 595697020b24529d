package core

import (
	"time"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config liquidator config
type Config struct {
	App         App           `json:"app"`
	DB          db.Config     `json:"db"`
	Dapp        Dapp          `json:"dapp"`
	PriceOracle PriceOracle   `json:"price_oracle"`
	Cashier     Cashier       `json:"cashier"`
	Session     SessionConfig `json:"session"`
}

// App app config
type App struct {
	Location string `json:"location"`
}

// Dapp mixin dapp paying out transfers
type Dapp struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// ETHAssetID asset the eth rates are quoted in
	ETHAssetID string `json:"eth_asset_id"`
	// Interval between two rate refreshes
	Interval time.Duration `json:"interval"`
}

// Cashier transfer delivery config
type Cashier struct {
	Batch    int   `json:"batch"`
	Capacity int64 `json:"capacity"`
}

// SessionConfig user session config
type SessionConfig struct {
	// Capacity of the access token cache, negative disables it
	Capacity int `json:"capacity"`
}
