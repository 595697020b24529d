package config

import (
	"time"

	"liquidator/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LIQUIDATOR")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(config *core.Config) {
	if config.App.Location == "" {
		config.App.Location = "UTC"
	}

	if config.Cashier.Batch <= 0 {
		config.Cashier.Batch = 100
	}

	if config.Cashier.Capacity <= 0 {
		config.Cashier.Capacity = 1
	}

	if config.Session.Capacity == 0 {
		config.Session.Capacity = 1024
	}

	if config.PriceOracle.Interval <= 0 {
		config.PriceOracle.Interval = time.Minute
	}
}
