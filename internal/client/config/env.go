package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type envConfig struct {
	ServerBaseURL       string        `envconfig:"SERVER_BASE_URL"`
	CacheDSN            string        `envconfig:"CACHE_DSN"`
	StoreStatusInterval time.Duration `envconfig:"STORE_STATUS_INTERVAL"`
	OrdersPollInterval  time.Duration `envconfig:"ORDERS_POLL_INTERVAL"`
	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT"`
	DeliveryFee         int64         `envconfig:"DELIVERY_FEE"`
}

// parseEnv overlays Config with STOREFRONT_* environment variables. Unset
// variables leave the current values alone.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("storefront", &ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.CacheDSN != "" {
		cfg.CacheDSN = ec.CacheDSN
	}
	if ec.StoreStatusInterval != 0 {
		cfg.StoreStatusInterval = ec.StoreStatusInterval
	}
	if ec.OrdersPollInterval != 0 {
		cfg.OrdersPollInterval = ec.OrdersPollInterval
	}
	if ec.HTTPTimeout != 0 {
		cfg.HTTPTimeout = ec.HTTPTimeout
	}
	if ec.DeliveryFee != 0 {
		cfg.DeliveryFee = ec.DeliveryFee
	}
}
