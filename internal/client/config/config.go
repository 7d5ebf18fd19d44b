package config

import "time"

// Config holds runtime settings for the storefront client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend callable endpoint.
//   - CacheDSN: path of the local session cache database.
//   - StoreStatusInterval: how often the open/closed status is refreshed.
//   - OrdersPollInterval: how often the live orders feed polls.
//   - HTTPTimeout: per-request timeout for backend calls.
//   - StartupQuery: query string carried back from a payment redirect,
//     e.g. "payment_status=success".
//   - DeliveryFee: flat delivery charge in centavos added at checkout.
type Config struct {
	ServerBaseURL       string
	CacheDSN            string
	StoreStatusInterval time.Duration
	OrdersPollInterval  time.Duration
	HTTPTimeout         time.Duration
	StartupQuery        string
	DeliveryFee         int64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.CacheDSN = "storefront.db"
	c.StoreStatusInterval = 60 * time.Second
	c.OrdersPollInterval = 15 * time.Second
	c.HTTPTimeout = 10 * time.Second
	c.DeliveryFee = 3500
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
