package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bobadragon/storefront/internal/flagx"
	"github.com/bobadragon/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "60s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	CacheDSN            string         `json:"cache_dsn"`
	StoreStatusInterval timex.Duration `json:"store_status_interval"`
	OrdersPollInterval  timex.Duration `json:"orders_poll_interval"`
	HTTPTimeout         timex.Duration `json:"http_timeout"`
	DeliveryFee         int64          `json:"delivery_fee"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent nothing is loaded.
// Only fields present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.StoreStatusInterval.Duration != 0 {
		cfg.StoreStatusInterval = time.Duration(jc.StoreStatusInterval.Duration)
	}
	if jc.OrdersPollInterval.Duration != 0 {
		cfg.OrdersPollInterval = time.Duration(jc.OrdersPollInterval.Duration)
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.DeliveryFee != 0 {
		cfg.DeliveryFee = jc.DeliveryFee
	}
}
