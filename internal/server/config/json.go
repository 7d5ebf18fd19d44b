package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bobadragon/storefront/internal/flagx"
	"github.com/bobadragon/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be written as strings like "15m" or as integer nanoseconds.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	ClientBaseURL                string         `json:"client_base_url"`
	StripeSecretKey              string         `json:"stripe_secret_key"`
	StripeAPIBase                string         `json:"stripe_api_base"`
	MapsAPIKey                   string         `json:"maps_api_key"`
	ShippingCost                 int64          `json:"shipping_cost"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	PresignTTL                   timex.Duration `json:"presign_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// through the -c/-config flags. Only fields present in the file override
// the current values.
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

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = time.Duration(jc.AccessTokenValidityDuration.Duration)
	}
	if jc.RefreshTokenValidityDuration.Duration != 0 {
		cfg.RefreshTokenValidityDuration = time.Duration(jc.RefreshTokenValidityDuration.Duration)
	}
	if jc.ClientBaseURL != "" {
		cfg.ClientBaseURL = jc.ClientBaseURL
	}
	if jc.StripeSecretKey != "" {
		cfg.StripeSecretKey = jc.StripeSecretKey
	}
	if jc.StripeAPIBase != "" {
		cfg.StripeAPIBase = jc.StripeAPIBase
	}
	if jc.MapsAPIKey != "" {
		cfg.MapsAPIKey = jc.MapsAPIKey
	}
	if jc.ShippingCost != 0 {
		cfg.ShippingCost = jc.ShippingCost
	}
	if jc.S3RootUser != "" {
		cfg.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		cfg.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.PresignTTL.Duration != 0 {
		cfg.PresignTTL = time.Duration(jc.PresignTTL.Duration)
	}
}
