package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type envConfig struct {
	EndpointAddr                 string        `envconfig:"ENDPOINT_ADDR"`
	DatabaseDSN                  string        `envconfig:"DATABASE_DSN"`
	SecretKey                    string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `envconfig:"ACCESS_TOKEN_VALIDITY"`
	RefreshTokenValidityDuration time.Duration `envconfig:"REFRESH_TOKEN_VALIDITY"`
	ClientBaseURL                string        `envconfig:"CLIENT_BASE_URL"`
	StripeSecretKey              string        `envconfig:"STRIPE_SECRET_KEY"`
	StripeAPIBase                string        `envconfig:"STRIPE_API_BASE"`
	MapsAPIKey                   string        `envconfig:"MAPS_API_KEY"`
	ShippingCost                 int64         `envconfig:"SHIPPING_COST"`
	S3RootUser                   string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword               string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                     string        `envconfig:"S3_BUCKET"`
	S3Region                     string        `envconfig:"S3_REGION"`
	S3BaseEndpoint               string        `envconfig:"S3_BASE_ENDPOINT"`
	PresignTTL                   time.Duration `envconfig:"PRESIGN_TTL"`
}

// parseEnv overlays Config with STOREFRONT_* environment variables. Unset
// variables leave the current values alone.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("storefront", &ec); err != nil {
		panic(err)
	}

	if ec.EndpointAddr != "" {
		cfg.EndpointAddr = ec.EndpointAddr
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
	if ec.SecretKey != "" {
		cfg.SecretKey = ec.SecretKey
	}
	if ec.AccessTokenValidityDuration != 0 {
		cfg.AccessTokenValidityDuration = ec.AccessTokenValidityDuration
	}
	if ec.RefreshTokenValidityDuration != 0 {
		cfg.RefreshTokenValidityDuration = ec.RefreshTokenValidityDuration
	}
	if ec.ClientBaseURL != "" {
		cfg.ClientBaseURL = ec.ClientBaseURL
	}
	if ec.StripeSecretKey != "" {
		cfg.StripeSecretKey = ec.StripeSecretKey
	}
	if ec.StripeAPIBase != "" {
		cfg.StripeAPIBase = ec.StripeAPIBase
	}
	if ec.MapsAPIKey != "" {
		cfg.MapsAPIKey = ec.MapsAPIKey
	}
	if ec.ShippingCost != 0 {
		cfg.ShippingCost = ec.ShippingCost
	}
	if ec.S3RootUser != "" {
		cfg.S3RootUser = ec.S3RootUser
	}
	if ec.S3RootPassword != "" {
		cfg.S3RootPassword = ec.S3RootPassword
	}
	if ec.S3Bucket != "" {
		cfg.S3Bucket = ec.S3Bucket
	}
	if ec.S3Region != "" {
		cfg.S3Region = ec.S3Region
	}
	if ec.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = ec.S3BaseEndpoint
	}
	if ec.PresignTTL != 0 {
		cfg.PresignTTL = ec.PresignTTL
	}
}
