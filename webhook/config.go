package webhook

import (
	"whatsapp-inbox/config"
)

// Config holds the ingestion engine configuration. The deployment is
// single-tenant: payloads carry no account identification, so every event is
// attributed to the configured default account.
type Config struct {
	Secret        string // shared secret for signature verification
	AccountNumber string // default account phone number
	AccountName   string // default account display name
}

// LoadConfig loads webhook configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Secret:        config.GetEnv("WHATSAPP_WEBHOOK_SECRET", ""),
		AccountNumber: config.GetEnv("WHATSAPP_ACCOUNT_NUMBER", "UNKNOWN"),
		AccountName:   config.GetEnv("WHATSAPP_ACCOUNT_NAME", "UNKNOWN"),
	}
}
