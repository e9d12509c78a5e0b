package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds server settings and the fee schedule. Every monetary value is
// in integer cents so a deployment can reprice without touching logic.
type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	FilingFeeCents           int64 `mapstructure:"FILING_FEE_CENTS"`
	ReleaseFeeCents          int64 `mapstructure:"RELEASE_FEE_CENTS"`
	RushFeeCents             int64 `mapstructure:"RUSH_FEE_CENTS"`
	CertifiedHandlingCents   int64 `mapstructure:"CERTIFIED_HANDLING_CENTS"`
	CertifiedRRHandlingCents int64 `mapstructure:"CERTIFIED_RR_HANDLING_CENTS"`

	// DefaultRecipientCount seeds the mailing recipient count for new-lien
	// sessions (typical statutory notice recipients).
	DefaultRecipientCount int `mapstructure:"DEFAULT_RECIPIENT_COUNT"`

	// SubmissionURL and PaymentURL are the external collaborators that
	// receive finished payloads. Empty means record-and-log only.
	SubmissionURL string `mapstructure:"SUBMISSION_URL"`
	PaymentURL    string `mapstructure:"PAYMENT_URL"`

	DispatchTimeoutSeconds int `mapstructure:"DISPATCH_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults mirror the published flat-fee pricing.
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("FILING_FEE_CENTS", 7500)
	v.SetDefault("RELEASE_FEE_CENTS", 7500)
	v.SetDefault("RUSH_FEE_CENTS", 7500)
	v.SetDefault("CERTIFIED_HANDLING_CENTS", 500)
	v.SetDefault("CERTIFIED_RR_HANDLING_CENTS", 700)
	v.SetDefault("DEFAULT_RECIPIENT_COUNT", 2)
	v.SetDefault("DISPATCH_TIMEOUT_SECONDS", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("FILING_FEE_CENTS")
	v.BindEnv("RELEASE_FEE_CENTS")
	v.BindEnv("RUSH_FEE_CENTS")
	v.BindEnv("CERTIFIED_HANDLING_CENTS")
	v.BindEnv("CERTIFIED_RR_HANDLING_CENTS")
	v.BindEnv("DEFAULT_RECIPIENT_COUNT")
	v.BindEnv("SUBMISSION_URL")
	v.BindEnv("PAYMENT_URL")
	v.BindEnv("DISPATCH_TIMEOUT_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Fees are flat
// per-request charges and may legitimately be zero, but never negative.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	fees := map[string]int64{
		"FILING_FEE_CENTS":            c.FilingFeeCents,
		"RELEASE_FEE_CENTS":           c.ReleaseFeeCents,
		"RUSH_FEE_CENTS":              c.RushFeeCents,
		"CERTIFIED_HANDLING_CENTS":    c.CertifiedHandlingCents,
		"CERTIFIED_RR_HANDLING_CENTS": c.CertifiedRRHandlingCents,
	}
	for name, v := range fees {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}
	if c.DefaultRecipientCount < 0 {
		return fmt.Errorf("DEFAULT_RECIPIENT_COUNT must be >= 0, got %d", c.DefaultRecipientCount)
	}
	if c.DispatchTimeoutSeconds <= 0 {
		return fmt.Errorf("DISPATCH_TIMEOUT_SECONDS must be > 0, got %d", c.DispatchTimeoutSeconds)
	}
	return nil
}
