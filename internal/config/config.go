package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/foresightmx/foresight/internal/mail"
)

// Config holds all configuration for the application.
type Config struct {
	// Supabase project; when both are empty the app falls back to the
	// local profile store.
	SupabaseURL string
	SupabaseKey string

	// Path of the bbolt fallback store.
	LocalDBPath string

	// Server
	Port string
	Env  string

	// Transactional email; optional, summary emails are disabled without it.
	SMTP mail.SMTPConfig
}

// Load reads configuration from the environment, honoring a .env file when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),
		LocalDBPath: getEnv("LOCAL_DB_PATH", "foresight.db"),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		SMTP: mail.SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseSupabase reports whether a remote project is configured.
func (c *Config) UseSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// MailEnabled reports whether summary emails can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

func (c *Config) validate() error {
	if c.SupabaseURL != "" && c.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_KEY is required when SUPABASE_URL is set")
	}
	if !c.UseSupabase() && c.LocalDBPath == "" {
		return fmt.Errorf("LOCAL_DB_PATH is required without a Supabase project")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
