package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	GinMode string
	Port    string

	DBDSN string

	JWTSecretKey string
	JWTTTL       time.Duration

	DarajaBaseURL        string
	DarajaConsumerKey    string
	DarajaConsumerSecret string
	DarajaShortCode      string
	DarajaPasskey        string
	DarajaCallbackURL    string
	DarajaTimeout        time.Duration
}

func Load() (*Config, error) {
	getEnv := func(key string, required bool) (string, error) {
		value := os.Getenv(key)
		if value == "" && required {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg := &Config{}
	var err error

	cfg.GinMode = os.Getenv("GIN_MODE")
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.DBDSN, err = getEnv("DB_DSN", true); err != nil {
		return nil, err
	}
	if cfg.JWTSecretKey, err = getEnv("JWT_SECRET_KEY", true); err != nil {
		return nil, err
	}

	cfg.JWTTTL = 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", perr)
		}
		cfg.JWTTTL = d
	}

	cfg.DarajaBaseURL = os.Getenv("DARAJA_BASE_URL")
	if cfg.DarajaBaseURL == "" {
		cfg.DarajaBaseURL = "https://sandbox.safaricom.co.ke"
	}
	if cfg.DarajaConsumerKey, err = getEnv("DARAJA_CONSUMER_KEY", true); err != nil {
		return nil, err
	}
	if cfg.DarajaConsumerSecret, err = getEnv("DARAJA_CONSUMER_SECRET", true); err != nil {
		return nil, err
	}
	if cfg.DarajaShortCode, err = getEnv("DARAJA_SHORTCODE", true); err != nil {
		return nil, err
	}
	if cfg.DarajaPasskey, err = getEnv("DARAJA_PASSKEY", true); err != nil {
		return nil, err
	}
	if cfg.DarajaCallbackURL, err = getEnv("DARAJA_CALLBACK_URL", true); err != nil {
		return nil, err
	}

	cfg.DarajaTimeout = 30 * time.Second
	if v := os.Getenv("DARAJA_TIMEOUT"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return nil, fmt.Errorf("invalid DARAJA_TIMEOUT: %w", perr)
		}
		cfg.DarajaTimeout = d
	}

	return cfg, nil
}
