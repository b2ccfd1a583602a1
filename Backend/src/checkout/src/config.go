package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	CustomerName     string `envconfig:"CHECKOUT_CUSTOMER_NAME" default:"Ibrahim"`
	CustomerBalance  string `envconfig:"CHECKOUT_CUSTOMER_BALANCE" default:"1000"`
	CatalogPath      string `envconfig:"CHECKOUT_CATALOG_PATH"`
	DBDriver         string `envconfig:"CHECKOUT_DB_DRIVER" default:"sqlite"`
	DBPath           string `envconfig:"CHECKOUT_DB_PATH"`
	ReceiptCacheSize int    `envconfig:"CHECKOUT_RECEIPT_CACHE" default:"128"`
	RabbitURL        string `envconfig:"RABBIT_URL"`
	RabbitExchange   string `envconfig:"RABBIT_EXCHANGE" default:"domain_events"`
	MetricsTextfile  string `envconfig:"CHECKOUT_METRICS_TEXTFILE"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the optional env files, then the process environment.
// Variables already set in the environment win over the files. It also sets
// the global log level from LOG_LEVEL.
func LoadConfig(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
	default:
		return nil, fmt.Errorf("CHECKOUT_DB_DRIVER: unsupported driver %q", cfg.DBDriver)
	}
	if cfg.ReceiptCacheSize <= 0 {
		return nil, fmt.Errorf("CHECKOUT_RECEIPT_CACHE must be positive, got %d", cfg.ReceiptCacheSize)
	}
	applyLogLevel(cfg.LogLevel)

	shown := cfg
	shown.RabbitURL = redactURL(cfg.RabbitURL)
	log.Debug().Interface("config", shown).Msg("[checkout] config loaded")
	return &cfg, nil
}

func applyLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		log.Warn().Str("level", level).Msg("unknown LOG_LEVEL, keeping info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// redactURL hides the password of a broker URL before it is logged.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparsable>"
	}
	return u.Redacted()
}
