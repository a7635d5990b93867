package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	SnapshotDir string
	OutputDir   string
	CatalogPath string

	ConversionRate decimal.Decimal
	PriceBucket    decimal.Decimal

	InventoryManagement string

	ServerPort  string
	ServerEnv   string
	LogLevel    string
	CORSOrigins []string

	AcquirePerMinute float64
	AcquireBurst     int

	WatchIntervalSec int
	WatchAutoExport  bool
	ShutdownTimeout  int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		SnapshotDir: getEnv("SNAPSHOT_DIR", filepath.Join(cwd, "data", "snapshots")),
		OutputDir:   getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		ConversionRate: getEnvDecimal("CONVERSION_RATE", decimal.RequireFromString("4.97")),
		PriceBucket:    getEnvDecimal("PRICE_BUCKET", decimal.NewFromInt(5)),

		InventoryManagement: getEnv("DEFAULT_INVENTORY_MANAGEMENT", "shopify"),

		ServerPort:  getEnv("SERVER_PORT", "8080"),
		ServerEnv:   getEnv("SERVER_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		AcquirePerMinute: getEnvFloat("ACQUIRE_RATE_PER_MIN", 20),
		AcquireBurst:     getEnvInt("ACQUIRE_BURST", 3),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 30),
		WatchAutoExport:  getEnvBool("WATCH_AUTO_EXPORT", true),
		ShutdownTimeout:  getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
	}

	if !cfg.ConversionRate.IsPositive() {
		return Config{}, fmt.Errorf("CONVERSION_RATE must be positive, got %s", cfg.ConversionRate)
	}
	if !cfg.PriceBucket.IsPositive() {
		return Config{}, fmt.Errorf("PRICE_BUCKET must be positive, got %s", cfg.PriceBucket)
	}
	if cfg.WatchIntervalSec <= 0 {
		cfg.WatchIntervalSec = 30
	}

	return cfg, nil
}

var ErrMissingSetting = errors.New("missing required setting")

// Require fails when a setting a component cannot run without is blank.
func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingSetting, name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(strings.ReplaceAll(value, ",", "."))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
