package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONVERSION_RATE", "")
	t.Setenv("PRICE_BUCKET", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ConversionRate.Equal(decimal.RequireFromString("4.97")) {
		t.Fatalf("rate=%s", cfg.ConversionRate)
	}
	if !cfg.PriceBucket.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("bucket=%s", cfg.PriceBucket)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONVERSION_RATE", "5,02")
	t.Setenv("PRICE_BUCKET", "10")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ConversionRate.Equal(decimal.RequireFromString("5.02")) {
		t.Fatalf("rate=%s", cfg.ConversionRate)
	}
	if !cfg.PriceBucket.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("bucket=%s", cfg.PriceBucket)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.test" {
		t.Fatalf("origins=%v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsNonPositiveBucket(t *testing.T) {
	t.Setenv("PRICE_BUCKET", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero bucket")
	}
}

func TestLoadWatchSettings(t *testing.T) {
	t.Setenv("WATCH_INTERVAL_SEC", "-5")
	t.Setenv("WATCH_AUTO_EXPORT", "off")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WatchIntervalSec != 30 {
		t.Fatalf("interval=%d", cfg.WatchIntervalSec)
	}
	if cfg.WatchAutoExport {
		t.Fatal("auto export should be off")
	}
}
