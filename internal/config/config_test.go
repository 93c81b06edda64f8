package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "USE_MOCK_DATA", "KAFKA_BROKERS", "CORS_ORIGINS", "FEATURED_LIMIT", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.MockData {
		t.Fatalf("mock data should default to off")
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.FeaturedLimit != 4 || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CORS_ORIGINS", "https://shop.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("FALLBACK_WRITES", "1")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg := FromEnv()
	if !cfg.MockData || !cfg.FallbackWrites {
		t.Fatalf("expected mock data and fallback writes enabled")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.CORSOrigins[0] != "https://shop.example" || cfg.RateLimitRPS != 2.5 {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.ShutdownTimeout)
	}
}

func TestFromEnv_InvalidValuesUseDefaults(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "maybe")
	t.Setenv("FEATURED_LIMIT", "many")

	cfg := FromEnv()
	if cfg.MockData || cfg.FeaturedLimit != 4 {
		t.Fatalf("expected defaults for unparsable values, got %+v", cfg)
	}
}
