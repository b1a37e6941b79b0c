package shared_test

import (
	"testing"
	"time"

	"worldacross/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	c := shared.Load()
	if c.HTTPAddr != ":8080" || c.DataSource != "memory" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.MockLatency != 500*time.Millisecond {
		t.Fatalf("latency default: %v", c.MockLatency)
	}
	if c.CacheTTL != 15*time.Minute {
		t.Fatalf("cache ttl default: %v", c.CacheTTL)
	}
	if c.TrustProxy {
		t.Fatal("proxy headers must not be trusted by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MOCK_LATENCY", "0s")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("DATA_SOURCE", "mysql")
	t.Setenv("SEED_WORKERS", "3")

	c := shared.Load()
	if c.MockLatency != 0 || c.CacheTTL != time.Minute || c.DataSource != "mysql" || c.SeedWorkers != 3 {
		t.Fatalf("overrides not applied: %+v", c)
	}
}
