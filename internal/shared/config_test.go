package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_ledger/internal/shared"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SEED_WORKERS", "nope")

	c := shared.Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr=%q", c.HTTPAddr)
	}
	if c.MySQLDSN != "" || c.RedisAddr != "" {
		t.Fatalf("optional backends should default to disabled: %+v", c)
	}
	if c.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL=%v", c.CacheTTL)
	}
	if c.RateLimitRPS != 2.5 {
		t.Fatalf("RateLimitRPS=%v", c.RateLimitRPS)
	}
	if c.SeedWorkers != 4 {
		t.Fatalf("bad int should fall back to default, got %d", c.SeedWorkers)
	}
}

func TestDefaultSeed(t *testing.T) {
	p := shared.DefaultSeed()
	if len(p.Hotels) != 2 {
		t.Fatalf("hotels=%d", len(p.Hotels))
	}
	if got := len(p.Hotels[0].Rooms); got != 12 {
		t.Fatalf("rooms=%d", got)
	}
	if p.Hotels[0].Rooms[0].Name != "S01" {
		t.Fatalf("room name=%q", p.Hotels[0].Rooms[0].Name)
	}
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"hotels":[{"name":"A","rooms":[{"name":"1","type":"Deluxe"}]}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := shared.LoadSeed(good)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(p.Hotels) != 1 || p.Hotels[0].Rooms[0].Type != "Deluxe" {
		t.Fatalf("unexpected plan: %+v", p)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"hotels":[{"rooms":[]}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := shared.LoadSeed(bad); err == nil {
		t.Fatalf("expected error for nameless hotel")
	}
	if _, err := shared.LoadSeed(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
