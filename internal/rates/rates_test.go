package rates

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/socialboost/socialboost/internal/settings"
)

func TestCeilINR(t *testing.T) {
	cases := []struct {
		usdCents int64
		rate     float64
		want     int64
	}{
		{1_000, 83.5, 835},
		{100, 83.5, 84},
		{750, 83.5, 627},
		{1, 83.5, 1},
	}
	for _, tc := range cases {
		if got := CeilINR(tc.usdCents, tc.rate); got != tc.want {
			t.Errorf("CeilINR(%d, %v) = %d, want %d", tc.usdCents, tc.rate, got, tc.want)
		}
	}
}

func TestSettingsProviderDefault(t *testing.T) {
	p := NewSettingsProvider(settings.NewService(settings.NewMemoryStore()))
	rate, err := p.USDToINR(context.Background())
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rate != 83.5 {
		t.Fatalf("expected default 83.5, got %v", rate)
	}
}

func TestCachedProviderMemoizes(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	ctx := context.Background()
	cfg := settings.NewService(settings.NewMemoryStore())
	p := NewCachedProvider(NewSettingsProvider(cfg), cache, time.Minute)

	rate, err := p.USDToINR(ctx)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if rate != 83.5 {
		t.Fatalf("expected 83.5, got %v", rate)
	}

	// The cached value survives a settings change until TTL expiry.
	if _, err := cfg.Update(ctx, settings.KeyUSDToINRRate, "90"); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	rate, err = p.USDToINR(ctx)
	if err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if rate != 83.5 {
		t.Fatalf("expected cached 83.5, got %v", rate)
	}

	mr.FastForward(2 * time.Minute)
	rate, err = p.USDToINR(ctx)
	if err != nil {
		t.Fatalf("refreshed lookup: %v", err)
	}
	if rate != 90 {
		t.Fatalf("expected refreshed 90, got %v", rate)
	}
}

func TestCachedProviderSurvivesCacheOutage(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()
	mr.Close()

	p := NewCachedProvider(NewSettingsProvider(settings.NewService(settings.NewMemoryStore())), cache, time.Minute)
	rate, err := p.USDToINR(context.Background())
	if err != nil {
		t.Fatalf("lookup with dead cache: %v", err)
	}
	if rate != 83.5 {
		t.Fatalf("expected fallback 83.5, got %v", rate)
	}
}
