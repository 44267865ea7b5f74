package rates

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialboost/socialboost/internal/settings"
)

// Provider supplies the current USD to INR conversion rate. Deposit
// submission snapshots one value from here and never re-fetches it.
type Provider interface {
	USDToINR(ctx context.Context) (float64, error)
}

// SettingsProvider reads the rate from the settings store, which carries
// its own fallback default.
type SettingsProvider struct {
	settings *settings.Service
}

// NewSettingsProvider builds a settings-backed rate provider.
func NewSettingsProvider(s *settings.Service) *SettingsProvider {
	return &SettingsProvider{settings: s}
}

// USDToINR returns the configured conversion rate.
func (p *SettingsProvider) USDToINR(ctx context.Context) (float64, error) {
	return p.settings.USDToINRRate(ctx)
}

const cacheKey = "rates:usd_inr:v1"

// CachedProvider memoizes rate lookups in Redis so deposit submissions do
// not hit the settings table on every request. Cache failures fall through
// to the wrapped provider.
type CachedProvider struct {
	next  Provider
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with a Redis cache.
func NewCachedProvider(next Provider, cache *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedProvider{next: next, cache: cache, ttl: ttl}
}

// USDToINR returns the cached rate, refreshing it from the wrapped provider
// on a miss.
func (p *CachedProvider) USDToINR(ctx context.Context) (float64, error) {
	if p.cache != nil {
		if raw, err := p.cache.Get(ctx, cacheKey).Result(); err == nil {
			if rate, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
				return rate, nil
			}
		}
	}

	rate, err := p.next.USDToINR(ctx)
	if err != nil {
		return 0, err
	}

	if p.cache != nil {
		p.cache.Set(ctx, cacheKey, strconv.FormatFloat(rate, 'f', -1, 64), p.ttl) // best effort
	}
	return rate, nil
}

// CeilINR converts USD cents to whole rupees, rounding up so the displayed
// local amount always covers the USD value.
func CeilINR(usdCents int64, rate float64) int64 {
	return int64(math.Ceil(float64(usdCents) * rate / 100))
}
