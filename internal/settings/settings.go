package settings

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound occurs when no setting exists for the requested key.
var ErrNotFound = errors.New("setting not found")

// Keys understood by the typed accessors. The store itself accepts any key.
const (
	KeyMinDepositCents = "min_deposit_cents"
	KeyUSDToINRRate    = "usd_inr_rate"
)

// Setting is one configurable key/value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Store persists settings.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) (Setting, error)
	All(ctx context.Context) ([]Setting, error)
}
