package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	// defaultMinDepositCents is $1.00, the storefront's minimum deposit.
	defaultMinDepositCents = int64(100)
	// defaultUSDToINRRate is the fallback conversion rate shown to QR/UPI payers.
	defaultUSDToINRRate = 83.5
)

// Service exposes typed accessors over the raw settings store, falling back
// to built-in defaults when a key has never been set.
type Service struct {
	store Store
}

// NewService builds a settings service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// MinDeposit returns the minimum deposit amount in USD cents.
func (s *Service) MinDeposit(ctx context.Context) (int64, error) {
	raw, err := s.store.Get(ctx, KeyMinDepositCents)
	if errors.Is(err, ErrNotFound) {
		return defaultMinDepositCents, nil
	}
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", KeyMinDepositCents, raw, err)
	}
	return value, nil
}

// USDToINRRate returns the configured USD to INR conversion rate.
func (s *Service) USDToINRRate(ctx context.Context) (float64, error) {
	raw, err := s.store.Get(ctx, KeyUSDToINRRate)
	if errors.Is(err, ErrNotFound) {
		return defaultUSDToINRRate, nil
	}
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", KeyUSDToINRRate, raw, err)
	}
	return value, nil
}

// Update upserts a setting value.
func (s *Service) Update(ctx context.Context, key, value string) (Setting, error) {
	if key == "" {
		return Setting{}, fmt.Errorf("setting key is required")
	}
	return s.store.Set(ctx, key, value)
}

// All lists every stored setting.
func (s *Service) All(ctx context.Context) ([]Setting, error) {
	return s.store.All(ctx)
}
