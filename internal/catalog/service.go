package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
)

// ErrUnauthorized occurs when a catalog change is attempted without an
// authenticated admin principal.
var ErrUnauthorized = errors.New("admin principal required")

// Service manages the storefront catalog. Reads are public; writes require
// an admin principal.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a catalog service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ItemInput captures an admin's create or update submission.
type ItemInput struct {
	Platform string
	Name     string
	Price    int64
	Active   bool
}

func (in ItemInput) validate() error {
	if in.Platform == "" || in.Name == "" {
		return fmt.Errorf("platform and name are required")
	}
	if in.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}

// Create upserts a catalog item keyed by (platform, name).
func (s *Service) Create(ctx context.Context, actor admin.Principal, input ItemInput) (Item, error) {
	if actor.Zero() {
		return Item{}, ErrUnauthorized
	}
	if err := input.validate(); err != nil {
		return Item{}, err
	}

	item, err := s.repo.Upsert(ctx, Item{
		ID:       uuid.NewString(),
		Platform: input.Platform,
		Name:     input.Name,
		Price:    input.Price,
	})
	if err != nil {
		return Item{}, err
	}
	if s.logger != nil {
		s.logger.Info("catalog item saved", "item_id", item.ID, "platform", item.Platform, "name", item.Name, "decided_by", actor.Username)
	}
	return item, nil
}

// Update replaces an item's fields.
func (s *Service) Update(ctx context.Context, actor admin.Principal, id string, input ItemInput) (Item, error) {
	if actor.Zero() {
		return Item{}, ErrUnauthorized
	}
	if err := input.validate(); err != nil {
		return Item{}, err
	}
	return s.repo.Update(ctx, Item{
		ID:       id,
		Platform: input.Platform,
		Name:     input.Name,
		Price:    input.Price,
		Active:   input.Active,
	})
}

// Deactivate removes an item from the storefront without deleting it.
func (s *Service) Deactivate(ctx context.Context, actor admin.Principal, id string) error {
	if actor.Zero() {
		return ErrUnauthorized
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("catalog item deactivated", "item_id", id, "decided_by", actor.Username)
	}
	return nil
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	return s.repo.Get(ctx, id)
}

// ListActive returns all storefront-visible items.
func (s *Service) ListActive(ctx context.Context) ([]Item, error) {
	return s.repo.ListActive(ctx)
}

// ListByPlatform returns active items for one platform.
func (s *Service) ListByPlatform(ctx context.Context, platform string) ([]Item, error) {
	return s.repo.ListByPlatform(ctx, platform)
}

// Platforms returns the distinct platforms with active items.
func (s *Service) Platforms(ctx context.Context) ([]string, error) {
	return s.repo.Platforms(ctx)
}
