package testimonials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialboost/socialboost/internal/admin"
)

// ErrUnauthorized occurs when moderation is attempted without an
// authenticated admin principal.
var ErrUnauthorized = errors.New("admin principal required")

// Service handles testimonial submission and moderation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a testimonials service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SubmitInput captures a customer's review.
type SubmitInput struct {
	UserID  string
	Name    string
	Title   string
	Rating  int
	Content string
	Avatar  string
}

// Submit stores an unapproved testimonial.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Testimonial, error) {
	if input.Name == "" || input.Content == "" {
		return Testimonial{}, fmt.Errorf("name and content are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return Testimonial{}, fmt.Errorf("rating must be between 1 and 5")
	}
	if input.UserID != "" {
		if _, err := uuid.Parse(input.UserID); err != nil {
			return Testimonial{}, fmt.Errorf("invalid user id: %w", err)
		}
	}

	t := Testimonial{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Name:      input.Name,
		Title:     input.Title,
		Rating:    input.Rating,
		Content:   input.Content,
		Avatar:    input.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Testimonial{}, err
	}
	return t, nil
}

// Approved returns storefront-visible testimonials.
func (s *Service) Approved(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListApproved(ctx)
}

// All returns the moderation queue.
func (s *Service) All(ctx context.Context, actor admin.Principal) ([]Testimonial, error) {
	if actor.Zero() {
		return nil, ErrUnauthorized
	}
	return s.repo.ListAll(ctx)
}

// Approve makes a testimonial storefront-visible.
func (s *Service) Approve(ctx context.Context, actor admin.Principal, id string) (Testimonial, error) {
	if actor.Zero() {
		return Testimonial{}, ErrUnauthorized
	}
	t, err := s.repo.Approve(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}
	if s.logger != nil {
		s.logger.Info("testimonial approved", "testimonial_id", t.ID, "decided_by", actor.Username)
	}
	return t, nil
}

// Reject removes a testimonial.
func (s *Service) Reject(ctx context.Context, actor admin.Principal, id string) error {
	if actor.Zero() {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("testimonial rejected", "testimonial_id", id, "decided_by", actor.Username)
	}
	return nil
}
