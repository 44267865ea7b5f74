package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service syncs customer accounts from the external auth provider.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds an identity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SyncInput is the profile payload received on login.
type SyncInput struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

// Sync upserts the user keyed by the provider uid. First contact creates the
// user together with a zero-balance wallet; later logins refresh the profile.
func (s *Service) Sync(ctx context.Context, input SyncInput) (User, error) {
	if input.UID == "" {
		return User{}, fmt.Errorf("auth uid is required")
	}
	if input.Email == "" {
		return User{}, fmt.Errorf("email is required")
	}

	u, err := s.repo.Upsert(ctx, User{
		ID:        uuid.NewString(),
		UID:       input.UID,
		Email:     input.Email,
		Name:      input.Name,
		PhotoURL:  input.PhotoURL,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return User{}, err
	}

	if s.logger != nil {
		s.logger.Info("user synced", "user_id", u.ID, "email", u.Email)
	}
	return u, nil
}

// Find returns a user by internal id.
func (s *Service) Find(ctx context.Context, id string) (User, error) {
	return s.repo.Find(ctx, id)
}
