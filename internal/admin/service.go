package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials occurs when the username or password does not match.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// Service manages admin authentication and sessions.
type Service struct {
	repo     Repository
	sessions *Sessions
}

// NewService builds an admin service.
func NewService(repo Repository, sessions *Sessions) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// CreateAdmin registers an admin account with a bcrypt-hashed password.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (Admin, error) {
	if username == "" || len(password) < 8 {
		return Admin{}, errors.New("username and a password of at least 8 characters are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}
	a := Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (Principal, string, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, "", ErrInvalidCredentials
		}
		return Principal{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return Principal{}, "", ErrInvalidCredentials
	}
	principal := Principal{AdminID: a.ID, Username: a.Username}
	token, err := s.sessions.Issue(ctx, principal)
	if err != nil {
		return Principal{}, "", err
	}
	return principal, token, nil
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
