// Package service implements the expense store: it owns the canonical
// collections behind a storage.Store, generates identities and timestamps,
// and dispatches the pure calculation packages over read snapshots.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nkhare/divvy/internal/models"
	"github.com/nkhare/divvy/internal/storage"
)

// UserService manages user records and profile updates.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// ProfileUpdate carries optional profile changes; nil fields are untouched.
// Only the owning user mutates their profile.
type ProfileUpdate struct {
	Name           *string `json:"name,omitempty"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	PaymentMessage *string `json:"paymentMessage,omitempty"`
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, name, avatarURL string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation("user name must not be empty")
	}

	user := &models.User{
		ID:        newUserID(),
		Name:      name,
		AvatarURL: avatarURL,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, err
	}

	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateProfile applies the given profile changes to a user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, models.ErrValidation("user name must not be empty")
		}
		user.Name = name
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.PaymentMessage != nil {
		user.PaymentMessage = *update.PaymentMessage
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Profile updated", "user_id", userID)
	return user, nil
}
