package services

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore driven.UserStore
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore) driving.UserService {
	return &userService{userStore: userStore}
}

// Get retrieves a user's profile without credentials
func (s *userService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}
