package identity

import (
	"context"
	"errors"

	"github.com/debttrack/backend/internal/domain/identity"
	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService exposes read-only user operations, e.g. the debtor picker
type UserService struct {
	users identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns a user's public projection
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("User not found")
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns all users' public projections
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}
