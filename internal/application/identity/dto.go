package identity

import (
	"time"

	"github.com/debttrack/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// UserResponse is the public projection of a user. It never carries the
// password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its public projection
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
