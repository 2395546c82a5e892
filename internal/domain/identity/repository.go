package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the persistence contract for users. Implementations must
// return shared.ErrNotFound when a user does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
}
