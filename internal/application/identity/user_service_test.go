package identity

import (
	"context"
	"testing"

	"github.com/debttrack/backend/internal/domain/identity"
	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	user, err := identity.NewUser("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	svc := NewUserService(users)
	resp, err := svc.GetByID(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	missing := uuid.New()
	users.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	svc := NewUserService(users)
	resp, err := svc.GetByID(ctx, missing)

	require.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)

	alice, err := identity.NewUser("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)
	bob, err := identity.NewUser("Bob", "bob@example.com", "supersecret")
	require.NoError(t, err)
	users.On("List", ctx).Return([]identity.User{*alice, *bob}, nil)

	svc := NewUserService(users)
	resp, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Alice", resp[0].Name)
	assert.Equal(t, "Bob", resp[1].Name)
}
