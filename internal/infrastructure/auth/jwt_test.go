package auth

import (
	"testing"
	"time"

	"github.com/debttrack/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-32-characters-long",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(GenerateTokenInput{
		UserID: userID,
		Email:  "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:     "a-completely-different-secret-key!!",
		Expiration: 15 * time.Minute,
		Issuer:     "test-issuer",
	})

	token, _, err := other.Generate(GenerateTokenInput{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-32-characters-long",
		Expiration: -1 * time.Minute,
		Issuer:     "test-issuer",
	})

	token, _, err := svc.Generate(GenerateTokenInput{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
