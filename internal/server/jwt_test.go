package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talexa/talexa/internal/config"
)

func newTestJWTService(secret string, hours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: hours})
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret", 1)
	recruiterID := uuid.New()

	token, err := svc.GenerateToken(recruiterID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, recruiterID, claims.GetRecruiterID())
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTWrongSecret(t *testing.T) {
	svc := newTestJWTService("test-secret", 1)
	other := newTestJWTService("different-secret", 1)

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTEmptyToken(t *testing.T) {
	svc := newTestJWTService("test-secret", 1)
	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTMalformedToken(t *testing.T) {
	svc := newTestJWTService("test-secret", 1)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
