package security

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domaccount "example.com/storefront/internal/domain/account"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken(domaccount.Profile{ID: "p-1", Email: "maria@example.com"})
	require.NoError(t, err)

	profile, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "p-1", profile.ID)
	require.Equal(t, "maria@example.com", profile.Email)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	token, err := NewJWTService("secret", time.Hour).GenerateToken(domaccount.Profile{ID: "p-1"})
	require.NoError(t, err)

	_, err = NewJWTService("other", time.Hour).ParseToken(token)
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.GenerateToken(domaccount.Profile{ID: "p-1"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsEmptyProfile(t *testing.T) {
	_, err := NewJWTService("secret", time.Hour).GenerateToken(domaccount.Profile{})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptService(t *testing.T) {
	svc := NewBcryptService(4)

	hash, err := svc.Hash("Secret1!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1!", hash)

	require.NoError(t, svc.Compare(hash, "Secret1!"))
	require.Error(t, svc.Compare(hash, "Secret2!"))
}
