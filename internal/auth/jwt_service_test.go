package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, clock func() time.Time) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret: "test-secret",
		Issuer: "amateurs",
		TTL:    time.Minute,
		Clock:  clock,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t, nil)

	token, err := svc.GenerateAccessToken(42, "kim")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "kim", claims.Nickname)
	require.Equal(t, "amateurs", claims.Issuer)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issued := time.Now()
	svc := newTestService(t, func() time.Time { return issued })

	token, err := svc.GenerateAccessToken(7, "lee")
	require.NoError(t, err)

	later := newTestService(t, func() time.Time { return issued.Add(2 * time.Minute) })
	_, err = later.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	svc := newTestService(t, nil)
	token, err := svc.GenerateAccessToken(7, "lee")
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestGenerateRequiresUserID(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.GenerateAccessToken(0, "kim")
	require.Error(t, err)
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}
