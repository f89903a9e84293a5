package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/database/testutil"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

func TestUserServiceSignupAndLogin(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	jwtSvc := newTestJWT(t)
	svc, err := NewUserService(db, jwtSvc)
	require.NoError(t, err)

	user, err := svc.Signup(context.Background(), SignupInput{
		Email:    "Dev@Example.com",
		Password: "secret-pass",
		Name:     "김개발",
		Nickname: "개발자",
	})
	require.NoError(t, err)
	require.Equal(t, "dev@example.com", user.Email)
	require.Equal(t, "개발자", user.Nickname)
	require.NotZero(t, user.ID)

	token, loggedIn, err := svc.Login(context.Background(), "dev@example.com", "secret-pass")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	claims, err := jwtSvc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "개발자", claims.Nickname)
}

func TestUserServiceSignupDuplicateEmail(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db, newTestJWT(t))
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupInput{
		Email:    "dev@example.com",
		Password: "secret-pass",
		Nickname: "개발자",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupInput{
		Email:    "DEV@example.com",
		Password: "other-pass",
		Nickname: "다른닉",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserServiceLoginWrongPassword(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db, newTestJWT(t))
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupInput{
		Email:    "dev@example.com",
		Password: "secret-pass",
		Nickname: "개발자",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "dev@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret-pass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
