package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "amateurs"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r, jwt
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsHeaderToken(t *testing.T) {
	r, jwt := newAuthRouter(t)

	token, err := jwt.GenerateAccessToken(11, "kim")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":11`)
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	r, jwt := newAuthRouter(t)

	token, err := jwt.GenerateAccessToken(12, "lee")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))
	require.Equal(t, http.StatusOK, w.Code)
}
