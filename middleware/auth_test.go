package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlink/artisan-registry-backend/config"
)

func authTestRouter(cfg *config.Config) (*gin.Engine, *[]*uint) {
	gin.SetMode(gin.TestMode)
	var captured []*uint
	r := gin.New()
	r.GET("/secure", Auth(cfg), func(c *gin.Context) {
		captured = append(captured, UserIDFromContext(c))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &captured
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r, _ := authTestRouter(&config.Config{JWTSecret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secure", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r, _ := authTestRouter(&config.Config{JWTSecret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	r, _ := authTestRouter(&config.Config{JWTSecret: "right"})

	token := signToken(t, "wrong", jwt.MapClaims{"user_id": 1.0, "exp": time.Now().Add(time.Hour).Unix()})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsValidTokenAndExposesUserID(t *testing.T) {
	r, captured := authTestRouter(&config.Config{JWTSecret: "s"})

	token := signToken(t, "s", jwt.MapClaims{"user_id": 42.0, "exp": time.Now().Add(time.Hour).Unix()})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *captured, 1)
	require.NotNil(t, (*captured)[0])
	assert.Equal(t, uint(42), *(*captured)[0])
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r, _ := authTestRouter(&config.Config{JWTSecret: "s"})

	token := signToken(t, "s", jwt.MapClaims{"user_id": 1.0, "exp": time.Now().Add(-time.Hour).Unix()})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
