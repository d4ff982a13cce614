package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/craftlink/artisan-registry-backend/config"
)

func TestUpdateUserRejectsBlankName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Binding fails before the service runs, so no DB is needed.
	h := NewHandler(NewService(NewRepository(nil), &config.Config{}))
	r := gin.New()
	r.PUT("/users/:id", h.UpdateUser)

	for _, body := range []string{
		`{"name":"","role":"admin"}`,
		`{"role":"admin"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/users/7", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
