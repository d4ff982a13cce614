package chat

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewHandler(NewRepository(db)), mock
}

func TestListSessionsClampsPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, mock := newTestHandler(t)

	// Oversized limits fall back to the default.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "chat_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "chat_sessions" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id"}).AddRow(1, "abc"))

	r := gin.New()
	r.GET("/chat/sessions", h.ListSessions)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/chat/sessions?limit=1000&offset=-1", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
