package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewStore(db, nil), mock
}

type widgetRow struct {
	Name  string `gorm:"column:name"`
	Total int64  `gorm:"column:total"`
}

func TestQueryAll(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT name, total FROM widgets WHERE size =").
		WithArgs("large").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("bolt", 3).
			AddRow("nut", 7))

	var rows []widgetRow
	err := store.QueryAll(context.Background(), &rows, "SELECT name, total FROM widgets WHERE size = ?", "large")
	require.NoError(t, err)

	assert.Equal(t, []widgetRow{{Name: "bolt", Total: 3}, {Name: "nut", Total: 7}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryAllPropagatesDriverError(t *testing.T) {
	store, mock := newTestStore(t)

	driverErr := errors.New("relation \"widgets\" does not exist")
	mock.ExpectQuery("SELECT name, total FROM widgets").WillReturnError(driverErr)

	var rows []widgetRow
	err := store.QueryAll(context.Background(), &rows, "SELECT name, total FROM widgets")
	// The driver error comes back untouched, no re-wrapping.
	assert.ErrorIs(t, err, driverErr)
}

func TestQueryOne(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT name, total FROM widgets WHERE name =").
		WithArgs("bolt").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).AddRow("bolt", 3))

	var row widgetRow
	found, err := store.QueryOne(context.Background(), &row, "SELECT name, total FROM widgets WHERE name = ?", "bolt")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, widgetRow{Name: "bolt", Total: 3}, row)
}

func TestQueryOneMissingRowIsNotAnError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT name, total FROM widgets WHERE name =").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}))

	var row widgetRow
	found, err := store.QueryOne(context.Background(), &row, "SELECT name, total FROM widgets WHERE name = ?", "ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExecuteReportsRowsAffected(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("UPDATE widgets SET total =").
		WithArgs(int64(9), "bolt").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := store.Execute(context.Background(), "UPDATE widgets SET total = ? WHERE name = ?", int64(9), "bolt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM widgets").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM widgets").Error
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackAndReturnsOriginalError(t *testing.T) {
	store, mock := newTestStore(t)

	boom := errors.New("constraint violated")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
