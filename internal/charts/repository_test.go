package charts

import (
	"context"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/craftlink/artisan-registry-backend/database"
)

func newTestRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewRepository(database.NewStore(db, nil)), mock
}

func TestGroupedCountAppliesFiltersAndGrouping(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT a\.gender AS label, COUNT\(\*\) AS total FROM artisans a(.|\n)*WHERE a\.is_active = true AND a\.gender = (.|\n)*GROUP BY 1 ORDER BY total DESC, label ASC`).
		WithArgs("Female").
		WillReturnRows(sqlmock.NewRows([]string{"label", "total"}).AddRow("Female", 42))

	filters := url.Values{}
	filters.Set("gender", "Female")

	rows, err := repo.GroupedCount(context.Background(), "a.gender", filters, 0)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Female", *rows[0].Label)
	assert.Equal(t, int64(42), *rows[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupedCountAppendsLimit(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT a\.raw_material AS label(.|\n)*LIMIT`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"label", "total"}))

	_, err := repo.GroupedCount(context.Background(), "a.raw_material", url.Values{}, 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupedCountScansNullLabels(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT t\.name AS label`).
		WillReturnRows(sqlmock.NewRows([]string{"label", "total"}).AddRow(nil, 5))

	rows, err := repo.GroupedCount(context.Background(), "t.name", url.Values{}, 0)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Label)
	assert.Equal(t, int64(5), *rows[0].Total)
}

func TestMonthlyRegistrationsOrdersByPeriod(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT to_char\(a\.created_at, 'YYYY-MM'\) AS period(.|\n)*GROUP BY 1 ORDER BY 1`).
		WillReturnRows(sqlmock.NewRows([]string{"period", "total"}).
			AddRow("2024-01", 3).
			AddRow("2024-02", 5))

	rows, err := repo.MonthlyRegistrations(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, []periodCountRow{
		{Period: "2024-01", Total: 3},
		{Period: "2024-02", Total: 5},
	}, rows)
}

func TestGeoPointsExcludesNullCoordinates(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT a\.name AS name, a\.latitude AS latitude, a\.longitude AS longitude(.|\n)*a\.latitude IS NOT NULL AND a\.longitude IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "latitude", "longitude"}).
			AddRow("Amina", 31.52, 74.35))

	rows, err := repo.GeoPoints(context.Background(), url.Values{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 31.52, *rows[0].Latitude)
}
