package lookup

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewRepository(db), mock
}

func TestListGeoLevelsFiltersByLevelAndParentPrefix(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "geo_levels" WHERE level = .+ AND code LIKE`).
		WithArgs("tehsil", "012003%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "level"}).
			AddRow(1, "012003001", "Shalimar", "tehsil").
			AddRow(2, "012003002", "Model Town", "tehsil"))

	rows, err := repo.ListGeoLevels(context.Background(), "Tehsil", "012003")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Shalimar", rows[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategoriesScopedToCraft(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE craft_id =`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "craft_id", "name"}).
			AddRow(9, 3, "Hand loom"))

	rows, err := repo.ListCategories(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(3), rows[0].CraftID)
}

func TestDeleteCraftReportsAffectedRows(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "crafts" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.DeleteCraft(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
