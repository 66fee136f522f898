package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a sqlx.DB backed by sqlmock. The "sqlmock" driver name
// leaves '?' placeholders untouched by Rebind.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestCatalog_ListChapters(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "sort_order"}).
		AddRow("c1", "biologie", "Biologie", "Sciences fondamentales", 1).
		AddRow("c2", "clinique", "Clinique", nil, 2)
	mock.ExpectQuery(`FROM chapters ORDER BY sort_order ASC`).WillReturnRows(rows)

	chapters, err := repo.ListChapters(context.Background())

	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "biologie", chapters[0].Slug)
	assert.Equal(t, "Sciences fondamentales", chapters[0].Description)
	assert.Equal(t, "", chapters[1].Description)
	assert.Equal(t, 2, chapters[1].SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalog_ListChapters_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(`FROM chapters`).WillReturnError(dbErr)

	chapters, err := repo.ListChapters(context.Background())

	assert.Nil(t, chapters)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalog_GetChapterBySlug(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "sort_order"}).
			AddRow("c3", "chirurgie", "Chirurgie", "Bloc opératoire", 3)
		mock.ExpectQuery(`FROM chapters WHERE slug = \?`).WithArgs("chirurgie").WillReturnRows(rows)

		chapter, err := repo.GetChapterBySlug(context.Background(), "chirurgie")

		require.NoError(t, err)
		require.NotNil(t, chapter)
		assert.Equal(t, "c3", chapter.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns nil, nil", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "sort_order"})
		mock.ExpectQuery(`FROM chapters WHERE slug = \?`).WithArgs("nope").WillReturnRows(rows)

		chapter, err := repo.GetChapterBySlug(context.Background(), "nope")

		assert.NoError(t, err)
		assert.Nil(t, chapter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalog_ListModulesByChapter(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "chapter_id", "year_min", "year_max", "sort_order"}).
		AddRow("m1", "cardiologie", "Cardiologie", "Coeur", "c2", 4, 5, 1).
		AddRow("m2", "anatomie", "Anatomie", nil, "c2", 1, nil, 2).
		AddRow("m3", "ethique", "Ethique", nil, "c2", nil, nil, 3)
	mock.ExpectQuery(`FROM modules WHERE chapter_id = \? ORDER BY sort_order ASC`).WithArgs("c2").WillReturnRows(rows)

	modules, err := repo.ListModulesByChapter(context.Background(), "c2")

	require.NoError(t, err)
	require.Len(t, modules, 3)

	require.NotNil(t, modules[0].YearMin)
	require.NotNil(t, modules[0].YearMax)
	assert.Equal(t, 4, *modules[0].YearMin)
	assert.Equal(t, 5, *modules[0].YearMax)

	require.NotNil(t, modules[1].YearMin)
	assert.Nil(t, modules[1].YearMax)
	assert.True(t, modules[1].CoversYear(1))
	assert.False(t, modules[1].CoversYear(2))

	assert.Nil(t, modules[2].YearMin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalog_GetModule_Missing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "chapter_id", "year_min", "year_max", "sort_order"})
	mock.ExpectQuery(`FROM modules WHERE id = \?`).WithArgs("m404").WillReturnRows(rows)

	module, err := repo.GetModule(context.Background(), "m404")

	assert.NoError(t, err)
	assert.Nil(t, module)
	assert.NoError(t, mock.ExpectationsWereMet())
}
