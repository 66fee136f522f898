package database

import (
	"testing"
	"testing/fstest"

	"medqbank/migrations"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := `-- catalog
CREATE TABLE a (
    id NUMBER
);

CREATE INDEX idx_a ON a (id);
DROP TABLE b`

	statements := splitStatements(script)

	require.Len(t, statements, 3)
	assert.Equal(t, "CREATE TABLE a (\nid NUMBER\n)", statements[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a (id)", statements[1])
	assert.Equal(t, "DROP TABLE b", statements[2])
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("CREATE TABLE two (id NUMBER);")},
		"m/000002_second.down.sql": {Data: []byte("DROP TABLE two;")},
		"m/000001_first.up.sql":    {Data: []byte("CREATE TABLE one (id NUMBER);")},
		"m/000001_first.down.sql":  {Data: []byte("DROP TABLE one;")},
		"m/README.md":              {Data: []byte("ignored")},
	}

	files, err := loadMigrations(fsys, "m")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, uint(1), files[0].version)
	assert.Equal(t, "first", files[0].name)
	assert.Equal(t, uint(2), files[1].version)
	assert.Contains(t, files[1].down, "DROP TABLE two")
}

func TestLoadMigrations_MissingUp(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000001_first.down.sql": {Data: []byte("DROP TABLE one;")},
	}

	_, err := loadMigrations(fsys, "m")

	assert.Error(t, err)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	oracleFiles, err := loadMigrations(migrations.Oracle, "oracle")
	require.NoError(t, err)
	postgresFiles, err := loadMigrations(migrations.Postgres, "postgres")
	require.NoError(t, err)

	require.Equal(t, len(postgresFiles), len(oracleFiles))
	for i := range oracleFiles {
		assert.Equal(t, postgresFiles[i].version, oracleFiles[i].version)
		assert.Equal(t, postgresFiles[i].name, oracleFiles[i].name)
		assert.NotEmpty(t, oracleFiles[i].down, "version %d has no down file", oracleFiles[i].version)
	}
}

func TestOracleMigrator_Up(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	fsys := fstest.MapFS{
		"m/000001_first.up.sql":   {Data: []byte("CREATE TABLE one (id NUMBER);\nCREATE INDEX idx_one ON one (id);")},
		"m/000001_first.down.sql": {Data: []byte("DROP TABLE one;")},
	}
	migrator, err := newOracleMigrator(db, fsys, "m")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM user_tables`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM schema_migrations`).WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs(1, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec(`CREATE TABLE one`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX idx_one`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs(1, 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, migrator.Up())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOracleMigrator_UpRefusesDirtySchema(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	migrator, err := newOracleMigrator(db, fstest.MapFS{
		"m/000001_first.up.sql": {Data: []byte("CREATE TABLE one (id NUMBER);")},
	}, "m")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM user_tables`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM schema_migrations`).WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(1, 1))

	err = migrator.Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty")
	assert.NoError(t, mock.ExpectationsWereMet())
}
