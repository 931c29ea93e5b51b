package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T, d Dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return New(sqlDB, d), mock
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM pedidos WHERE id_cliente IN (?, ?) AND total > ?"

	assert.Equal(t, "SELECT * FROM pedidos WHERE id_cliente IN ($1, $2) AND total > $3", Rebind(PostgreSQL, q))
	assert.Equal(t, q, Rebind(MySQL, q))
}

func TestIn(t *testing.T) {
	assert.Equal(t, "", In(0))
	assert.Equal(t, "?", In(1))
	assert.Equal(t, "?, ?, ?", In(3))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, PostgreSQL, d)

	d, err = DialectFor("mysql")
	require.NoError(t, err)
	assert.Equal(t, MySQL, d)

	_, err = DialectFor("sqlite")
	assert.Error(t, err)
}

func TestEsquema_ProtegeColumnaDatabase(t *testing.T) {
	for _, d := range []Dialect{PostgreSQL, MySQL} {
		stmts := esquema(d)
		require.Len(t, stmts, 10)
		assert.Equal(t, "personas", tabla(stmts[0]))
		assert.Equal(t, "posts", tabla(stmts[9]))
		assert.Contains(t, stmts[7], d.Quote("database"))
	}
	assert.Contains(t, esquema(MySQL)[7], "AUTO_INCREMENT")
	assert.Contains(t, esquema(PostgreSQL)[7], "BIGSERIAL")
}

func TestMigrate(t *testing.T) {
	db, mock := setupMockDB(t, PostgreSQL)
	for range esquema(PostgreSQL) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_OmiteSiHayDatos(t *testing.T) {
	db, mock := setupMockDB(t, PostgreSQL)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM personas").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	require.NoError(t, db.Seed(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertID(t *testing.T) {
	t.Run("postgres usa RETURNING", func(t *testing.T) {
		db, mock := setupMockDB(t, PostgreSQL)
		mock.ExpectQuery(`INSERT INTO tenants \(name, domain, is_active\) VALUES \(\$1, \$2, \$3\) RETURNING "id"`).
			WithArgs("Empresa A", "empresa-a.test", true).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		id, err := InsertID(context.Background(), db.Dialect, db.SQL,
			"INSERT INTO tenants (name, domain, is_active) VALUES (?, ?, ?)", "id",
			"Empresa A", "empresa-a.test", true)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mysql usa LastInsertId", func(t *testing.T) {
		db, mock := setupMockDB(t, MySQL)
		mock.ExpectExec(`INSERT INTO tenants \(name, domain, is_active\) VALUES \(\?, \?, \?\)`).
			WithArgs("Empresa B", "empresa-b.test", true).
			WillReturnResult(sqlmock.NewResult(9, 1))

		id, err := InsertID(context.Background(), db.Dialect, db.SQL,
			"INSERT INTO tenants (name, domain, is_active) VALUES (?, ?, ?)", "id",
			"Empresa B", "empresa-b.test", true)
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSemilla_Consistente(t *testing.T) {
	d := Semilla()

	personas := map[int]bool{}
	for _, p := range d.Personas {
		personas[p.IDPersona] = true
	}
	vistos := map[int]bool{}
	for _, p := range d.Pasaportes {
		assert.True(t, personas[p.IDPersona])
		assert.False(t, vistos[p.IDPersona], "persona %d con dos pasaportes", p.IDPersona)
		vistos[p.IDPersona] = true
	}
	assert.Len(t, d.Pedidos, 12)
	assert.Len(t, d.Inscripciones, 14)
	assert.Len(t, d.Tenants, 2)
}
