package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

const formatoFecha = "2006-01-02"

// NewSQLStore arma el Store sobre una conexión SQL
func NewSQLStore(db *database.DB) *Store {
	return &Store{
		Personas:    NewSQLPersonaRepository(db),
		Pasaportes:  NewSQLPasaporteRepository(db),
		Clientes:    NewSQLClienteRepository(db),
		Pedidos:     NewSQLPedidoRepository(db),
		Estudiantes: NewSQLEstudianteRepository(db),
		Cursos:      NewSQLCursoRepository(db),
		Tenants:     NewSQLTenantRepository(db),
		Users:       NewSQLUserRepository(db),
		Posts:       NewSQLPostRepository(db),
		Reportes:    NewSQLReporteRepository(db),
		Ping:        db.Ping,
	}
}

// traducirError convierte violaciones de unicidad y de clave foránea en models.ErrConflicto
func traducirError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return fmt.Errorf("%w: %s", models.ErrConflicto, pgErr.Message)
		}
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1451, 1452:
			return fmt.Errorf("%w: %s", models.ErrConflicto, myErr.Message)
		}
	}
	return err
}

// fecha escanea una columna DATE como texto AAAA-MM-DD
type fecha struct {
	dst *string
}

func (f fecha) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f.dst = ""
	case time.Time:
		*f.dst = v.Format(formatoFecha)
	case []byte:
		*f.dst = recortarFecha(string(v))
	case string:
		*f.dst = recortarFecha(v)
	default:
		return fmt.Errorf("tipo de fecha no soportado: %T", src)
	}
	return nil
}

func recortarFecha(s string) string {
	if len(s) >= len(formatoFecha) {
		return s[:len(formatoFecha)]
	}
	return s
}

func existe(ctx context.Context, db *database.DB, query string, args ...any) (bool, error) {
	var ok bool
	if err := db.SQL.QueryRowContext(ctx, db.Rebind(query), args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("error al verificar existencia: %w", err)
	}
	return ok, nil
}

func insertar(ctx context.Context, db *database.DB, query string, args ...any) error {
	if _, err := db.SQL.ExecContext(ctx, db.Rebind(query), args...); err != nil {
		return traducirError(err)
	}
	return nil
}

// modificar ejecuta un UPDATE o DELETE y devuelve models.ErrNoEncontrado si no tocó filas
func modificar(ctx context.Context, db *database.DB, query string, args ...any) error {
	res, err := db.SQL.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return traducirError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNoEncontrado
	}
	return nil
}

func noEncontrado(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNoEncontrado
	}
	return err
}

func enteros(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
