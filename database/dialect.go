package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Dialect abstrae las diferencias de SQL entre PostgreSQL y MySQL
type Dialect interface {
	Name() string
	// Placeholder devuelve el parámetro para el índice dado (base 1)
	Placeholder(index int) string
	// Quote protege identificadores que son palabras reservadas
	Quote(name string) string
	// UseReturning indica si INSERT obtiene la clave generada con RETURNING
	// en lugar de LastInsertId
	UseReturning() bool
}

var (
	MySQL      Dialect = mysqlDialect{}
	PostgreSQL Dialect = postgresDialect{}
)

type mysqlDialect struct{}

func (mysqlDialect) Name() string             { return "mysql" }
func (mysqlDialect) Placeholder(_ int) string { return "?" }
func (mysqlDialect) Quote(name string) string { return "`" + name + "`" }
func (mysqlDialect) UseReturning() bool       { return false }

type postgresDialect struct{}

func (postgresDialect) Name() string                 { return "postgres" }
func (postgresDialect) Placeholder(index int) string { return fmt.Sprintf("$%d", index) }
func (postgresDialect) Quote(name string) string     { return `"` + name + `"` }
func (postgresDialect) UseReturning() bool           { return true }

// DialectFor devuelve el dialecto del driver configurado
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, nil
	case "mysql", "mariadb":
		return MySQL, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", driver)
	}
}

// Rebind convierte los ? de la consulta a los parámetros del dialecto ($1, $2, …)
func Rebind(d Dialect, query string) string {
	if _, ok := d.(mysqlDialect); ok {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	idx := 1
	for i := range len(query) {
		if query[i] == '?' {
			b.WriteString(d.Placeholder(idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

// In arma la lista "?, ?, ?" para una cláusula IN de n elementos
func In(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Querier lo cumplen *sql.DB y *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertID ejecuta un INSERT y devuelve la clave autogenerada.
// query no debe incluir RETURNING; se agrega cuando el dialecto lo soporta.
func InsertID(ctx context.Context, d Dialect, q Querier, query, pk string, args ...any) (int64, error) {
	query = Rebind(d, query)
	if d.UseReturning() {
		var id int64
		if err := q.QueryRowContext(ctx, query+" RETURNING "+d.Quote(pk), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
