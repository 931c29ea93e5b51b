package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLReporteRepository struct {
	db *database.DB
}

func NewSQLReporteRepository(db *database.DB) *SQLReporteRepository {
	return &SQLReporteRepository{db: db}
}

// Clientes resume número y monto de pedidos por cliente
func (r *SQLReporteRepository) Clientes(ctx context.Context) ([]models.ReporteCliente, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT c.id_cliente, c.nombre, c.apellido, COUNT(p.id_pedido), COALESCE(SUM(p.total), 0)
		FROM clientes c
		LEFT JOIN pedidos p ON p.id_cliente = c.id_cliente
		GROUP BY c.id_cliente, c.nombre, c.apellido
		ORDER BY c.id_cliente`)
	if err != nil {
		return nil, fmt.Errorf("error al generar reporte de clientes: %w", err)
	}
	defer rows.Close()

	filas := []models.ReporteCliente{}
	for rows.Next() {
		var f models.ReporteCliente
		if err := rows.Scan(&f.IDCliente, &f.Nombre, &f.Apellido, &f.TotalPedidos, &f.MontoTotal); err != nil {
			return nil, fmt.Errorf("error al escanear reporte: %w", err)
		}
		filas = append(filas, f)
	}
	return filas, rows.Err()
}

// Cursos resume el número de inscritos por curso
func (r *SQLReporteRepository) Cursos(ctx context.Context) ([]models.ReporteCurso, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT c.id_curso, c.nombre, COUNT(ec.id_estudiante)
		FROM cursos c
		LEFT JOIN estudiante_curso ec ON ec.id_curso = c.id_curso
		GROUP BY c.id_curso, c.nombre
		ORDER BY c.id_curso`)
	if err != nil {
		return nil, fmt.Errorf("error al generar reporte de cursos: %w", err)
	}
	defer rows.Close()

	filas := []models.ReporteCurso{}
	for rows.Next() {
		var f models.ReporteCurso
		if err := rows.Scan(&f.IDCurso, &f.Nombre, &f.TotalEstudiantes); err != nil {
			return nil, fmt.Errorf("error al escanear reporte: %w", err)
		}
		filas = append(filas, f)
	}
	return filas, rows.Err()
}
