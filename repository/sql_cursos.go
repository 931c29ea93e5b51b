package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLCursoRepository struct {
	db *database.DB
}

func NewSQLCursoRepository(db *database.DB) *SQLCursoRepository {
	return &SQLCursoRepository{db: db}
}

func (r *SQLCursoRepository) List(ctx context.Context) ([]models.Curso, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT id_curso, nombre FROM cursos ORDER BY id_curso")
	if err != nil {
		return nil, fmt.Errorf("error al obtener cursos: %w", err)
	}
	defer rows.Close()

	cursos := []models.Curso{}
	for rows.Next() {
		var c models.Curso
		if err := rows.Scan(&c.IDCurso, &c.Nombre); err != nil {
			return nil, fmt.Errorf("error al escanear curso: %w", err)
		}
		cursos = append(cursos, c)
	}
	return cursos, rows.Err()
}

func (r *SQLCursoRepository) ListConConteo(ctx context.Context) ([]models.CursoConConteo, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT c.id_curso, c.nombre, COUNT(ec.id_estudiante) AS estudiantes_count
		FROM cursos c
		LEFT JOIN estudiante_curso ec ON ec.id_curso = c.id_curso
		GROUP BY c.id_curso, c.nombre
		ORDER BY c.id_curso`)
	if err != nil {
		return nil, fmt.Errorf("error al obtener cursos: %w", err)
	}
	defer rows.Close()

	cursos := []models.CursoConConteo{}
	for rows.Next() {
		var c models.CursoConConteo
		if err := rows.Scan(&c.IDCurso, &c.Nombre, &c.EstudiantesCount); err != nil {
			return nil, fmt.Errorf("error al escanear curso: %w", err)
		}
		cursos = append(cursos, c)
	}
	return cursos, rows.Err()
}

func (r *SQLCursoRepository) Get(ctx context.Context, id int) (models.Curso, error) {
	var c models.Curso
	err := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT id_curso, nombre FROM cursos WHERE id_curso = ?"), id,
	).Scan(&c.IDCurso, &c.Nombre)
	return c, noEncontrado(err)
}

func (r *SQLCursoRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM cursos WHERE id_curso = ?)", id)
}

func (r *SQLCursoRepository) Create(ctx context.Context, c models.Curso) error {
	return insertar(ctx, r.db, "INSERT INTO cursos (id_curso, nombre) VALUES (?, ?)", c.IDCurso, c.Nombre)
}

func (r *SQLCursoRepository) Update(ctx context.Context, c models.Curso) error {
	return modificar(ctx, r.db, "UPDATE cursos SET nombre = ? WHERE id_curso = ?", c.Nombre, c.IDCurso)
}

func (r *SQLCursoRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM cursos WHERE id_curso = ?", id)
}
