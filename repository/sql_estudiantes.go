package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLEstudianteRepository struct {
	db *database.DB
}

func NewSQLEstudianteRepository(db *database.DB) *SQLEstudianteRepository {
	return &SQLEstudianteRepository{db: db}
}

const columnasEstudiante = "id_estudiante, nombre, apellido"

func (r *SQLEstudianteRepository) List(ctx context.Context) ([]models.Estudiante, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT "+columnasEstudiante+" FROM estudiantes ORDER BY id_estudiante")
	if err != nil {
		return nil, fmt.Errorf("error al obtener estudiantes: %w", err)
	}
	defer rows.Close()

	estudiantes := []models.Estudiante{}
	for rows.Next() {
		var e models.Estudiante
		if err := rows.Scan(&e.IDEstudiante, &e.Nombre, &e.Apellido); err != nil {
			return nil, fmt.Errorf("error al escanear estudiante: %w", err)
		}
		estudiantes = append(estudiantes, e)
	}
	return estudiantes, rows.Err()
}

// ListConCursos carga los cursos de todos los estudiantes con una sola consulta sobre la tabla intermedia
func (r *SQLEstudianteRepository) ListConCursos(ctx context.Context) ([]models.EstudianteConCursos, error) {
	estudiantes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.EstudianteConCursos, len(estudiantes))
	if len(estudiantes) == 0 {
		return out, nil
	}

	ids := make([]int, len(estudiantes))
	for i, e := range estudiantes {
		ids[i] = e.IDEstudiante
	}
	porEstudiante, err := r.cursosPorEstudiante(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, e := range estudiantes {
		cursos := porEstudiante[e.IDEstudiante]
		if cursos == nil {
			cursos = []models.Curso{}
		}
		out[i] = models.EstudianteConCursos{Estudiante: e, Cursos: cursos}
	}
	return out, nil
}

func (r *SQLEstudianteRepository) cursosPorEstudiante(ctx context.Context, ids []int) (map[int][]models.Curso, error) {
	rows, err := r.db.SQL.QueryContext(ctx, r.db.Rebind(
		`SELECT ec.id_estudiante, c.id_curso, c.nombre
		FROM estudiante_curso ec
		JOIN cursos c ON c.id_curso = ec.id_curso
		WHERE ec.id_estudiante IN (`+database.In(len(ids))+`)
		ORDER BY ec.id_estudiante, c.id_curso`), enteros(ids)...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener cursos de estudiantes: %w", err)
	}
	defer rows.Close()

	porEstudiante := make(map[int][]models.Curso, len(ids))
	for rows.Next() {
		var idEstudiante int
		var c models.Curso
		if err := rows.Scan(&idEstudiante, &c.IDCurso, &c.Nombre); err != nil {
			return nil, fmt.Errorf("error al escanear inscripción: %w", err)
		}
		porEstudiante[idEstudiante] = append(porEstudiante[idEstudiante], c)
	}
	return porEstudiante, rows.Err()
}

func (r *SQLEstudianteRepository) CursosDe(ctx context.Context, idEstudiante int) ([]models.Curso, error) {
	porEstudiante, err := r.cursosPorEstudiante(ctx, []int{idEstudiante})
	if err != nil {
		return nil, err
	}
	cursos := porEstudiante[idEstudiante]
	if cursos == nil {
		cursos = []models.Curso{}
	}
	return cursos, nil
}

func (r *SQLEstudianteRepository) Get(ctx context.Context, id int) (models.Estudiante, error) {
	var e models.Estudiante
	err := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasEstudiante+" FROM estudiantes WHERE id_estudiante = ?"), id,
	).Scan(&e.IDEstudiante, &e.Nombre, &e.Apellido)
	return e, noEncontrado(err)
}

func (r *SQLEstudianteRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM estudiantes WHERE id_estudiante = ?)", id)
}

func (r *SQLEstudianteRepository) EstaInscrito(ctx context.Context, idEstudiante, idCurso int) (bool, error) {
	return existe(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM estudiante_curso WHERE id_estudiante = ? AND id_curso = ?)",
		idEstudiante, idCurso)
}

func (r *SQLEstudianteRepository) Inscribir(ctx context.Context, idEstudiante, idCurso int) error {
	return insertar(ctx, r.db,
		"INSERT INTO estudiante_curso (id_estudiante, id_curso) VALUES (?, ?)", idEstudiante, idCurso)
}

func (r *SQLEstudianteRepository) Desinscribir(ctx context.Context, idEstudiante, idCurso int) error {
	return modificar(ctx, r.db,
		"DELETE FROM estudiante_curso WHERE id_estudiante = ? AND id_curso = ?", idEstudiante, idCurso)
}

func (r *SQLEstudianteRepository) Create(ctx context.Context, e models.Estudiante) error {
	return insertar(ctx, r.db,
		"INSERT INTO estudiantes ("+columnasEstudiante+") VALUES (?, ?, ?)",
		e.IDEstudiante, e.Nombre, e.Apellido)
}

func (r *SQLEstudianteRepository) Update(ctx context.Context, e models.Estudiante) error {
	return modificar(ctx, r.db,
		"UPDATE estudiantes SET nombre = ?, apellido = ? WHERE id_estudiante = ?",
		e.Nombre, e.Apellido, e.IDEstudiante)
}

// Delete elimina también sus inscripciones (ON DELETE CASCADE)
func (r *SQLEstudianteRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM estudiantes WHERE id_estudiante = ?", id)
}
