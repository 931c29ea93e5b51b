package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLPersonaRepository struct {
	db *database.DB
}

func NewSQLPersonaRepository(db *database.DB) *SQLPersonaRepository {
	return &SQLPersonaRepository{db: db}
}

const columnasPersona = "id_persona, nombre, apellido_paterno, apellido_materno"

func (r *SQLPersonaRepository) List(ctx context.Context) ([]models.Persona, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT "+columnasPersona+" FROM personas ORDER BY id_persona")
	if err != nil {
		return nil, fmt.Errorf("error al obtener personas: %w", err)
	}
	defer rows.Close()

	personas := []models.Persona{}
	for rows.Next() {
		var p models.Persona
		if err := rows.Scan(&p.IDPersona, &p.Nombre, &p.ApellidoPaterno, &p.ApellidoMaterno); err != nil {
			return nil, fmt.Errorf("error al escanear persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func (r *SQLPersonaRepository) Get(ctx context.Context, id int) (models.Persona, error) {
	var p models.Persona
	err := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasPersona+" FROM personas WHERE id_persona = ?"), id,
	).Scan(&p.IDPersona, &p.Nombre, &p.ApellidoPaterno, &p.ApellidoMaterno)
	return p, noEncontrado(err)
}

func (r *SQLPersonaRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM personas WHERE id_persona = ?)", id)
}

func (r *SQLPersonaRepository) Create(ctx context.Context, p models.Persona) error {
	return insertar(ctx, r.db,
		"INSERT INTO personas ("+columnasPersona+") VALUES (?, ?, ?, ?)",
		p.IDPersona, p.Nombre, p.ApellidoPaterno, p.ApellidoMaterno)
}

func (r *SQLPersonaRepository) Update(ctx context.Context, p models.Persona) error {
	return modificar(ctx, r.db,
		"UPDATE personas SET nombre = ?, apellido_paterno = ?, apellido_materno = ? WHERE id_persona = ?",
		p.Nombre, p.ApellidoPaterno, p.ApellidoMaterno, p.IDPersona)
}

func (r *SQLPersonaRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM personas WHERE id_persona = ?", id)
}
