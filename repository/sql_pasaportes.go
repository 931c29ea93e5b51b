package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLPasaporteRepository struct {
	db *database.DB
}

func NewSQLPasaporteRepository(db *database.DB) *SQLPasaporteRepository {
	return &SQLPasaporteRepository{db: db}
}

const columnasPasaporte = "id_pasaporte, numero, id_persona"

func (r *SQLPasaporteRepository) List(ctx context.Context) ([]models.Pasaporte, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT "+columnasPasaporte+" FROM pasaportes ORDER BY id_pasaporte")
	if err != nil {
		return nil, fmt.Errorf("error al obtener pasaportes: %w", err)
	}
	defer rows.Close()

	pasaportes := []models.Pasaporte{}
	for rows.Next() {
		var p models.Pasaporte
		if err := rows.Scan(&p.IDPasaporte, &p.Numero, &p.IDPersona); err != nil {
			return nil, fmt.Errorf("error al escanear pasaporte: %w", err)
		}
		pasaportes = append(pasaportes, p)
	}
	return pasaportes, rows.Err()
}

func (r *SQLPasaporteRepository) Get(ctx context.Context, id int) (models.Pasaporte, error) {
	var p models.Pasaporte
	err := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasPasaporte+" FROM pasaportes WHERE id_pasaporte = ?"), id,
	).Scan(&p.IDPasaporte, &p.Numero, &p.IDPersona)
	return p, noEncontrado(err)
}

func (r *SQLPasaporteRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM pasaportes WHERE id_pasaporte = ?)", id)
}

func (r *SQLPasaporteRepository) PersonaTienePasaporte(ctx context.Context, idPersona, exceptoID int) (bool, error) {
	return existe(ctx, r.db,
		"SELECT EXISTS(SELECT 1 FROM pasaportes WHERE id_persona = ? AND id_pasaporte <> ?)",
		idPersona, exceptoID)
}

func (r *SQLPasaporteRepository) Create(ctx context.Context, p models.Pasaporte) error {
	return insertar(ctx, r.db,
		"INSERT INTO pasaportes ("+columnasPasaporte+") VALUES (?, ?, ?)",
		p.IDPasaporte, p.Numero, p.IDPersona)
}

func (r *SQLPasaporteRepository) Update(ctx context.Context, p models.Pasaporte) error {
	return modificar(ctx, r.db,
		"UPDATE pasaportes SET numero = ?, id_persona = ? WHERE id_pasaporte = ?",
		p.Numero, p.IDPersona, p.IDPasaporte)
}

func (r *SQLPasaporteRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM pasaportes WHERE id_pasaporte = ?", id)
}
