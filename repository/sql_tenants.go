package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLTenantRepository struct {
	db *database.DB
}

func NewSQLTenantRepository(db *database.DB) *SQLTenantRepository {
	return &SQLTenantRepository{db: db}
}

func (r *SQLTenantRepository) columnas(alias string) string {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	return p + "id, " + p + "name, " + p + "domain, " + p + r.db.Dialect.Quote("database") + ", " +
		p + "is_active, " + p + "created_at, " + p + "updated_at"
}

func escanearTenant(s escaner, t *models.Tenant) error {
	return s.Scan(&t.ID, &t.Name, &t.Domain, &t.Database, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

func (r *SQLTenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT "+r.columnas("")+" FROM tenants ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("error al obtener tenants: %w", err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		var t models.Tenant
		if err := escanearTenant(rows, &t); err != nil {
			return nil, fmt.Errorf("error al escanear tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// GetByDomain compara el dominio exacto; la normalización del host la hace quien llama
func (r *SQLTenantRepository) GetByDomain(ctx context.Context, domain string) (models.Tenant, error) {
	var t models.Tenant
	row := r.db.SQL.QueryRowContext(ctx, r.db.Rebind("SELECT "+r.columnas("")+" FROM tenants WHERE domain = ?"), domain)
	if err := escanearTenant(row, &t); err != nil {
		return t, noEncontrado(err)
	}
	return t, nil
}

type SQLUserRepository struct {
	db *database.DB
}

func NewSQLUserRepository(db *database.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

const columnasUser = "id, name, email, password, tenant_id, created_at, updated_at"

func escanearUser(s escaner, u *models.User) error {
	return s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.TenantID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *SQLUserRepository) Get(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	row := r.db.SQL.QueryRowContext(ctx, r.db.Rebind("SELECT "+columnasUser+" FROM users WHERE id = ?"), id)
	if err := escanearUser(row, &u); err != nil {
		return u, noEncontrado(err)
	}
	return u, nil
}

func (r *SQLUserRepository) GetByEmail(ctx context.Context, tenantID int64, email string) (models.User, error) {
	var u models.User
	row := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasUser+" FROM users WHERE tenant_id = ? AND email = ?"), tenantID, email)
	if err := escanearUser(row, &u); err != nil {
		return u, noEncontrado(err)
	}
	return u, nil
}
