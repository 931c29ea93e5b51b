package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLPostRepository struct {
	db      *database.DB
	tenants *SQLTenantRepository
}

func NewSQLPostRepository(db *database.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db, tenants: NewSQLTenantRepository(db)}
}

// filtroTenant arma la condición de tenant; nil consulta todos los posts
func filtroTenant(alias string, tenantID *int64) (string, []any) {
	if tenantID == nil {
		return "", nil
	}
	return " WHERE " + alias + "tenant_id = ?", []any{*tenantID}
}

// ListDetalle devuelve los posts más recientes primero, con autor y tenant
func (r *SQLPostRepository) ListDetalle(ctx context.Context, tenantID *int64) ([]models.PostDetalle, error) {
	where, args := filtroTenant("p.", tenantID)
	query := `SELECT p.id, p.title, p.content, p.user_id, p.tenant_id, p.created_at, p.updated_at,
		u.id, u.name, u.email, u.tenant_id, ` + r.tenants.columnas("t") + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		JOIN tenants t ON t.id = p.tenant_id` + where + `
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.SQL.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener posts: %w", err)
	}
	defer rows.Close()

	posts := []models.PostDetalle{}
	for rows.Next() {
		var d models.PostDetalle
		t := &d.Tenant
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.UserID, &d.TenantID, &d.CreatedAt, &d.UpdatedAt,
			&d.User.ID, &d.User.Name, &d.User.Email, &d.User.TenantID,
			&t.ID, &t.Name, &t.Domain, &t.Database, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error al escanear post: %w", err)
		}
		posts = append(posts, d)
	}
	return posts, rows.Err()
}

func (r *SQLPostRepository) Count(ctx context.Context, tenantID *int64) (int, error) {
	where, args := filtroTenant("", tenantID)
	var n int
	if err := r.db.SQL.QueryRowContext(ctx, r.db.Rebind("SELECT COUNT(*) FROM posts"+where), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error al contar posts: %w", err)
	}
	return n, nil
}

// TenantIDs devuelve los tenant_id distintos presentes en los posts visibles
func (r *SQLPostRepository) TenantIDs(ctx context.Context, tenantID *int64) ([]int64, error) {
	where, args := filtroTenant("", tenantID)
	rows, err := r.db.SQL.QueryContext(ctx,
		r.db.Rebind("SELECT DISTINCT tenant_id FROM posts"+where+" ORDER BY tenant_id"), args...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener tenants de posts: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLPostRepository) Create(ctx context.Context, p *models.Post) error {
	now := time.Now().UTC()
	id, err := database.InsertID(ctx, r.db.Dialect, r.db.SQL,
		"INSERT INTO posts (title, content, user_id, tenant_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)", "id",
		p.Title, p.Content, p.UserID, p.TenantID, now, now)
	if err != nil {
		return traducirError(err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}
