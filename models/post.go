package models

import "time"

// Post representa la tabla posts
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required,max=255"`
	Content   string    `json:"content" db:"content" validate:"required"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TenantID  int64     `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PostDetalle es un post con su autor y su tenant cargados
type PostDetalle struct {
	Post
	User   UsuarioPublico `json:"user"`
	Tenant Tenant         `json:"tenant"`
}

// PostEntrada es el cuerpo de POST /posts
type PostEntrada struct {
	Title   Opcional[string] `json:"title"`
	Content Opcional[string] `json:"content"`
}

func (e PostEntrada) Campos() []Campo {
	return []Campo{
		campo("title", TipoTexto, e.Title),
		campo("content", TipoTexto, e.Content),
	}
}

// PostsResponse es el cuerpo de GET /posts
type PostsResponse struct {
	Posts         []PostDetalle `json:"posts"`
	CurrentTenant *Tenant       `json:"currentTenant"`
}
