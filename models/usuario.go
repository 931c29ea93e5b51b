package models

import (
	"time"
)

// User representa la tabla users; cada usuario pertenece a un tenant
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	TenantID  int64     `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UsuarioPublico es la forma de un usuario embebida en otras respuestas
type UsuarioPublico struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	TenantID int64  `json:"tenant_id"`
}

// Publico devuelve el usuario sin datos sensibles
func (u User) Publico() UsuarioPublico {
	return UsuarioPublico{ID: u.ID, Name: u.Name, Email: u.Email, TenantID: u.TenantID}
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse representa la respuesta del login
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresIn   int            `json:"expires_in"` // segundos
	Usuario     UsuarioPublico `json:"usuario"`
	Tenant      Tenant         `json:"tenant"`
}
