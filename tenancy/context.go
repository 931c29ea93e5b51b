package tenancy

import (
	"context"

	"github.com/lizet96/relaciones-backend/models"
)

type ctxKey struct{}

// WithTenant devuelve un contexto derivado con el tenant de la petición
func WithTenant(ctx context.Context, t *models.Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext devuelve el tenant de la petición o nil si no se resolvió ninguno
func FromContext(ctx context.Context) *models.Tenant {
	t, _ := ctx.Value(ctxKey{}).(*models.Tenant)
	return t
}
