package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/tenancy"
)

// DebugHandler expone el estado de la resolución de tenants. No se registra en producción.
type DebugHandler struct {
	resolver  *tenancy.Resolver
	tenants   repository.TenantRepository
	posts     repository.PostRepository
	log       *zap.Logger
	sinTenant bool
}

func NewDebugHandler(resolver *tenancy.Resolver, store *repository.Store, log *zap.Logger, sinTenant bool) *DebugHandler {
	return &DebugHandler{resolver: resolver, tenants: store.Tenants, posts: store.Posts, log: log, sinTenant: sinTenant}
}

type tenantResumen struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

func resumen(t *models.Tenant) *tenantResumen {
	if t == nil {
		return nil
	}
	return &tenantResumen{ID: t.ID, Name: t.Name, Domain: t.Domain}
}

// Tenant compara el tenant resuelto por el middleware con el encontrado por dominio
func (h *DebugHandler) Tenant(c *fiber.Ctx) error {
	ctx := c.UserContext()
	host := c.Hostname()
	actual := tenancy.FromContext(ctx)

	porDominio, err := h.resolver.Lookup(ctx, host)
	if err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al buscar el tenant", err)
	}

	sinFiltro, err := h.posts.Count(ctx, nil)
	if err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al contar posts", err)
	}

	var filtro *int64
	if actual != nil {
		filtro = &actual.ID
	}
	conFiltro := sinFiltro
	tenantIDs, err := h.posts.TenantIDs(ctx, filtro)
	if err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al contar posts", err)
	}
	if filtro != nil {
		if conFiltro, err = h.posts.Count(ctx, filtro); err != nil {
			return fallo(c, h.log, "Tenant no encontrado", "Error al contar posts", err)
		}
	}

	todos, err := h.tenants.List(ctx)
	if err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al obtener tenants", err)
	}
	dominios := make([]fiber.Map, len(todos))
	for i, t := range todos {
		dominios[i] = fiber.Map{"domain": t.Domain, "is_active": t.IsActive}
	}

	return c.JSON(fiber.Map{
		"debug_info": fiber.Map{
			"request_host":       host,
			"normalized_host":    tenancy.NormalizarHost(host),
			"current_tenant":     resumen(actual),
			"tenant_by_domain":   resumen(porDominio),
			"are_tenants_equal":  actual != nil && porDominio != nil && actual.ID == porDominio.ID,
			"tenant_is_inactive": porDominio != nil && !porDominio.IsActive,
		},
		"query_analysis": fiber.Map{
			"posts_count_without_scope":   sinFiltro,
			"posts_count_with_scope":      conFiltro,
			"posts_with_scope_tenant_ids": tenantIDs,
		},
		"configuration_check": fiber.Map{
			"unscoped_fallback": h.sinTenant,
			"cache_enabled":     h.resolver.CacheHabilitada(),
			"known_domains":     dominios,
		},
	})
}

// LimpiarCache borra de la caché el tenant del host de la petición
func (h *DebugHandler) LimpiarCache(c *fiber.Ctx) error {
	dominio := tenancy.NormalizarHost(c.Hostname())
	if err := h.resolver.Invalidar(c.UserContext(), dominio); err != nil {
		return fallo(c, h.log, "Tenant no encontrado", "Error al limpiar la caché", err)
	}
	h.log.Info("Caché de tenant eliminada", zap.String("domain", dominio))
	return c.JSON(fiber.Map{
		"message": "Caché del tenant eliminada",
		"domain":  dominio,
	})
}
