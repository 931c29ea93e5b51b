package tenancy

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/cache"
	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
)

const prefijoCache = "tenant:domain:"

// Resolver encuentra el tenant que corresponde al host de una petición
type Resolver struct {
	tenants repository.TenantRepository
	kv      cache.KV // nil desactiva la caché
	ttl     time.Duration
	log     *zap.Logger
}

func NewResolver(tenants repository.TenantRepository, kv cache.KV, ttl time.Duration, log *zap.Logger) *Resolver {
	return &Resolver{tenants: tenants, kv: kv, ttl: ttl, log: log}
}

// CacheHabilitada indica si hay un KV configurado
func (r *Resolver) CacheHabilitada() bool {
	return r.kv != nil
}

// NormalizarHost pasa el host a minúsculas y quita el puerto
func NormalizarHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.Trim(host, "[]"), ".")
}

// Resolve devuelve el tenant activo del host, o nil si no hay ninguno.
// Solo los tenants encontrados se guardan en caché.
func (r *Resolver) Resolve(ctx context.Context, host string) (*models.Tenant, error) {
	domain := NormalizarHost(host)
	if domain == "" {
		return nil, nil
	}

	if t := r.desdeCache(ctx, domain); t != nil {
		return t, nil
	}

	t, err := r.tenants.GetByDomain(ctx, domain)
	if errors.Is(err, models.ErrNoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		r.log.Debug("Tenant inactivo", zap.String("domain", domain))
		return nil, nil
	}

	r.guardarCache(ctx, domain, t)
	return &t, nil
}

// Lookup busca el tenant por dominio sin caché ni filtro de activo
func (r *Resolver) Lookup(ctx context.Context, host string) (*models.Tenant, error) {
	t, err := r.tenants.GetByDomain(ctx, NormalizarHost(host))
	if errors.Is(err, models.ErrNoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Invalidar borra el tenant de la caché
func (r *Resolver) Invalidar(ctx context.Context, domain string) error {
	if r.kv == nil {
		return nil
	}
	return r.kv.Del(ctx, prefijoCache+NormalizarHost(domain))
}

func (r *Resolver) desdeCache(ctx context.Context, domain string) *models.Tenant {
	if r.kv == nil {
		return nil
	}
	val, err := r.kv.Get(ctx, prefijoCache+domain)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.log.Warn("Error al leer tenant de la caché", zap.String("domain", domain), zap.Error(err))
		}
		return nil
	}
	var t models.Tenant
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		r.log.Warn("Tenant en caché corrupto", zap.String("domain", domain), zap.Error(err))
		return nil
	}
	if !t.IsActive {
		return nil
	}
	return &t
}

func (r *Resolver) guardarCache(ctx context.Context, domain string, t models.Tenant) {
	if r.kv == nil {
		return
	}
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := r.kv.Set(ctx, prefijoCache+domain, string(b), r.ttl); err != nil {
		r.log.Warn("Error al guardar tenant en la caché", zap.String("domain", domain), zap.Error(err))
	}
}
