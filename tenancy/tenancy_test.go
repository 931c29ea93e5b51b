package tenancy

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/cache"
	"github.com/lizet96/relaciones-backend/models"
)

// fakeKV es un KV en memoria que cuenta lecturas y escrituras
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

// fakeTenants cuenta las consultas por dominio
type fakeTenants struct {
	porDominio map[string]models.Tenant
	consultas  int
}

func (f *fakeTenants) List(context.Context) ([]models.Tenant, error) { return nil, nil }

func (f *fakeTenants) GetByDomain(_ context.Context, domain string) (models.Tenant, error) {
	f.consultas++
	t, ok := f.porDominio[domain]
	if !ok {
		return models.Tenant{}, models.ErrNoEncontrado
	}
	return t, nil
}

func nuevosTenants() *fakeTenants {
	return &fakeTenants{porDominio: map[string]models.Tenant{
		"empresa-a.test": {ID: 1, Name: "Empresa A", Domain: "empresa-a.test", IsActive: true},
		"empresa-b.test": {ID: 2, Name: "Empresa B", Domain: "empresa-b.test", IsActive: true},
		"inactiva.test":  {ID: 3, Name: "Inactiva", Domain: "inactiva.test", IsActive: false},
	}}
}

func TestNormalizarHost(t *testing.T) {
	casos := map[string]string{
		"empresa-a.test":      "empresa-a.test",
		"Empresa-A.TEST:8000": "empresa-a.test",
		" empresa-b.test. ":   "empresa-b.test",
		"[::1]:3000":          "::1",
		"localhost":           "localhost",
		"":                    "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, NormalizarHost(entrada), entrada)
	}
}

func TestResolve_UsaCache(t *testing.T) {
	tenants := nuevosTenants()
	kv := newFakeKV()
	r := NewResolver(tenants, kv, time.Minute, zap.NewNop())
	ctx := context.Background()

	t1, err := r.Resolve(ctx, "empresa-a.test:8000")
	require.NoError(t, err)
	require.NotNil(t, t1)
	assert.Equal(t, int64(1), t1.ID)

	t2, err := r.Resolve(ctx, "EMPRESA-A.test")
	require.NoError(t, err)
	require.NotNil(t, t2)
	assert.Equal(t, "Empresa A", t2.Name)

	assert.Equal(t, 1, tenants.consultas)
	assert.Equal(t, 1, kv.sets)
	assert.Contains(t, kv.data, "tenant:domain:empresa-a.test")

	require.NoError(t, r.Invalidar(ctx, "empresa-a.test"))
	_, err = r.Resolve(ctx, "empresa-a.test")
	require.NoError(t, err)
	assert.Equal(t, 2, tenants.consultas)
}

func TestResolve_HostDesconocidoNoSeCachea(t *testing.T) {
	tenants := nuevosTenants()
	kv := newFakeKV()
	r := NewResolver(tenants, kv, time.Minute, zap.NewNop())

	tenant, err := r.Resolve(context.Background(), "otro.test")

	require.NoError(t, err)
	assert.Nil(t, tenant)
	assert.Equal(t, 0, kv.sets)
}

func TestResolve_InactivoNoResuelve(t *testing.T) {
	r := NewResolver(nuevosTenants(), nil, time.Minute, zap.NewNop())

	tenant, err := r.Resolve(context.Background(), "inactiva.test")
	require.NoError(t, err)
	assert.Nil(t, tenant)

	directo, err := r.Lookup(context.Background(), "inactiva.test")
	require.NoError(t, err)
	require.NotNil(t, directo)
	assert.False(t, directo.IsActive)
}

func TestMiddleware_TenantPorPeticion(t *testing.T) {
	r := NewResolver(nuevosTenants(), newFakeKV(), time.Minute, zap.NewNop())
	app := fiber.New()
	app.Use(Middleware(r, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		tenant := FromContext(c.UserContext())
		if tenant == nil {
			return c.JSON(fiber.Map{"tenant": nil})
		}
		return c.JSON(fiber.Map{"tenant": tenant.Domain})
	})

	hacer := func(host string) map[string]any {
		req := httptest.NewRequest("GET", "/", nil)
		req.Host = host
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		var out map[string]any
		require.NoError(t, json.Unmarshal(body, &out))
		return out
	}

	assert.Equal(t, "empresa-a.test", hacer("empresa-a.test")["tenant"])
	assert.Equal(t, "empresa-b.test", hacer("empresa-b.test:8000")["tenant"])
	assert.Nil(t, hacer("desconocido.test")["tenant"])
}

func TestFromContext_SinTenant(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	ctx := WithTenant(context.Background(), &models.Tenant{ID: 9})
	assert.Equal(t, int64(9), FromContext(ctx).ID)
}
