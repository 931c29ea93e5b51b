package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/tenancy"
)

func leerJSON(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func appProtegida(j *JWT) *fiber.App {
	app := fiber.New()
	app.Get("/privado", j.JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals("user_id"),
			"tenant_id": c.Locals("tenant_id"),
		})
	})
	return app
}

func TestJWT_GenerarYValidar(t *testing.T) {
	j := NewJWT("secreto-de-prueba", time.Hour)
	token, err := j.GenerateJWT(7, 2)
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, int64(2), claims.TenantID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWT_OtraClaveEsInvalida(t *testing.T) {
	token, err := NewJWT("una", time.Hour).GenerateJWT(1, 1)
	require.NoError(t, err)

	_, err = NewJWT("otra", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestJWT_Expirado(t *testing.T) {
	j := NewJWT("secreto", -time.Minute)
	token, err := j.GenerateJWT(1, 1)
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	j := NewJWT("secreto", time.Hour)
	app := appProtegida(j)
	token, err := j.GenerateJWT(3, 1)
	require.NoError(t, err)

	casos := []struct {
		nombre string
		header string
		status int
		error  string
	}{
		{"sin header", "", 401, "Token de autorización requerido"},
		{"sin Bearer", token, 401, "Formato de token inválido"},
		{"token basura", "Bearer abc.def.ghi", 401, "Token inválido"},
		{"token válido", "Bearer " + token, 200, ""},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/privado", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := leerJSON(t, resp.Body)
			if tc.error != "" {
				assert.Equal(t, tc.error, body["error"])
				return
			}
			assert.EqualValues(t, 3, body["user_id"])
			assert.EqualValues(t, 1, body["tenant_id"])
		})
	}
}

func TestRequireTenant(t *testing.T) {
	j := NewJWT("secreto", time.Hour)
	tenantA := &models.Tenant{ID: 1, Domain: "empresa-a.test", IsActive: true}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Tenant") == "a" {
			c.SetUserContext(tenancy.WithTenant(c.UserContext(), tenantA))
		}
		return c.Next()
	})
	app.Post("/posts", j.JWTMiddleware(), RequireTenant(), func(c *fiber.Ctx) error {
		return c.SendStatus(201)
	})

	tokenA, _ := j.GenerateJWT(1, 1)
	tokenB, _ := j.GenerateJWT(3, 2)

	peticion := func(tenant, token string) int {
		req := httptest.NewRequest("POST", "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		if tenant != "" {
			req.Header.Set("X-Tenant", tenant)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 201, peticion("a", tokenA))
	assert.Equal(t, 403, peticion("a", tokenB))
	assert.Equal(t, 404, peticion("", tokenA))
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "Demasiadas peticiones, intenta más tarde", leerJSON(t, resp.Body)["message"])
}

func TestRateLimiter_ClavePorHost(t *testing.T) {
	app := fiber.New()
	app.Use(CreateRateLimiter(RateLimitConfig{Max: 1, Expiration: time.Minute, Message: "límite", Clave: porIPyHost}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	pedir := func(host string) int {
		resp, err := app.Test(httptest.NewRequest("GET", "http://"+host+"/", nil))
		require.NoError(t, err)
		return resp.StatusCode
	}
	assert.Equal(t, 200, pedir("empresa-a.test"))
	assert.Equal(t, fiber.StatusTooManyRequests, pedir("empresa-a.test"))
	assert.Equal(t, 200, pedir("empresa-b.test"))
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestRequestTimeout(t *testing.T) {
	app := fiber.New()
	app.Use(RequestTimeout(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"deadline": ok})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, true, leerJSON(t, resp.Body)["deadline"])
}

func TestFilterSensitiveData(t *testing.T) {
	out := filterSensitiveData(`{"email":"ana@empresa-a.test","password":"secreta"}`)
	assert.Contains(t, out, `"password":"[FILTERED]"`)
	assert.Contains(t, out, "ana@empresa-a.test")
	assert.NotContains(t, out, "secreta")

	largo := strings.Repeat("a", maxBodyLog+10)
	assert.True(t, strings.HasSuffix(filterSensitiveData(largo), "...[truncated]"))
}

func TestDetermineLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, determineLogLevel(200))
	assert.Equal(t, zapcore.InfoLevel, determineLogLevel(301))
	assert.Equal(t, zapcore.WarnLevel, determineLogLevel(404))
	assert.Equal(t, zapcore.WarnLevel, determineLogLevel(422))
	assert.Equal(t, zapcore.ErrorLevel, determineLogLevel(500))
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	app.Use(LoggingMiddleware(zap.New(core)))
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		return c.Status(401).JSON(fiber.Map{"error": "Credenciales inválidas"})
	})

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entrada := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entrada.Level)

	campos := entrada.ContextMap()
	assert.Equal(t, "POST", campos["method"])
	assert.Equal(t, "/auth/login", campos["path"])
	assert.EqualValues(t, 401, campos["status"])
	assert.Contains(t, campos["body"], "[FILTERED]")
}
