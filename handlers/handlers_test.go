package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/middleware"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/tenancy"
	"github.com/lizet96/relaciones-backend/validacion"
)

const secretoPrueba = "secreto-de-prueba"

type crudHandler interface {
	Listar(c *fiber.Ctx) error
	Obtener(c *fiber.Ctx) error
	Crear(c *fiber.Ctx) error
	Actualizar(c *fiber.Ctx) error
	Eliminar(c *fiber.Ctx) error
}

func montar(app *fiber.App, ruta string, h crudHandler) fiber.Router {
	g := app.Group(ruta)
	g.Get("/", h.Listar)
	g.Post("/", h.Crear)
	g.Get("/:id", h.Obtener)
	g.Put("/:id", h.Actualizar)
	g.Delete("/:id", h.Eliminar)
	return g
}

type entorno struct {
	app   *fiber.App
	store *repository.Store
	jwt   *middleware.JWT
}

// nuevoEntorno arma la API sobre el almacenamiento en memoria con los datos de ejemplo
func nuevoEntorno(t *testing.T, sinTenant bool) *entorno {
	t.Helper()

	semilla := database.Semilla()
	hash, err := bcrypt.GenerateFromPassword([]byte(database.PasswordSemilla), bcrypt.MinCost)
	require.NoError(t, err)
	store := repository.NewMemoryStore(&semilla, string(hash))

	log := zap.NewNop()
	val := validacion.New()
	jwt := middleware.NewJWT(secretoPrueba, time.Hour)
	resolver := tenancy.NewResolver(store.Tenants, nil, time.Minute, log)

	app := fiber.New()
	montar(app, "/personas", NewPersonaHandler(store, val, log))
	montar(app, "/pasaportes", NewPasaporteHandler(store, val, log))
	montar(app, "/pedidos", NewPedidoHandler(store, val, log))
	montar(app, "/cursos", NewCursoHandler(store, val, log))

	clientes := NewClienteHandler(store, val, log)
	montar(app, "/clientes", clientes).Get("/:id/pedidos", clientes.Pedidos)

	estudiantes := NewEstudianteHandler(store, val, log)
	g := montar(app, "/estudiantes", estudiantes)
	g.Get("/:id/cursos", estudiantes.Cursos)
	g.Post("/:id/cursos", estudiantes.Inscribir)
	g.Delete("/:id/cursos/:id_curso", estudiantes.Desinscribir)

	reportes := NewReporteHandler(store, log)
	app.Get("/reportes/clientes", reportes.Clientes)
	app.Get("/reportes/cursos", reportes.Cursos)

	conTenant := tenancy.Middleware(resolver, log)
	posts := NewPostHandler(store, val, log, sinTenant)
	app.Get("/posts", conTenant, posts.Listar)
	app.Post("/posts", conTenant, jwt.JWTMiddleware(), middleware.RequireTenant(), posts.Crear)

	auth := NewAuthHandler(store, jwt, val, log)
	app.Post("/auth/login", conTenant, auth.Login)
	app.Get("/auth/perfil", conTenant, jwt.JWTMiddleware(), middleware.RequireTenant(), auth.Perfil)

	debug := NewDebugHandler(resolver, store, log, sinTenant)
	app.Get("/debug/tenant", conTenant, debug.Tenant)
	app.Delete("/debug/tenant/cache", debug.LimpiarCache)

	return &entorno{app: app, store: store, jwt: jwt}
}

type respuesta struct {
	status int
	header func(string) string
	body   []byte
}

func (r respuesta) objeto(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func (r respuesta) lista(t *testing.T) []interface{} {
	t.Helper()
	var out []interface{}
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func (r respuesta) errores(t *testing.T) map[string][]string {
	t.Helper()
	var out ErrorValidacion
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	require.Equal(t, mensajeValidacion, out.Message)
	return out.Errors
}

// pedir envía una petición a la app. url puede incluir el host: http://empresa-a.test/posts
func (e *entorno) pedir(t *testing.T, method, url, body string, headers ...string) respuesta {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return respuesta{status: resp.StatusCode, header: resp.Header.Get, body: b}
}
