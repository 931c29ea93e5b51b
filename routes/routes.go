package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/config"
	"github.com/lizet96/relaciones-backend/handlers"
	"github.com/lizet96/relaciones-backend/middleware"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/tenancy"
	"github.com/lizet96/relaciones-backend/validacion"
)

const requestTimeout = 30 * time.Second

// Dependencias agrupa lo que necesitan los handlers
type Dependencias struct {
	Config   *config.Config
	Store    *repository.Store
	Resolver *tenancy.Resolver
	Log      *zap.Logger
}

// recurso es un handler con las cinco operaciones CRUD
type recurso interface {
	Listar(c *fiber.Ctx) error
	Obtener(c *fiber.Ctx) error
	Crear(c *fiber.Ctx) error
	Actualizar(c *fiber.Ctx) error
	Eliminar(c *fiber.Ctx) error
}

// registrar monta el recurso bajo el plural de su nombre: persona -> /personas
func registrar(router fiber.Router, nombre string, h recurso) fiber.Router {
	g := router.Group("/" + inflection.Plural(nombre))
	g.Get("/", h.Listar)
	g.Post("/", h.Crear)
	g.Get("/:id", h.Obtener)
	g.Put("/:id", h.Actualizar)
	g.Patch("/:id", h.Actualizar)
	g.Delete("/:id", h.Eliminar)
	return g
}

// FiberConfig arma la configuración de la app: errores en JSON y límite del cuerpo.
// Fiber rechaza con 413 los cuerpos mayores a BodyLimit antes de llegar a los handlers.
func FiberConfig(cfg *config.Config) fiber.Config {
	return fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName:   "Relaciones API v1.0.0",
		BodyLimit: cfg.HTTP.BodyLimit,
	}
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, d Dependencias) {
	cfg := d.Config

	// Middleware global
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.RateLimiter(cfg.HTTP.RateLimitMax, cfg.HTTP.RateLimitWindow))
	app.Use(middleware.LoggingMiddleware(d.Log))
	app.Use(middleware.RequestTimeout(requestTimeout))

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		code, status, db := fiber.StatusOK, "ok", "ok"
		if d.Store.Ping != nil {
			if err := d.Store.Ping(ctx); err != nil {
				d.Log.Warn("Health check: base de datos no disponible", zap.Error(err))
				code, status, db = fiber.StatusServiceUnavailable, "degraded", "error"
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"message":  "Relaciones API",
			"version":  "1.0.0",
			"database": db,
		})
	})

	val := validacion.New()
	jwt := middleware.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// --- RECURSOS ---
	registrar(app, "persona", handlers.NewPersonaHandler(d.Store, val, d.Log))
	registrar(app, "pasaporte", handlers.NewPasaporteHandler(d.Store, val, d.Log))
	registrar(app, "curso", handlers.NewCursoHandler(d.Store, val, d.Log))
	registrar(app, "pedido", handlers.NewPedidoHandler(d.Store, val, d.Log))

	clienteHandler := handlers.NewClienteHandler(d.Store, val, d.Log)
	clientes := registrar(app, "cliente", clienteHandler)
	clientes.Get("/:id/pedidos", clienteHandler.Pedidos)

	estudianteHandler := handlers.NewEstudianteHandler(d.Store, val, d.Log)
	estudiantes := registrar(app, "estudiante", estudianteHandler)
	estudiantes.Get("/:id/cursos", estudianteHandler.Cursos)
	estudiantes.Post("/:id/cursos", estudianteHandler.Inscribir)
	estudiantes.Delete("/:id/cursos/:id_curso", estudianteHandler.Desinscribir)

	// --- REPORTES ---
	reporteHandler := handlers.NewReporteHandler(d.Store, d.Log)
	reportes := app.Group("/reportes")
	reportes.Get("/clientes", reporteHandler.Clientes)
	reportes.Get("/cursos", reporteHandler.Cursos)

	// --- RUTAS POR TENANT (resueltas a partir del host) ---
	conTenant := tenancy.Middleware(d.Resolver, d.Log)

	postHandler := handlers.NewPostHandler(d.Store, val, d.Log, cfg.Tenancy.UnscopedFallback)
	app.Get("/posts", conTenant, postHandler.Listar)
	app.Post("/posts", conTenant, jwt.JWTMiddleware(), middleware.RequireTenant(), postHandler.Crear)

	authHandler := handlers.NewAuthHandler(d.Store, jwt, val, d.Log)
	auth := app.Group("/auth", conTenant)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/perfil", jwt.JWTMiddleware(), middleware.RequireTenant(), authHandler.Perfil)

	if !cfg.IsProduction() {
		debugHandler := handlers.NewDebugHandler(d.Resolver, d.Store, d.Log, cfg.Tenancy.UnscopedFallback)
		app.Get("/debug/tenant", conTenant, debugHandler.Tenant)
		app.Delete("/debug/tenant/cache", debugHandler.LimpiarCache)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})
}
