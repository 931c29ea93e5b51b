package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/cache"
	"github.com/lizet96/relaciones-backend/config"
	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/logger"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/routes"
	"github.com/lizet96/relaciones-backend/tenancy"
)

func main() {
	// Cargar variables de entorno
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "relaciones-backend")
	if err != nil {
		log.Fatalf("Error al crear el logger: %v", err)
	}
	defer zl.Sync()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("Configuración inválida", zap.String("environment", cfg.Environment), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, db := abrirStore(ctx, cfg, zl)
	if db != nil {
		defer db.Close()
	}

	// Caché de tenants (opcional)
	var kv cache.KV
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zl.Warn("Redis no disponible, la caché de tenants queda desactivada",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			kv = cache.NewRedisKV(redisClient)
			defer redisClient.Close()
			zl.Info("Caché de tenants en Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}
	resolver := tenancy.NewResolver(store.Tenants, kv, cfg.Tenancy.CacheTTL, zl)

	// Crear instancia de Fiber con configuración
	app := fiber.New(routes.FiberConfig(cfg))

	// Configurar rutas
	routes.SetupRoutes(app, routes.Dependencias{
		Config:   cfg,
		Store:    store,
		Resolver: resolver,
		Log:      zl,
	})

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Servidor iniciado",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("health", "http://localhost:"+cfg.Port+"/health"),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zl.Info("Señal recibida, deteniendo servidor", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zl.Error("El servidor se detuvo", zap.Error(err))
		}
	}
	cancel()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("Error al detener el servidor", zap.Error(err))
	}
}

// abrirStore conecta la base de datos, o usa el almacenamiento en memoria si DB_ENABLED=false
func abrirStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*repository.Store, *database.DB) {
	if !cfg.Database.Enabled {
		semilla := database.Semilla()
		hash, err := database.HashSemilla()
		if err != nil {
			zl.Fatal("Error al preparar los datos de ejemplo", zap.Error(err))
		}
		zl.Warn("DB_ENABLED=false: usando almacenamiento en memoria con datos de ejemplo")
		return repository.NewMemoryStore(&semilla, hash), nil
	}

	// Conectar a la base de datos
	db, err := database.ConnectDB(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Error al conectar a la base de datos", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			zl.Fatal("Error al aplicar migraciones", zap.Error(err))
		}
	}
	if cfg.Database.Seed {
		if err := db.Seed(ctx); err != nil {
			db.Close()
			zl.Fatal("Error al cargar datos de ejemplo", zap.Error(err))
		}
	}

	return repository.NewSQLStore(db), db
}
