package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ambientes soportados
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)

// jwtSecretPorDefecto solo sirve en desarrollo
const jwtSecretPorDefecto = "clave_secreta_muy_segura_aqui"

// ErrSecretoPorDefecto indica que producción arrancaría con el JWT_SECRET por defecto
var ErrSecretoPorDefecto = errors.New("JWT_SECRET no configurado: el valor por defecto no se permite en producción")

// Config agrupa la configuración de la API
type Config struct {
	Port        string
	Environment string

	Database struct {
		Enabled     bool
		Driver      string // postgres | mysql
		URL         string
		MaxConns    int
		MinConns    int
		AutoMigrate bool
		Seed        bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Tenancy struct {
		CacheTTL         time.Duration
		UnscopedFallback bool
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Log struct {
		Level  string
		Format string
	}

	HTTP struct {
		BodyLimit       int
		RateLimitMax    int
		RateLimitWindow time.Duration
		CORSOrigins     string
	}
}

// Load lee el archivo .env (si existe) y después las variables de entorno
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Advertencia: No se pudo cargar el archivo .env")
	}
	return FromEnv()
}

// FromEnv construye la configuración solo con variables de entorno
func FromEnv() *Config {
	cfg := &Config{}
	cfg.Port = getEnv("PORT", "3000")
	cfg.Environment = getEnv("ENVIRONMENT", EnvironmentDevelopment)

	cfg.Database.Enabled = parseBool(getEnv("DB_ENABLED", "true"), true)
	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.Database.URL = getEnv("DATABASE_URL", "")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "30"), 30)
	cfg.Database.MinConns = parseInt(getEnv("DB_MIN_CONNS", "5"), 5)
	cfg.Database.AutoMigrate = parseBool(getEnv("AUTO_MIGRATE", "false"), false)
	cfg.Database.Seed = parseBool(getEnv("SEED_DATA", "false"), false)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Tenancy.CacheTTL = parseDuration(getEnv("TENANT_CACHE_TTL", "5m"), 5*time.Minute)
	cfg.Tenancy.UnscopedFallback = parseBool(getEnv("TENANT_UNSCOPED_FALLBACK", "false"), false)

	cfg.JWT.Secret = getEnv("JWT_SECRET", jwtSecretPorDefecto)
	cfg.JWT.TTL = parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.HTTP.BodyLimit = parseInt(getEnv("BODY_LIMIT", "1048576"), 1<<20)
	cfg.HTTP.RateLimitMax = parseInt(getEnv("RATE_LIMIT_MAX", "100"), 100)
	cfg.HTTP.RateLimitWindow = parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute)
	cfg.HTTP.CORSOrigins = getEnv("CORS_ORIGINS", "*")

	return cfg
}

// Validate revisa los valores que no pueden quedar con su default
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWT.Secret == jwtSecretPorDefecto {
		return ErrSecretoPorDefecto
	}
	return nil
}

// IsProduction indica si la API corre en producción
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
