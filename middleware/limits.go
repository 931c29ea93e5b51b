package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig configuración para rate limiting
type RateLimitConfig struct {
	Max        int           // Número máximo de requests
	Expiration time.Duration // Ventana de tiempo
	Message    string

	// Clave agrupa las peticiones que comparten el límite; por defecto la IP
	Clave func(c *fiber.Ctx) string
}

// DefaultRateLimit aplica a toda la API
var DefaultRateLimit = RateLimitConfig{
	Max:        100,
	Expiration: 15 * time.Minute,
	Message:    "Demasiadas peticiones, intenta más tarde",
}

// AuthRateLimit cuenta los intentos de login por IP y por host del tenant
var AuthRateLimit = RateLimitConfig{
	Max:        20,
	Expiration: 30 * time.Minute,
	Message:    "Demasiados intentos de login, intenta más tarde",
	Clave:      porIPyHost,
}

func porIP(c *fiber.Ctx) string {
	return c.IP()
}

func porIPyHost(c *fiber.Ctx) string {
	return c.IP() + "|" + c.Hostname()
}

// CreateRateLimiter arma el limiter de fiber a partir de cfg
func CreateRateLimiter(cfg RateLimitConfig) fiber.Handler {
	clave := cfg.Clave
	if clave == nil {
		clave = porIP
	}
	reintento := int(cfg.Expiration.Seconds())

	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Expiration,
		KeyGenerator: clave,
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(reintento))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       true,
				"message":     cfg.Message,
				"retry_after": reintento,
			})
		},
	})
}

// RateLimiter aplica DefaultRateLimit con el máximo y la ventana de la configuración.
// Valores no positivos conservan los del default.
func RateLimiter(max int, window time.Duration) fiber.Handler {
	cfg := DefaultRateLimit
	if max > 0 {
		cfg.Max = max
	}
	if window > 0 {
		cfg.Expiration = window
	}
	return CreateRateLimiter(cfg)
}

func AuthRateLimiter() fiber.Handler {
	return CreateRateLimiter(AuthRateLimit)
}

// RequestTimeout limita la duración del contexto que reciben los repositorios
func RequestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// SecurityHeaders agrega los headers de seguridad a todas las respuestas.
// La API solo sirve JSON: nada se cachea ni se embebe.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderXFrameOptions, "DENY")
		c.Set(fiber.HeaderReferrerPolicy, "no-referrer")
		c.Set(fiber.HeaderContentSecurityPolicy, "default-src 'none'; frame-ancestors 'none'")
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		return c.Next()
	}
}
