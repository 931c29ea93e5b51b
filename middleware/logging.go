package middleware

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxBodyLog = 1000

// LoggingMiddleware registra cada petición HTTP como una entrada estructurada
func LoggingMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", clientIP(c)),
			zap.String("host", c.Hostname()),
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if domain, ok := c.Locals("tenant_domain").(string); ok && domain != "" {
			fields = append(fields, zap.String("tenant_domain", domain))
		}
		if ua := c.Get("User-Agent"); ua != "" {
			fields = append(fields, zap.String("user_agent", ua))
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			fields = append(fields, zap.String("query", q))
		}

		// Body solo para métodos con cuerpo
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
			if body := string(c.Body()); body != "" {
				fields = append(fields, zap.String("body", filterSensitiveData(body)))
			}
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if ce := log.Check(determineLogLevel(status), "Petición HTTP"); ce != nil {
			ce.Write(fields...)
		}
		return err
	}
}

// clientIP prioriza los headers del proxy sobre la IP de la conexión
func clientIP(c *fiber.Ctx) string {
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.IP()
}

// filterSensitiveData filtra información sensible del body
func filterSensitiveData(body string) string {
	sensitiveFields := []string{"password", "secret", "token", "access_token"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return truncate(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	return truncate(string(filteredJSON))
}

func truncate(s string) string {
	if len(s) > maxBodyLog {
		return s[:maxBodyLog] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) zapcore.Level {
	switch {
	case statusCode >= 500:
		return zapcore.ErrorLevel
	case statusCode >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
