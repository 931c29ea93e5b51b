package tenancy

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware resuelve el tenant del host y lo deja en el contexto de la petición.
// Un host sin tenant continúa sin él; cada handler decide qué hacer.
func Middleware(r *Resolver, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := r.Resolve(c.UserContext(), c.Hostname())
		if err != nil {
			log.Error("Error al resolver tenant", zap.String("host", c.Hostname()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error al resolver el tenant",
			})
		}
		if t != nil {
			c.SetUserContext(WithTenant(c.UserContext(), t))
			c.Locals("tenant_domain", t.Domain)
		}
		return c.Next()
	}
}
