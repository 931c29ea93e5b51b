package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lizet96/relaciones-backend/tenancy"
)

// Claims personalizados para el JWT
type Claims struct {
	UserID   int64 `json:"user_id"`
	TenantID int64 `json:"tenant_id"`
	jwt.RegisteredClaims
}

// JWT firma y valida los tokens de los usuarios de un tenant
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT crea el firmador con la clave y duración configuradas
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// TTL es la vigencia de los tokens emitidos
func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// GenerateJWT genera un token JWT para un usuario de un tenant
func (j *JWT) GenerateJWT(userID, tenantID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Parse valida la firma y la vigencia del token
func (j *JWT) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JWTMiddleware middleware para validar tokens JWT
func (j *JWT) JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		// Verificar que el token tenga el formato "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		claims, err := j.Parse(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("tenant_id", claims.TenantID)

		return c.Next()
	}
}

// RequireTenant exige que el token pertenezca al tenant resuelto por el host.
// Debe ir después de tenancy.Middleware y JWTMiddleware.
func RequireTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant := tenancy.FromContext(c.UserContext())
		if tenant == nil {
			return c.Status(404).JSON(fiber.Map{
				"error": "Tenant no encontrado",
			})
		}

		tenantID, ok := c.Locals("tenant_id").(int64)
		if !ok || tenantID != tenant.ID {
			return c.Status(403).JSON(fiber.Map{
				"error": "Acceso denegado: el token no pertenece a este tenant",
			})
		}

		return c.Next()
	}
}
