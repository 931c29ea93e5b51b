package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/relaciones-backend/middleware"
	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/tenancy"
	"github.com/lizet96/relaciones-backend/validacion"
)

// AuthHandler autentica a los usuarios del tenant del host
type AuthHandler struct {
	users repository.UserRepository
	jwt   *middleware.JWT
	val   *validacion.Validador
	log   *zap.Logger
}

func NewAuthHandler(store *repository.Store, jwt *middleware.JWT, val *validacion.Validador, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: store.Users, jwt: jwt, val: val, log: log}
}

// Login maneja el inicio de sesión; el usuario debe pertenecer al tenant del host
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tenant := tenancy.FromContext(ctx)
	if tenant == nil {
		return noEncontrado(c, "Tenant no encontrado")
	}

	var loginReq models.LoginRequest
	if err := decodificar(c, &loginReq); err != nil {
		return datosInvalidos(c)
	}
	loginReq.Email = strings.TrimSpace(loginReq.Email)
	if errores := h.val.Estructura(loginReq, nil); !errores.Vacio() {
		return validacionFallida(c, errores)
	}

	// Buscar usuario por email dentro del tenant
	usuario, err := h.users.GetByEmail(ctx, tenant.ID, loginReq.Email)
	if errors.Is(err, models.ErrNoEncontrado) {
		return credencialesInvalidas(c)
	}
	if err != nil {
		return fallo(c, h.log, "Usuario no encontrado", "Error al iniciar sesión", err)
	}

	// Verificar contraseña
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(loginReq.Password)); err != nil {
		h.log.Info("Intento de login fallido",
			zap.String("tenant", tenant.Domain),
			zap.String("email", loginReq.Email),
		)
		return credencialesInvalidas(c)
	}

	token, err := h.jwt.GenerateJWT(usuario.ID, tenant.ID)
	if err != nil {
		h.log.Error("Error al generar token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token",
		})
	}

	return c.JSON(models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(h.jwt.TTL().Seconds()),
		Usuario:     usuario.Publico(),
		Tenant:      *tenant,
	})
}

// Perfil devuelve el usuario autenticado
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(int64)

	usuario, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return fallo(c, h.log, "Usuario no encontrado", "Error al obtener el perfil", err)
	}
	return c.JSON(usuario.Publico())
}

func credencialesInvalidas(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{
		"error": "Credenciales inválidas",
	})
}
