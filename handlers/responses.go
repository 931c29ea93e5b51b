package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
)

const (
	mensajeValidacion = "Los datos proporcionados no son válidos."
	mensajeConflicto  = "La operación entra en conflicto con registros relacionados"
)

// errDatosInvalidos indica un cuerpo que no es un objeto JSON
var errDatosInvalidos = errors.New("cuerpo JSON inválido")

// ErrorValidacion es el cuerpo de las respuestas 422
type ErrorValidacion struct {
	Message string                   `json:"message"`
	Errors  models.ErroresValidacion `json:"errors"`
}

// parseID lee un parámetro de ruta entero; cualquier otro valor no identifica un registro
func parseID(c *fiber.Ctx, param string) (int, bool) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodificar lee el cuerpo JSON; un cuerpo vacío equivale a {}
func decodificar(c *fiber.Ctx, dst interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errDatosInvalidos
	}
	return nil
}

func datosInvalidos(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{
		"error": "Datos inválidos",
	})
}

func validacionFallida(c *fiber.Ctx, errores models.ErroresValidacion) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorValidacion{
		Message: mensajeValidacion,
		Errors:  errores,
	})
}

func noEncontrado(c *fiber.Ctx, mensaje string) error {
	return c.Status(404).JSON(fiber.Map{
		"error": mensaje,
	})
}

// fallo traduce los errores de los repositorios a respuestas HTTP
func fallo(c *fiber.Ctx, log *zap.Logger, mensaje404, mensaje500 string, err error) error {
	switch {
	case errors.Is(err, models.ErrNoEncontrado):
		return noEncontrado(c, mensaje404)
	case errors.Is(err, models.ErrConflicto):
		return c.Status(409).JSON(fiber.Map{
			"error": mensajeConflicto,
		})
	default:
		log.Error(mensaje500,
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		return c.Status(500).JSON(fiber.Map{
			"error": mensaje500,
		})
	}
}
