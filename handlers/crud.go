package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// entidad nombra un recurso en los mensajes de respuesta
type entidad struct {
	nombre     string
	plural     string
	femenino   bool
	campoClave string
}

func (e entidad) noEncontrado() string {
	if e.femenino {
		return e.nombre + " no encontrada"
	}
	return e.nombre + " no encontrado"
}

func (e entidad) eliminado() string {
	if e.femenino {
		return e.nombre + " eliminada"
	}
	return e.nombre + " eliminado"
}

// verificador revisa llaves foráneas y valores únicos de v.
// anterior es nil al crear. Agrega a errores los campos que no pasan.
type verificador[T any, E models.Entrada[T]] func(ctx context.Context, v T, e E, anterior *T, errores models.ErroresValidacion) error

// crud implementa listar/obtener/crear/actualizar/eliminar para una entidad con clave asignada por el cliente
type crud[T any, E models.Entrada[T]] struct {
	repo  repository.CRUD[T]
	val   *validacion.Validador
	log   *zap.Logger
	ent   entidad
	clave func(T) int

	// opcionales
	listar      func(ctx context.Context) (interface{}, error)
	referencias verificador[T, E]
}

func (h *crud[T, E]) Listar(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		filas interface{}
		err   error
	)
	if h.listar != nil {
		filas, err = h.listar(ctx)
	} else {
		filas, err = h.repo.List(ctx)
	}
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener "+h.ent.plural, err)
	}
	return c.JSON(filas)
}

func (h *crud[T, E]) Obtener(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return noEncontrado(c, h.ent.noEncontrado())
	}

	v, err := h.repo.Get(c.UserContext(), id)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener "+h.ent.plural, err)
	}
	return c.JSON(v)
}

func (h *crud[T, E]) Crear(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var e E
	if err := decodificar(c, &e); err != nil {
		return datosInvalidos(c)
	}

	v, errores := validacion.Creacion[T](h.val, e)

	// La clave la asigna el cliente: no puede repetirse
	if libre(errores, h.ent.campoClave) {
		existe, err := h.repo.Exists(ctx, h.clave(v))
		if err != nil {
			return fallo(c, h.log, h.ent.noEncontrado(), "Error al crear "+h.articulo(), err)
		}
		if existe {
			errores.Agregar(h.ent.campoClave, enUso(h.ent.campoClave))
		}
	}
	if h.referencias != nil {
		if err := h.referencias(ctx, v, e, nil, errores); err != nil {
			return fallo(c, h.log, h.ent.noEncontrado(), "Error al crear "+h.articulo(), err)
		}
	}
	if !errores.Vacio() {
		return validacionFallida(c, errores)
	}

	if err := h.repo.Create(ctx, v); err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al crear "+h.articulo(), err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *crud[T, E]) Actualizar(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, ok := parseID(c, "id")
	if !ok {
		return noEncontrado(c, h.ent.noEncontrado())
	}
	actual, err := h.repo.Get(ctx, id)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener "+h.ent.plural, err)
	}

	var e E
	if err := decodificar(c, &e); err != nil {
		return datosInvalidos(c)
	}

	anterior := actual
	v, errores := validacion.Actualizacion[T](h.val, e, actual)
	if h.referencias != nil {
		if err := h.referencias(ctx, v, e, &anterior, errores); err != nil {
			return fallo(c, h.log, h.ent.noEncontrado(), "Error al actualizar "+h.articulo(), err)
		}
	}
	if !errores.Vacio() {
		return validacionFallida(c, errores)
	}

	if err := h.repo.Update(ctx, v); err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al actualizar "+h.articulo(), err)
	}
	return c.JSON(v)
}

func (h *crud[T, E]) Eliminar(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return noEncontrado(c, h.ent.noEncontrado())
	}

	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al eliminar "+h.articulo(), err)
	}
	return c.JSON(fiber.Map{
		"message": h.ent.eliminado(),
	})
}

// articulo: "la persona", "el cliente"
func (h *crud[T, E]) articulo() string {
	if h.ent.femenino {
		return "la " + strings.ToLower(h.ent.nombre)
	}
	return "el " + strings.ToLower(h.ent.nombre)
}

// libre indica que el campo aún no tiene errores y vale la pena consultarlo en la base de datos
func libre(errores models.ErroresValidacion, campo string) bool {
	_, ya := errores[campo]
	return !ya
}

func enUso(campo string) string {
	return fmt.Sprintf("El valor del campo %s ya está en uso.", campo)
}

func seleccionInvalida(campo string) string {
	return fmt.Sprintf("El %s seleccionado no es válido.", campo)
}
