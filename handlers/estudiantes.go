package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// EstudianteHandler atiende /estudiantes y sus inscripciones en /estudiantes/:id/cursos
type EstudianteHandler struct {
	*crud[models.Estudiante, models.EstudianteEntrada]

	estudiantes repository.EstudianteRepository
	cursos      repository.CursoRepository
}

func NewEstudianteHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *EstudianteHandler {
	h := &EstudianteHandler{estudiantes: store.Estudiantes, cursos: store.Cursos}
	h.crud = &crud[models.Estudiante, models.EstudianteEntrada]{
		repo:  store.Estudiantes,
		val:   val,
		log:   log,
		ent:   entidad{nombre: "Estudiante", plural: "estudiantes", campoClave: "id_estudiante"},
		clave: func(e models.Estudiante) int { return e.IDEstudiante },
		listar: func(ctx context.Context) (interface{}, error) {
			return store.Estudiantes.ListConCursos(ctx)
		},
	}
	return h
}

// estudiante lee :id y confirma que el estudiante existe
func (h *EstudianteHandler) estudiante(c *fiber.Ctx) (int, bool, error) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, false, nil
	}
	existe, err := h.estudiantes.Exists(c.UserContext(), id)
	return id, existe, err
}

// Cursos lista los cursos en los que está inscrito el estudiante
func (h *EstudianteHandler) Cursos(c *fiber.Ctx) error {
	id, existe, err := h.estudiante(c)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener cursos", err)
	}
	if !existe {
		return noEncontrado(c, h.ent.noEncontrado())
	}

	cursos, err := h.estudiantes.CursosDe(c.UserContext(), id)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener cursos", err)
	}
	return c.JSON(cursos)
}

// Inscribir agrega el curso {id_curso} al estudiante
func (h *EstudianteHandler) Inscribir(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, existe, err := h.estudiante(c)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al inscribir al estudiante", err)
	}
	if !existe {
		return noEncontrado(c, h.ent.noEncontrado())
	}

	var entrada models.InscripcionEntrada
	if err := decodificar(c, &entrada); err != nil {
		return datosInvalidos(c)
	}

	errores := validacion.Campos([]models.Campo{{
		Nombre:   "id_curso",
		Tipo:     models.TipoEntero,
		Presente: entrada.IDCurso.Presente,
		Nulo:     entrada.IDCurso.Nulo,
		Invalido: entrada.IDCurso.Invalido,
	}}, true, true)

	idCurso := entrada.IDCurso.Valor
	if libre(errores, "id_curso") {
		hayCurso, err := h.cursos.Exists(ctx, idCurso)
		if err != nil {
			return fallo(c, h.log, h.ent.noEncontrado(), "Error al inscribir al estudiante", err)
		}
		if !hayCurso {
			errores.Agregar("id_curso", seleccionInvalida("id_curso"))
		}
	}
	if libre(errores, "id_curso") {
		inscrito, err := h.estudiantes.EstaInscrito(ctx, id, idCurso)
		if err != nil {
			return fallo(c, h.log, h.ent.noEncontrado(), "Error al inscribir al estudiante", err)
		}
		if inscrito {
			errores.Agregar("id_curso", "El estudiante ya está inscrito en este curso.")
		}
	}
	if !errores.Vacio() {
		return validacionFallida(c, errores)
	}

	if err := h.estudiantes.Inscribir(ctx, id, idCurso); err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al inscribir al estudiante", err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.EstudianteCurso{
		IDEstudiante: id,
		IDCurso:      idCurso,
	})
}

// Desinscribir quita el curso :id_curso del estudiante
func (h *EstudianteHandler) Desinscribir(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return noEncontrado(c, h.ent.noEncontrado())
	}
	idCurso, ok := parseID(c, "id_curso")
	if !ok {
		return noEncontrado(c, "Inscripción no encontrada")
	}

	if err := h.estudiantes.Desinscribir(c.UserContext(), id, idCurso); err != nil {
		return fallo(c, h.log, "Inscripción no encontrada", "Error al eliminar la inscripción", err)
	}
	return c.JSON(fiber.Map{
		"message": "Inscripción eliminada",
	})
}
