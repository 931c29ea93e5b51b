package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// CursoHandler atiende /cursos. El listado incluye estudiantes_count.
type CursoHandler struct {
	*crud[models.Curso, models.CursoEntrada]
}

func NewCursoHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *CursoHandler {
	return &CursoHandler{&crud[models.Curso, models.CursoEntrada]{
		repo:  store.Cursos,
		val:   val,
		log:   log,
		ent:   entidad{nombre: "Curso", plural: "cursos", campoClave: "id_curso"},
		clave: func(c models.Curso) int { return c.IDCurso },
		listar: func(ctx context.Context) (interface{}, error) {
			return store.Cursos.ListConConteo(ctx)
		},
	}}
}
