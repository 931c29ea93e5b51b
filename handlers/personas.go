package handlers

import (
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// PersonaHandler atiende /personas
type PersonaHandler struct {
	*crud[models.Persona, models.PersonaEntrada]
}

func NewPersonaHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *PersonaHandler {
	return &PersonaHandler{&crud[models.Persona, models.PersonaEntrada]{
		repo:  store.Personas,
		val:   val,
		log:   log,
		ent:   entidad{nombre: "Persona", plural: "personas", femenino: true, campoClave: "id_persona"},
		clave: func(p models.Persona) int { return p.IDPersona },
	}}
}
