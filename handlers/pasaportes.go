package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// PasaporteHandler atiende /pasaportes
type PasaporteHandler struct {
	*crud[models.Pasaporte, models.PasaporteEntrada]

	personas   repository.PersonaRepository
	pasaportes repository.PasaporteRepository
}

func NewPasaporteHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *PasaporteHandler {
	h := &PasaporteHandler{personas: store.Personas, pasaportes: store.Pasaportes}
	h.crud = &crud[models.Pasaporte, models.PasaporteEntrada]{
		repo:        store.Pasaportes,
		val:         val,
		log:         log,
		ent:         entidad{nombre: "Pasaporte", plural: "pasaportes", campoClave: "id_pasaporte"},
		clave:       func(p models.Pasaporte) int { return p.IDPasaporte },
		referencias: h.verificar,
	}
	return h
}

// verificar: id_persona debe existir y no tener ya otro pasaporte
func (h *PasaporteHandler) verificar(ctx context.Context, p models.Pasaporte, e models.PasaporteEntrada, anterior *models.Pasaporte, errores models.ErroresValidacion) error {
	if anterior != nil && !e.IDPersona.Presente {
		return nil
	}
	if !libre(errores, "id_persona") {
		return nil
	}

	excepto := 0
	if anterior != nil {
		excepto = anterior.IDPasaporte
	}
	tiene, err := h.pasaportes.PersonaTienePasaporte(ctx, p.IDPersona, excepto)
	if err != nil {
		return err
	}
	if tiene {
		errores.Agregar("id_persona", enUso("id_persona"))
	}

	existe, err := h.personas.Exists(ctx, p.IDPersona)
	if err != nil {
		return err
	}
	if !existe {
		errores.Agregar("id_persona", seleccionInvalida("id_persona"))
	}
	return nil
}
