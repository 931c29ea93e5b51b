package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// PedidoHandler atiende /pedidos
type PedidoHandler struct {
	*crud[models.Pedido, models.PedidoEntrada]

	clientes repository.ClienteRepository
}

func NewPedidoHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *PedidoHandler {
	h := &PedidoHandler{clientes: store.Clientes}
	h.crud = &crud[models.Pedido, models.PedidoEntrada]{
		repo:        store.Pedidos,
		val:         val,
		log:         log,
		ent:         entidad{nombre: "Pedido", plural: "pedidos", campoClave: "id_pedido"},
		clave:       func(p models.Pedido) int { return p.IDPedido },
		referencias: h.verificar,
	}
	return h
}

// verificar: id_cliente debe existir
func (h *PedidoHandler) verificar(ctx context.Context, p models.Pedido, e models.PedidoEntrada, anterior *models.Pedido, errores models.ErroresValidacion) error {
	if anterior != nil && !e.IDCliente.Presente {
		return nil
	}
	if !libre(errores, "id_cliente") {
		return nil
	}

	existe, err := h.clientes.Exists(ctx, p.IDCliente)
	if err != nil {
		return err
	}
	if !existe {
		errores.Agregar("id_cliente", seleccionInvalida("id_cliente"))
	}
	return nil
}
