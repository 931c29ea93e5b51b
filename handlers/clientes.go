package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
	"github.com/lizet96/relaciones-backend/validacion"
)

// ClienteHandler atiende /clientes. El listado incluye los pedidos de cada cliente.
type ClienteHandler struct {
	*crud[models.Cliente, models.ClienteEntrada]

	clientes repository.ClienteRepository
	pedidos  repository.PedidoRepository
}

func NewClienteHandler(store *repository.Store, val *validacion.Validador, log *zap.Logger) *ClienteHandler {
	h := &ClienteHandler{clientes: store.Clientes, pedidos: store.Pedidos}
	h.crud = &crud[models.Cliente, models.ClienteEntrada]{
		repo:  store.Clientes,
		val:   val,
		log:   log,
		ent:   entidad{nombre: "Cliente", plural: "clientes", campoClave: "id_cliente"},
		clave: func(c models.Cliente) int { return c.IDCliente },
		listar: func(ctx context.Context) (interface{}, error) {
			return store.Clientes.ListConPedidos(ctx)
		},
	}
	return h
}

// Pedidos lista los pedidos de un cliente
func (h *ClienteHandler) Pedidos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, ok := parseID(c, "id")
	if !ok {
		return noEncontrado(c, h.ent.noEncontrado())
	}
	existe, err := h.clientes.Exists(ctx, id)
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener pedidos", err)
	}
	if !existe {
		return noEncontrado(c, h.ent.noEncontrado())
	}

	pedidos, err := h.pedidos.ListPorClientes(ctx, []int{id})
	if err != nil {
		return fallo(c, h.log, h.ent.noEncontrado(), "Error al obtener pedidos", err)
	}
	return c.JSON(pedidos)
}
