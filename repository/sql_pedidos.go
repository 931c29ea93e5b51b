package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLPedidoRepository struct {
	db *database.DB
}

func NewSQLPedidoRepository(db *database.DB) *SQLPedidoRepository {
	return &SQLPedidoRepository{db: db}
}

const columnasPedido = `id_pedido, fecha, id_cliente, total, metodo_pago, estado_pedido, direccion_envio,
	ciudad_envio, pais_envio, fecha_envio, observaciones`

func escanearPedido(s escaner) (models.Pedido, error) {
	var p models.Pedido
	err := s.Scan(&p.IDPedido, fecha{&p.Fecha}, &p.IDCliente, &p.Total, &p.MetodoPago, &p.EstadoPedido,
		&p.DireccionEnvio, &p.CiudadEnvio, &p.PaisEnvio, fecha{&p.FechaEnvio}, &p.Observaciones)
	return p, err
}

func (r *SQLPedidoRepository) consultar(ctx context.Context, query string, args ...any) ([]models.Pedido, error) {
	rows, err := r.db.SQL.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener pedidos: %w", err)
	}
	defer rows.Close()

	pedidos := []models.Pedido{}
	for rows.Next() {
		p, err := escanearPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	return pedidos, rows.Err()
}

func (r *SQLPedidoRepository) List(ctx context.Context) ([]models.Pedido, error) {
	return r.consultar(ctx, "SELECT "+columnasPedido+" FROM pedidos ORDER BY id_pedido")
}

func (r *SQLPedidoRepository) ListPorClientes(ctx context.Context, ids []int) ([]models.Pedido, error) {
	if len(ids) == 0 {
		return []models.Pedido{}, nil
	}
	return r.consultar(ctx,
		"SELECT "+columnasPedido+" FROM pedidos WHERE id_cliente IN ("+database.In(len(ids))+") ORDER BY id_pedido",
		enteros(ids)...)
}

func (r *SQLPedidoRepository) Get(ctx context.Context, id int) (models.Pedido, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasPedido+" FROM pedidos WHERE id_pedido = ?"), id)
	p, err := escanearPedido(row)
	return p, noEncontrado(err)
}

func (r *SQLPedidoRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM pedidos WHERE id_pedido = ?)", id)
}

func (r *SQLPedidoRepository) Create(ctx context.Context, p models.Pedido) error {
	return insertar(ctx, r.db,
		"INSERT INTO pedidos ("+columnasPedido+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.IDPedido, p.Fecha, p.IDCliente, p.Total, p.MetodoPago, p.EstadoPedido, p.DireccionEnvio,
		p.CiudadEnvio, p.PaisEnvio, p.FechaEnvio, p.Observaciones)
}

func (r *SQLPedidoRepository) Update(ctx context.Context, p models.Pedido) error {
	return modificar(ctx, r.db,
		`UPDATE pedidos SET fecha = ?, id_cliente = ?, total = ?, metodo_pago = ?, estado_pedido = ?,
			direccion_envio = ?, ciudad_envio = ?, pais_envio = ?, fecha_envio = ?, observaciones = ?
			WHERE id_pedido = ?`,
		p.Fecha, p.IDCliente, p.Total, p.MetodoPago, p.EstadoPedido, p.DireccionEnvio,
		p.CiudadEnvio, p.PaisEnvio, p.FechaEnvio, p.Observaciones, p.IDPedido)
}

func (r *SQLPedidoRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM pedidos WHERE id_pedido = ?", id)
}
