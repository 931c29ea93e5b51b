package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

type SQLClienteRepository struct {
	db      *database.DB
	pedidos *SQLPedidoRepository
}

func NewSQLClienteRepository(db *database.DB) *SQLClienteRepository {
	return &SQLClienteRepository{db: db, pedidos: NewSQLPedidoRepository(db)}
}

const columnasCliente = `id_cliente, nombre, apellido, correo, telefono, direccion, ciudad, pais,
	fecha_registro, estado_cuenta, tipo_cliente`

type escaner interface {
	Scan(dest ...any) error
}

func escanearCliente(s escaner) (models.Cliente, error) {
	var c models.Cliente
	err := s.Scan(&c.IDCliente, &c.Nombre, &c.Apellido, &c.Correo, &c.Telefono, &c.Direccion,
		&c.Ciudad, &c.Pais, fecha{&c.FechaRegistro}, &c.EstadoCuenta, &c.TipoCliente)
	return c, err
}

func (r *SQLClienteRepository) List(ctx context.Context) ([]models.Cliente, error) {
	rows, err := r.db.SQL.QueryContext(ctx, "SELECT "+columnasCliente+" FROM clientes ORDER BY id_cliente")
	if err != nil {
		return nil, fmt.Errorf("error al obtener clientes: %w", err)
	}
	defer rows.Close()

	clientes := []models.Cliente{}
	for rows.Next() {
		c, err := escanearCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear cliente: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, rows.Err()
}

// ListConPedidos carga los pedidos de todos los clientes en una sola consulta IN
func (r *SQLClienteRepository) ListConPedidos(ctx context.Context) ([]models.ClienteConPedidos, error) {
	clientes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clientes) == 0 {
		return []models.ClienteConPedidos{}, nil
	}

	ids := make([]int, len(clientes))
	for i, c := range clientes {
		ids[i] = c.IDCliente
	}
	pedidos, err := r.pedidos.ListPorClientes(ctx, ids)
	if err != nil {
		return nil, err
	}
	return agruparPedidos(clientes, pedidos), nil
}

func agruparPedidos(clientes []models.Cliente, pedidos []models.Pedido) []models.ClienteConPedidos {
	porCliente := make(map[int][]models.Pedido, len(clientes))
	for _, p := range pedidos {
		porCliente[p.IDCliente] = append(porCliente[p.IDCliente], p)
	}
	out := make([]models.ClienteConPedidos, len(clientes))
	for i, c := range clientes {
		ps := porCliente[c.IDCliente]
		if ps == nil {
			ps = []models.Pedido{}
		}
		out[i] = models.ClienteConPedidos{Cliente: c, Pedidos: ps}
	}
	return out
}

func (r *SQLClienteRepository) Get(ctx context.Context, id int) (models.Cliente, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+columnasCliente+" FROM clientes WHERE id_cliente = ?"), id)
	c, err := escanearCliente(row)
	return c, noEncontrado(err)
}

func (r *SQLClienteRepository) Exists(ctx context.Context, id int) (bool, error) {
	return existe(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM clientes WHERE id_cliente = ?)", id)
}

func (r *SQLClienteRepository) Create(ctx context.Context, c models.Cliente) error {
	return insertar(ctx, r.db,
		"INSERT INTO clientes ("+columnasCliente+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		c.IDCliente, c.Nombre, c.Apellido, c.Correo, c.Telefono, c.Direccion, c.Ciudad, c.Pais,
		c.FechaRegistro, c.EstadoCuenta, c.TipoCliente)
}

func (r *SQLClienteRepository) Update(ctx context.Context, c models.Cliente) error {
	return modificar(ctx, r.db,
		`UPDATE clientes SET nombre = ?, apellido = ?, correo = ?, telefono = ?, direccion = ?, ciudad = ?,
			pais = ?, fecha_registro = ?, estado_cuenta = ?, tipo_cliente = ? WHERE id_cliente = ?`,
		c.Nombre, c.Apellido, c.Correo, c.Telefono, c.Direccion, c.Ciudad, c.Pais,
		c.FechaRegistro, c.EstadoCuenta, c.TipoCliente, c.IDCliente)
}

func (r *SQLClienteRepository) Delete(ctx context.Context, id int) error {
	return modificar(ctx, r.db, "DELETE FROM clientes WHERE id_cliente = ?", id)
}
