package models

// Pedido representa la tabla pedidos
type Pedido struct {
	IDPedido       int     `json:"id_pedido" db:"id_pedido" validate:"gt=0,lte=2147483647"`
	Fecha          string  `json:"fecha" db:"fecha" validate:"required,datetime=2006-01-02"`
	IDCliente      int     `json:"id_cliente" db:"id_cliente" validate:"gt=0,lte=2147483647"`
	Total          float64 `json:"total" db:"total" validate:"gte=0,lt=100000000,decimales=2"`
	MetodoPago     string  `json:"metodo_pago" db:"metodo_pago" validate:"required,max=30"`
	EstadoPedido   string  `json:"estado_pedido" db:"estado_pedido" validate:"required,max=30"`
	DireccionEnvio string  `json:"direccion_envio" db:"direccion_envio" validate:"required,max=100"`
	CiudadEnvio    string  `json:"ciudad_envio" db:"ciudad_envio" validate:"required,max=50"`
	PaisEnvio      string  `json:"pais_envio" db:"pais_envio" validate:"required,max=50"`
	FechaEnvio     string  `json:"fecha_envio" db:"fecha_envio" validate:"required,datetime=2006-01-02"`
	Observaciones  *string `json:"observaciones" db:"observaciones"`
}

// PedidoEntrada es el cuerpo de POST y PUT /pedidos
type PedidoEntrada struct {
	IDPedido       Opcional[int]     `json:"id_pedido"`
	Fecha          Opcional[string]  `json:"fecha"`
	IDCliente      Opcional[int]     `json:"id_cliente"`
	Total          Opcional[float64] `json:"total"`
	MetodoPago     Opcional[string]  `json:"metodo_pago"`
	EstadoPedido   Opcional[string]  `json:"estado_pedido"`
	DireccionEnvio Opcional[string]  `json:"direccion_envio"`
	CiudadEnvio    Opcional[string]  `json:"ciudad_envio"`
	PaisEnvio      Opcional[string]  `json:"pais_envio"`
	FechaEnvio     Opcional[string]  `json:"fecha_envio"`
	Observaciones  Opcional[*string] `json:"observaciones"`
}

func (e PedidoEntrada) Campos() []Campo {
	return []Campo{
		clave("id_pedido", e.IDPedido),
		campo("fecha", TipoTexto, e.Fecha),
		campo("id_cliente", TipoEntero, e.IDCliente),
		campo("total", TipoNumero, e.Total),
		campo("metodo_pago", TipoTexto, e.MetodoPago),
		campo("estado_pedido", TipoTexto, e.EstadoPedido),
		campo("direccion_envio", TipoTexto, e.DireccionEnvio),
		campo("ciudad_envio", TipoTexto, e.CiudadEnvio),
		campo("pais_envio", TipoTexto, e.PaisEnvio),
		campo("fecha_envio", TipoTexto, e.FechaEnvio),
		nulable("observaciones", TipoTexto, e.Observaciones),
	}
}

func (e PedidoEntrada) Clave() Opcional[int] { return e.IDPedido }

func (e PedidoEntrada) Nueva() Pedido {
	p := Pedido{IDPedido: e.IDPedido.Valor}
	e.Aplicar(&p)
	return p
}

func (e PedidoEntrada) Aplicar(p *Pedido) {
	e.Fecha.Asignar(&p.Fecha)
	e.IDCliente.Asignar(&p.IDCliente)
	e.Total.Asignar(&p.Total)
	e.MetodoPago.Asignar(&p.MetodoPago)
	e.EstadoPedido.Asignar(&p.EstadoPedido)
	e.DireccionEnvio.Asignar(&p.DireccionEnvio)
	e.CiudadEnvio.Asignar(&p.CiudadEnvio)
	e.PaisEnvio.Asignar(&p.PaisEnvio)
	e.FechaEnvio.Asignar(&p.FechaEnvio)
	e.Observaciones.Asignar(&p.Observaciones)
}
