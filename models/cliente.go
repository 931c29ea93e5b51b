package models

// Cliente representa la tabla clientes; dueño 1:N de sus pedidos
type Cliente struct {
	IDCliente     int    `json:"id_cliente" db:"id_cliente" validate:"gt=0,lte=2147483647"`
	Nombre        string `json:"nombre" db:"nombre" validate:"required,max=50"`
	Apellido      string `json:"apellido" db:"apellido" validate:"required,max=50"`
	Correo        string `json:"correo" db:"correo" validate:"required,email,max=100"`
	Telefono      string `json:"telefono" db:"telefono" validate:"required,max=20"`
	Direccion     string `json:"direccion" db:"direccion" validate:"required,max=100"`
	Ciudad        string `json:"ciudad" db:"ciudad" validate:"required,max=50"`
	Pais          string `json:"pais" db:"pais" validate:"required,max=50"`
	FechaRegistro string `json:"fecha_registro" db:"fecha_registro" validate:"required,datetime=2006-01-02"`
	EstadoCuenta  string `json:"estado_cuenta" db:"estado_cuenta" validate:"required,max=20"`
	TipoCliente   string `json:"tipo_cliente" db:"tipo_cliente" validate:"required,max=30"`
}

// ClienteConPedidos es la forma del listado de clientes con sus pedidos precargados
type ClienteConPedidos struct {
	Cliente
	Pedidos []Pedido `json:"pedidos"`
}

// ClienteEntrada es el cuerpo de POST y PUT /clientes
type ClienteEntrada struct {
	IDCliente     Opcional[int]    `json:"id_cliente"`
	Nombre        Opcional[string] `json:"nombre"`
	Apellido      Opcional[string] `json:"apellido"`
	Correo        Opcional[string] `json:"correo"`
	Telefono      Opcional[string] `json:"telefono"`
	Direccion     Opcional[string] `json:"direccion"`
	Ciudad        Opcional[string] `json:"ciudad"`
	Pais          Opcional[string] `json:"pais"`
	FechaRegistro Opcional[string] `json:"fecha_registro"`
	EstadoCuenta  Opcional[string] `json:"estado_cuenta"`
	TipoCliente   Opcional[string] `json:"tipo_cliente"`
}

func (e ClienteEntrada) Campos() []Campo {
	return []Campo{
		clave("id_cliente", e.IDCliente),
		campo("nombre", TipoTexto, e.Nombre),
		campo("apellido", TipoTexto, e.Apellido),
		campo("correo", TipoTexto, e.Correo),
		campo("telefono", TipoTexto, e.Telefono),
		campo("direccion", TipoTexto, e.Direccion),
		campo("ciudad", TipoTexto, e.Ciudad),
		campo("pais", TipoTexto, e.Pais),
		campo("fecha_registro", TipoTexto, e.FechaRegistro),
		campo("estado_cuenta", TipoTexto, e.EstadoCuenta),
		campo("tipo_cliente", TipoTexto, e.TipoCliente),
	}
}

func (e ClienteEntrada) Clave() Opcional[int] { return e.IDCliente }

func (e ClienteEntrada) Nueva() Cliente {
	c := Cliente{IDCliente: e.IDCliente.Valor}
	e.Aplicar(&c)
	return c
}

func (e ClienteEntrada) Aplicar(c *Cliente) {
	e.Nombre.Asignar(&c.Nombre)
	e.Apellido.Asignar(&c.Apellido)
	e.Correo.Asignar(&c.Correo)
	e.Telefono.Asignar(&c.Telefono)
	e.Direccion.Asignar(&c.Direccion)
	e.Ciudad.Asignar(&c.Ciudad)
	e.Pais.Asignar(&c.Pais)
	e.FechaRegistro.Asignar(&c.FechaRegistro)
	e.EstadoCuenta.Asignar(&c.EstadoCuenta)
	e.TipoCliente.Asignar(&c.TipoCliente)
}
