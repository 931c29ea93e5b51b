package models

// Tipos esperados en el cuerpo JSON, usados en los mensajes de validación
const (
	TipoEntero = "entero"
	TipoTexto  = "texto"
	TipoNumero = "numérico"
)

// Campo describe cómo llegó un campo en la petición
type Campo struct {
	Nombre   string
	Tipo     string
	Presente bool
	Nulo     bool
	Invalido bool
	Nulable  bool
	Clave    bool
}

// Entrada es el cuerpo de creación/actualización de una entidad T.
// Todos sus campos son Opcional; Aplicar solo escribe los presentes y nunca la clave primaria.
// Nueva construye la entidad completa, clave incluida.
type Entrada[T any] interface {
	Campos() []Campo
	Clave() Opcional[int]
	Nueva() T
	Aplicar(dst *T)
}

func campo[T any](nombre, tipo string, o Opcional[T]) Campo {
	return Campo{Nombre: nombre, Tipo: tipo, Presente: o.Presente, Nulo: o.Nulo, Invalido: o.Invalido}
}

func clave(nombre string, o Opcional[int]) Campo {
	c := campo(nombre, TipoEntero, o)
	c.Clave = true
	return c
}

func nulable[T any](nombre, tipo string, o Opcional[T]) Campo {
	c := campo(nombre, tipo, o)
	c.Nulable = true
	return c
}
