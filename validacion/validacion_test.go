package validacion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizet96/relaciones-backend/models"
)

func decodificar[T any](t *testing.T, body string) T {
	t.Helper()
	var e T
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	return e
}

func TestCreacion_CamposFaltantes(t *testing.T) {
	val := New()
	e := decodificar[models.PersonaEntrada](t, `{"id_persona": 7, "nombre": "Juan"}`)

	_, errores := Creacion[models.Persona](val, e)

	assert.Len(t, errores, 2)
	assert.Equal(t, []string{"El campo apellido_paterno es obligatorio."}, errores["apellido_paterno"])
	assert.Equal(t, []string{"El campo apellido_materno es obligatorio."}, errores["apellido_materno"])
}

func TestCreacion_Valida(t *testing.T) {
	val := New()
	e := decodificar[models.PersonaEntrada](t, `{"id_persona": 7, "nombre": "Juan", "apellido_paterno": "Pérez", "apellido_materno": "Gómez"}`)

	p, errores := Creacion[models.Persona](val, e)

	assert.True(t, errores.Vacio())
	assert.Equal(t, models.Persona{IDPersona: 7, Nombre: "Juan", ApellidoPaterno: "Pérez", ApellidoMaterno: "Gómez"}, p)
}

func TestCreacion_TipoIncorrectoYFormato(t *testing.T) {
	val := New()
	e := decodificar[models.PedidoEntrada](t, `{
		"id_pedido": 1,
		"fecha": "01/03/2024",
		"id_cliente": "uno",
		"total": "150.75",
		"metodo_pago": "tarjeta",
		"estado_pedido": "enviado",
		"direccion_envio": "Calle 1",
		"ciudad_envio": "Ciudad A",
		"pais_envio": "País X",
		"fecha_envio": "2024-03-02"
	}`)

	_, errores := Creacion[models.Pedido](val, e)

	assert.Equal(t, []string{"El campo id_cliente debe ser de tipo entero."}, errores["id_cliente"])
	assert.Equal(t, []string{"El campo total debe ser de tipo numérico."}, errores["total"])
	assert.Contains(t, errores["fecha"][0], "AAAA-MM-DD")
	assert.NotContains(t, errores, "observaciones")
}

func TestCreacion_LongitudYCorreo(t *testing.T) {
	val := New()
	e := decodificar[models.ClienteEntrada](t, `{
		"id_cliente": 1,
		"nombre": "Pedro",
		"apellido": "Ramírez",
		"correo": "no-es-correo",
		"telefono": "555-1234-555-1234-555-1234",
		"direccion": "Calle 1",
		"ciudad": "Ciudad A",
		"pais": "País X",
		"fecha_registro": "2024-01-10",
		"estado_cuenta": "activo",
		"tipo_cliente": "regular"
	}`)

	_, errores := Creacion[models.Cliente](val, e)

	assert.Len(t, errores, 2)
	assert.Contains(t, errores, "correo")
	assert.Equal(t, []string{"El campo telefono no debe ser mayor que 20 caracteres."}, errores["telefono"])
}

func TestCreacion_ClaveNoPositiva(t *testing.T) {
	val := New()
	e := decodificar[models.CursoEntrada](t, `{"id_curso": 0, "nombre": "Arte"}`)

	_, errores := Creacion[models.Curso](val, e)

	assert.Equal(t, []string{"El campo id_curso debe ser mayor que 0."}, errores["id_curso"])
}

func TestActualizacion_SoloCamposPresentes(t *testing.T) {
	val := New()
	actual := models.Persona{IDPersona: 1, Nombre: "Juan", ApellidoPaterno: "Pérez", ApellidoMaterno: "Gómez"}
	e := decodificar[models.PersonaEntrada](t, `{"id_persona": 99, "nombre": "Juana"}`)

	p, errores := Actualizacion[models.Persona](val, e, actual)

	assert.True(t, errores.Vacio())
	assert.Equal(t, 1, p.IDPersona)
	assert.Equal(t, "Juana", p.Nombre)
	assert.Equal(t, "Pérez", p.ApellidoPaterno)
}

func TestActualizacion_ValorVacio(t *testing.T) {
	val := New()
	actual := models.Curso{IDCurso: 3, Nombre: "Biología"}
	e := decodificar[models.CursoEntrada](t, `{"nombre": ""}`)

	_, errores := Actualizacion[models.Curso](val, e, actual)

	assert.Equal(t, []string{"El campo nombre es obligatorio."}, errores["nombre"])
}

func TestActualizacion_ObservacionesNulas(t *testing.T) {
	val := New()
	obs := "Urgente"
	actual := models.Pedido{
		IDPedido: 1011, Fecha: "2024-03-30", IDCliente: 3, Total: 950, MetodoPago: "transferencia",
		EstadoPedido: "enviado", DireccionEnvio: "Boulevard 3", CiudadEnvio: "Ciudad C", PaisEnvio: "País Z",
		FechaEnvio: "2024-03-31", Observaciones: &obs,
	}
	e := decodificar[models.PedidoEntrada](t, `{"observaciones": null}`)

	p, errores := Actualizacion[models.Pedido](val, e, actual)

	assert.True(t, errores.Vacio())
	assert.Nil(t, p.Observaciones)
	assert.Equal(t, 950.0, p.Total)
}

func TestEstructura_Login(t *testing.T) {
	val := New()

	errores := val.Estructura(models.LoginRequest{Email: "x"}, nil)

	assert.Contains(t, errores, "email")
	assert.Equal(t, []string{"El campo password es obligatorio."}, errores["password"])
}

func TestCampos_NuloEnCampoObligatorio(t *testing.T) {
	e := decodificar[models.PedidoEntrada](t, `{"total": null, "observaciones": null}`)

	for _, requeridos := range []bool{true, false} {
		errores := Campos(e.Campos(), requeridos, false)
		assert.Equal(t, []string{"El campo total es obligatorio."}, errores["total"])
		assert.NotContains(t, errores, "observaciones")
	}
}

func TestEstructura_DecimalesYRangoDeClave(t *testing.T) {
	val := New()
	p := models.Pedido{
		IDPedido: 3000000000, Fecha: "2024-03-01", IDCliente: 1, Total: 1.005, MetodoPago: "tarjeta",
		EstadoPedido: "enviado", DireccionEnvio: "Calle 1", CiudadEnvio: "Ciudad A", PaisEnvio: "País X",
		FechaEnvio: "2024-03-02",
	}

	errores := val.Estructura(p, nil)
	assert.Equal(t, []string{"El campo id_pedido no debe ser mayor que 2147483647."}, errores["id_pedido"])
	assert.Equal(t, []string{"El campo total no debe tener más de 2 decimales."}, errores["total"])

	p.IDPedido, p.Total = 1, 99.9
	assert.True(t, val.Estructura(p, nil).Vacio())
}
