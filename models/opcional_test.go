package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcional_Decodificacion(t *testing.T) {
	var e PedidoEntrada
	require.NoError(t, json.Unmarshal([]byte(`{"total": "mucho", "observaciones": null, "fecha": "2024-03-01"}`), &e))

	assert.True(t, e.Total.Presente)
	assert.True(t, e.Total.Invalido)
	assert.True(t, e.Observaciones.Presente)
	assert.Nil(t, e.Observaciones.Valor)
	assert.True(t, e.Fecha.Presente)
	assert.False(t, e.Fecha.Invalido)
	assert.False(t, e.MetodoPago.Presente)
}

func TestOpcional_Asignar(t *testing.T) {
	p := Pedido{Total: 10, MetodoPago: "efectivo"}

	PedidoEntrada{Total: Opcional[float64]{Presente: true, Invalido: true}}.Aplicar(&p)
	assert.Equal(t, 10.0, p.Total)

	PedidoEntrada{Total: Con(25.5)}.Aplicar(&p)
	assert.Equal(t, 25.5, p.Total)
	assert.Equal(t, "efectivo", p.MetodoPago)
}

func TestNueva_ConservaClave(t *testing.T) {
	e := PasaporteEntrada{IDPasaporte: Con(101), Numero: Con("A123456"), IDPersona: Con(1)}

	assert.Equal(t, Pasaporte{IDPasaporte: 101, Numero: "A123456", IDPersona: 1}, e.Nueva())
}

func TestErroresValidacion(t *testing.T) {
	errores := ErroresValidacion{}
	assert.NoError(t, errores.Err())

	errores.Agregar("numero", "El campo numero es obligatorio.")
	errores.Agregar("id_persona", "El id_persona seleccionado no es válido.")

	require.Error(t, errores.Err())
	assert.Equal(t, "id_persona: El id_persona seleccionado no es válido.; numero: El campo numero es obligatorio.", errores.Error())
}

func TestOpcional_Nulo(t *testing.T) {
	var e PedidoEntrada
	require.NoError(t, json.Unmarshal([]byte(`{"total": null, "fecha": "2024-03-01"}`), &e))

	assert.True(t, e.Total.Presente)
	assert.True(t, e.Total.Nulo)
	assert.False(t, e.Total.Invalido)
	assert.False(t, e.Fecha.Nulo)

	campos := e.Campos()
	assert.True(t, campos[3].Nulo)
}
