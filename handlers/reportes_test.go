package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportes_ClientesJSON(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "GET", "/reportes/clientes", "")
	require.Equal(t, 200, r.status)

	reporte := r.objeto(t)["reporte"].(map[string]interface{})
	filas := reporte["filas"].([]interface{})
	require.Len(t, filas, 3)

	primero := filas[0].(map[string]interface{})
	assert.EqualValues(t, 1, primero["id_cliente"])
	assert.EqualValues(t, 4, primero["total_pedidos"])
	assert.InDelta(t, 366.25, primero["monto_total"], 0.001)
	assert.NotEmpty(t, reporte["fecha_generacion"])
}

func TestReportes_CursosExcel(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "GET", "/reportes/cursos?formato=xlsx", "")
	require.Equal(t, 200, r.status)
	assert.Equal(t, tipoXLSX, r.header("Content-Type"))
	assert.Contains(t, r.header("Content-Disposition"), "reporte-cursos-")

	f, err := excelize.OpenReader(bytes.NewReader(r.body))
	require.NoError(t, err)
	defer f.Close()

	filas, err := f.GetRows("Cursos")
	require.NoError(t, err)
	require.Len(t, filas, 11)
	assert.Equal(t, []string{"ID Curso", "Nombre", "Total Estudiantes"}, filas[0])
	assert.Equal(t, []string{"1", "Matemáticas", "3"}, filas[1])
}
