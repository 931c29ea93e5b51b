package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsCursos(t *testing.T, cursos []interface{}) []int {
	t.Helper()
	ids := make([]int, len(cursos))
	for i, c := range cursos {
		ids[i] = int(c.(map[string]interface{})["id_curso"].(float64))
	}
	return ids
}

func TestEstudiantes_ListarConCursos(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "GET", "/estudiantes", "")
	require.Equal(t, 200, r.status)

	estudiantes := r.lista(t)
	require.Len(t, estudiantes, 10)
	primero := estudiantes[0].(map[string]interface{})
	assert.Equal(t, "Miguel", primero["nombre"])
	assert.Equal(t, []int{1, 2}, idsCursos(t, primero["cursos"].([]interface{})))
}

func TestEstudiantes_Inscribir(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "POST", "/estudiantes/1/cursos", `{"id_curso": 3}`)
	require.Equal(t, 201, r.status, string(r.body))
	inscripcion := r.objeto(t)
	assert.EqualValues(t, 1, inscripcion["id_estudiante"])
	assert.EqualValues(t, 3, inscripcion["id_curso"])

	r = e.pedir(t, "GET", "/estudiantes/1/cursos", "")
	require.Equal(t, 200, r.status)
	assert.Equal(t, []int{1, 2, 3}, idsCursos(t, r.lista(t)))
}

func TestEstudiantes_InscripcionDuplicada(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "POST", "/estudiantes/1/cursos", `{"id_curso": 1}`)
	require.Equal(t, 422, r.status)
	assert.Equal(t, []string{"El estudiante ya está inscrito en este curso."}, r.errores(t)["id_curso"])
}

func TestEstudiantes_InscripcionInvalida(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "POST", "/estudiantes/1/cursos", `{"id_curso": 99}`)
	require.Equal(t, 422, r.status)
	assert.Equal(t, []string{"El id_curso seleccionado no es válido."}, r.errores(t)["id_curso"])

	r = e.pedir(t, "POST", "/estudiantes/1/cursos", `{}`)
	require.Equal(t, 422, r.status)
	assert.Equal(t, []string{"El campo id_curso es obligatorio."}, r.errores(t)["id_curso"])

	r = e.pedir(t, "POST", "/estudiantes/1/cursos", `{"id_curso": "uno"}`)
	require.Equal(t, 422, r.status)
	assert.Equal(t, []string{"El campo id_curso debe ser de tipo entero."}, r.errores(t)["id_curso"])

	r = e.pedir(t, "POST", "/estudiantes/99/cursos", `{"id_curso": 1}`)
	assert.Equal(t, 404, r.status)
	assert.Equal(t, "Estudiante no encontrado", r.objeto(t)["error"])
}

func TestEstudiantes_Desinscribir(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "DELETE", "/estudiantes/1/cursos/1", "")
	require.Equal(t, 200, r.status)
	assert.Equal(t, "Inscripción eliminada", r.objeto(t)["message"])

	r = e.pedir(t, "DELETE", "/estudiantes/1/cursos/1", "")
	assert.Equal(t, 404, r.status)
	assert.Equal(t, "Inscripción no encontrada", r.objeto(t)["error"])

	r = e.pedir(t, "GET", "/estudiantes/1/cursos", "")
	assert.Equal(t, []int{2}, idsCursos(t, r.lista(t)))
}

func TestEstudiantes_EliminarBorraInscripciones(t *testing.T) {
	e := nuevoEntorno(t, false)

	r := e.pedir(t, "DELETE", "/estudiantes/10", "")
	require.Equal(t, 200, r.status)
	assert.Equal(t, "Estudiante eliminado", r.objeto(t)["message"])

	cursos := e.pedir(t, "GET", "/cursos", "").lista(t)
	assert.EqualValues(t, 2, cursos[0].(map[string]interface{})["estudiantes_count"])
	assert.EqualValues(t, 0, cursos[9].(map[string]interface{})["estudiantes_count"])

	assert.Equal(t, 404, e.pedir(t, "GET", "/estudiantes/10/cursos", "").status)
}
