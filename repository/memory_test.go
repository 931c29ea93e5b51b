package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

func nuevoStoreSemilla(t *testing.T) *Store {
	t.Helper()
	semilla := database.Semilla()
	return NewMemoryStore(&semilla, "hash")
}

func TestMemoria_ClaveDuplicada(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	err := store.Personas.Create(ctx, models.Persona{IDPersona: 1, Nombre: "Otro", ApellidoPaterno: "X", ApellidoMaterno: "Y"})

	assert.ErrorIs(t, err, models.ErrConflicto)
}

func TestMemoria_PasaporteUnicoPorPersona(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	err := store.Pasaportes.Create(ctx, models.Pasaporte{IDPasaporte: 200, Numero: "Z1", IDPersona: 1})
	assert.ErrorIs(t, err, models.ErrConflicto)

	require.NoError(t, store.Personas.Create(ctx, models.Persona{IDPersona: 6, Nombre: "Rosa", ApellidoPaterno: "Díaz", ApellidoMaterno: "Mora"}))
	require.NoError(t, store.Pasaportes.Create(ctx, models.Pasaporte{IDPasaporte: 200, Numero: "Z1", IDPersona: 6}))

	tiene, err := store.Pasaportes.PersonaTienePasaporte(ctx, 6, 200)
	require.NoError(t, err)
	assert.False(t, tiene)
}

func TestMemoria_BorrarPersonaConPasaporte(t *testing.T) {
	store := nuevoStoreSemilla(t)

	err := store.Personas.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, models.ErrConflicto)
}

func TestMemoria_ClientesConPedidos(t *testing.T) {
	store := nuevoStoreSemilla(t)

	out, err := store.Clientes.ListConPedidos(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Len(t, out[0].Pedidos, 4)
	assert.Equal(t, 1001, out[0].Pedidos[0].IDPedido)
}

func TestMemoria_BorrarEstudianteQuitaInscripciones(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	require.NoError(t, store.Estudiantes.Delete(ctx, 1))

	cursos, err := store.Cursos.ListConConteo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cursos[0].EstudiantesCount) // Matemáticas: 3 y 10
	assert.Equal(t, 1, cursos[1].EstudiantesCount) // Historia: 2
}

func TestMemoria_Inscripciones(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Estudiantes.Inscribir(ctx, 1, 1), models.ErrConflicto)
	require.NoError(t, store.Estudiantes.Inscribir(ctx, 1, 9))

	cursos, err := store.Estudiantes.CursosDe(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cursos, 3)

	require.NoError(t, store.Estudiantes.Desinscribir(ctx, 1, 9))
	assert.ErrorIs(t, store.Estudiantes.Desinscribir(ctx, 1, 9), models.ErrNoEncontrado)
}

func TestMemoria_PostsPorTenant(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	tenant, err := store.Tenants.GetByDomain(ctx, "empresa-a.test")
	require.NoError(t, err)

	posts, err := store.Posts.ListDetalle(ctx, &tenant.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Primer post Empresa A", posts[0].Title)
	assert.Equal(t, "usuario@empresa-a.test", posts[0].User.Email)

	todos, err := store.Posts.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, todos)

	ids, err := store.Posts.TenantIDs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestMemoria_PostsMasRecientesPrimero(t *testing.T) {
	store := nuevoStoreSemilla(t)
	ctx := context.Background()

	tenant, err := store.Tenants.GetByDomain(ctx, "empresa-b.test")
	require.NoError(t, err)
	user, err := store.Users.GetByEmail(ctx, tenant.ID, "usuario@empresa-b.test")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)

	nuevo := &models.Post{Title: "Segundo", Content: "Más reciente", UserID: user.ID, TenantID: tenant.ID}
	require.NoError(t, store.Posts.Create(ctx, nuevo))

	posts, err := store.Posts.ListDetalle(ctx, &tenant.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Segundo", posts[0].Title)
}

func TestMemoria_Reportes(t *testing.T) {
	store := nuevoStoreSemilla(t)

	filas, err := store.Reportes.Clientes(context.Background())
	require.NoError(t, err)
	require.Len(t, filas, 3)
	assert.Equal(t, 4, filas[0].TotalPedidos)
	assert.InDelta(t, 366.25, filas[0].MontoTotal, 0.001)

	cursos, err := store.Reportes.Cursos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cursos[0].TotalEstudiantes)
}
