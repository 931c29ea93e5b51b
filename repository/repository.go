package repository

import (
	"context"

	"github.com/lizet96/relaciones-backend/models"
)

// CRUD es el acceso básico a una tabla con clave entera asignada por el cliente
type CRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	// Get devuelve models.ErrNoEncontrado si no existe la fila
	Get(ctx context.Context, id int) (T, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, v T) error
	// Update reemplaza todas las columnas; models.ErrNoEncontrado si no existe
	Update(ctx context.Context, v T) error
	// Delete devuelve models.ErrNoEncontrado si no existe la fila
	Delete(ctx context.Context, id int) error
}

type PersonaRepository interface {
	CRUD[models.Persona]
}

type PasaporteRepository interface {
	CRUD[models.Pasaporte]
	// PersonaTienePasaporte ignora el pasaporte exceptoID (0 para no ignorar ninguno)
	PersonaTienePasaporte(ctx context.Context, idPersona, exceptoID int) (bool, error)
}

type ClienteRepository interface {
	CRUD[models.Cliente]
	ListConPedidos(ctx context.Context) ([]models.ClienteConPedidos, error)
}

type PedidoRepository interface {
	CRUD[models.Pedido]
	ListPorClientes(ctx context.Context, ids []int) ([]models.Pedido, error)
}

type EstudianteRepository interface {
	CRUD[models.Estudiante]
	ListConCursos(ctx context.Context) ([]models.EstudianteConCursos, error)
	CursosDe(ctx context.Context, idEstudiante int) ([]models.Curso, error)
	EstaInscrito(ctx context.Context, idEstudiante, idCurso int) (bool, error)
	Inscribir(ctx context.Context, idEstudiante, idCurso int) error
	// Desinscribir devuelve models.ErrNoEncontrado si el par no existe
	Desinscribir(ctx context.Context, idEstudiante, idCurso int) error
}

type CursoRepository interface {
	CRUD[models.Curso]
	ListConConteo(ctx context.Context) ([]models.CursoConConteo, error)
}

type TenantRepository interface {
	List(ctx context.Context) ([]models.Tenant, error)
	GetByDomain(ctx context.Context, domain string) (models.Tenant, error)
}

type UserRepository interface {
	Get(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, tenantID int64, email string) (models.User, error)
}

// PostRepository recibe tenantID nil para consultar sin filtro de tenant
type PostRepository interface {
	ListDetalle(ctx context.Context, tenantID *int64) ([]models.PostDetalle, error)
	Count(ctx context.Context, tenantID *int64) (int, error)
	TenantIDs(ctx context.Context, tenantID *int64) ([]int64, error)
	Create(ctx context.Context, p *models.Post) error
}

type ReporteRepository interface {
	Clientes(ctx context.Context) ([]models.ReporteCliente, error)
	Cursos(ctx context.Context) ([]models.ReporteCurso, error)
}

// Store reúne los repositorios que usan los handlers
type Store struct {
	Personas    PersonaRepository
	Pasaportes  PasaporteRepository
	Clientes    ClienteRepository
	Pedidos     PedidoRepository
	Estudiantes EstudianteRepository
	Cursos      CursoRepository
	Tenants     TenantRepository
	Users       UserRepository
	Posts       PostRepository
	Reportes    ReporteRepository

	// Ping verifica el almacenamiento para /health
	Ping func(ctx context.Context) error
}
