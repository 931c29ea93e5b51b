package repository

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/lizet96/relaciones-backend/database"
	"github.com/lizet96/relaciones-backend/models"
)

// memoria guarda todas las tablas bajo un mismo candado para poder revisar
// claves foráneas entre ellas igual que lo haría la base de datos
type memoria struct {
	mu sync.RWMutex

	personas      map[int]models.Persona
	pasaportes    map[int]models.Pasaporte
	clientes      map[int]models.Cliente
	pedidos       map[int]models.Pedido
	estudiantes   map[int]models.Estudiante
	cursos        map[int]models.Curso
	inscripciones map[models.EstudianteCurso]struct{}

	tenants map[int64]models.Tenant
	users   map[int64]models.User
	posts   map[int64]models.Post
	sigID   int64

	ahora func() time.Time
}

// NewMemoryStore arma un Store en memoria. Con semilla != nil carga los datos de ejemplo;
// passwordHash es el hash bcrypt asignado a los usuarios de la semilla.
func NewMemoryStore(semilla *database.DatosSemilla, passwordHash string) *Store {
	m := &memoria{
		personas:      map[int]models.Persona{},
		pasaportes:    map[int]models.Pasaporte{},
		clientes:      map[int]models.Cliente{},
		pedidos:       map[int]models.Pedido{},
		estudiantes:   map[int]models.Estudiante{},
		cursos:        map[int]models.Curso{},
		inscripciones: map[models.EstudianteCurso]struct{}{},
		tenants:       map[int64]models.Tenant{},
		users:         map[int64]models.User{},
		posts:         map[int64]models.Post{},
		ahora:         func() time.Time { return time.Now().UTC() },
	}
	if semilla != nil {
		m.cargar(*semilla, passwordHash)
	}

	return &Store{
		Personas:    &memPersonas{m},
		Pasaportes:  &memPasaportes{m},
		Clientes:    &memClientes{m},
		Pedidos:     &memPedidos{m},
		Estudiantes: &memEstudiantes{m},
		Cursos:      &memCursos{m},
		Tenants:     &memTenants{m},
		Users:       &memUsers{m},
		Posts:       &memPosts{m},
		Reportes:    &memReportes{m},
		Ping:        func(context.Context) error { return nil },
	}
}

func (m *memoria) cargar(d database.DatosSemilla, hash string) {
	for _, p := range d.Personas {
		m.personas[p.IDPersona] = p
	}
	for _, p := range d.Pasaportes {
		m.pasaportes[p.IDPasaporte] = p
	}
	for _, c := range d.Clientes {
		m.clientes[c.IDCliente] = c
	}
	for _, p := range d.Pedidos {
		m.pedidos[p.IDPedido] = p
	}
	for _, e := range d.Estudiantes {
		m.estudiantes[e.IDEstudiante] = e
	}
	for _, c := range d.Cursos {
		m.cursos[c.IDCurso] = c
	}
	for _, i := range d.Inscripciones {
		m.inscripciones[i] = struct{}{}
	}

	// la semilla queda en el pasado para que los posts nuevos salgan primero
	base := m.ahora().Add(-time.Duration(len(d.Tenants)) * time.Second)
	for i, s := range d.Tenants {
		creado := base.Add(time.Duration(i) * time.Second)

		t := s.Tenant
		t.ID = m.siguiente()
		t.CreatedAt, t.UpdatedAt = creado, creado
		m.tenants[t.ID] = t

		u := s.User
		u.ID = m.siguiente()
		u.TenantID = t.ID
		u.Password = hash
		u.CreatedAt, u.UpdatedAt = creado, creado
		m.users[u.ID] = u

		p := s.Post
		p.ID = m.siguiente()
		p.UserID, p.TenantID = u.ID, t.ID
		p.CreatedAt, p.UpdatedAt = creado, creado
		m.posts[p.ID] = p
	}
}

func (m *memoria) siguiente() int64 {
	m.sigID++
	return m.sigID
}

func ordenados[K cmp.Ordered, V any](tabla map[K]V) []V {
	out := make([]V, 0, len(tabla))
	for _, k := range slices.Sorted(maps.Keys(tabla)) {
		out = append(out, tabla[k])
	}
	return out
}

// tabla implementa CRUD[T] sobre un mapa de memoria; las reglas de integridad
// de cada entidad se pasan como funciones que corren con el candado tomado
type tabla[T any] struct {
	m     *memoria
	filas func() map[int]T
	clave func(T) int
	// verificar revisa claves foráneas y unicidad antes de escribir
	verificar func(v T) error
	// alBorrar revisa referencias entrantes y aplica cascadas
	alBorrar func(id int) error
}

func (t tabla[T]) List(_ context.Context) ([]T, error) {
	t.m.mu.RLock()
	defer t.m.mu.RUnlock()
	return ordenados(t.filas()), nil
}

func (t tabla[T]) Get(_ context.Context, id int) (T, error) {
	t.m.mu.RLock()
	defer t.m.mu.RUnlock()
	v, ok := t.filas()[id]
	if !ok {
		return v, models.ErrNoEncontrado
	}
	return v, nil
}

func (t tabla[T]) Exists(_ context.Context, id int) (bool, error) {
	t.m.mu.RLock()
	defer t.m.mu.RUnlock()
	_, ok := t.filas()[id]
	return ok, nil
}

func (t tabla[T]) Create(_ context.Context, v T) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	filas := t.filas()
	if _, ok := filas[t.clave(v)]; ok {
		return models.ErrConflicto
	}
	if t.verificar != nil {
		if err := t.verificar(v); err != nil {
			return err
		}
	}
	filas[t.clave(v)] = v
	return nil
}

func (t tabla[T]) Update(_ context.Context, v T) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	filas := t.filas()
	if _, ok := filas[t.clave(v)]; !ok {
		return models.ErrNoEncontrado
	}
	if t.verificar != nil {
		if err := t.verificar(v); err != nil {
			return err
		}
	}
	filas[t.clave(v)] = v
	return nil
}

func (t tabla[T]) Delete(_ context.Context, id int) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	filas := t.filas()
	if _, ok := filas[id]; !ok {
		return models.ErrNoEncontrado
	}
	if t.alBorrar != nil {
		if err := t.alBorrar(id); err != nil {
			return err
		}
	}
	delete(filas, id)
	return nil
}

type memPersonas struct{ m *memoria }

func (r *memPersonas) tabla() tabla[models.Persona] {
	return tabla[models.Persona]{
		m:     r.m,
		filas: func() map[int]models.Persona { return r.m.personas },
		clave: func(p models.Persona) int { return p.IDPersona },
		alBorrar: func(id int) error {
			for _, p := range r.m.pasaportes {
				if p.IDPersona == id {
					return models.ErrConflicto
				}
			}
			return nil
		},
	}
}

func (r *memPersonas) List(ctx context.Context) ([]models.Persona, error) { return r.tabla().List(ctx) }
func (r *memPersonas) Get(ctx context.Context, id int) (models.Persona, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memPersonas) Exists(ctx context.Context, id int) (bool, error) { return r.tabla().Exists(ctx, id) }
func (r *memPersonas) Create(ctx context.Context, p models.Persona) error {
	return r.tabla().Create(ctx, p)
}
func (r *memPersonas) Update(ctx context.Context, p models.Persona) error {
	return r.tabla().Update(ctx, p)
}
func (r *memPersonas) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memPasaportes struct{ m *memoria }

func (r *memPasaportes) tabla() tabla[models.Pasaporte] {
	return tabla[models.Pasaporte]{
		m:     r.m,
		filas: func() map[int]models.Pasaporte { return r.m.pasaportes },
		clave: func(p models.Pasaporte) int { return p.IDPasaporte },
		verificar: func(p models.Pasaporte) error {
			if _, ok := r.m.personas[p.IDPersona]; !ok {
				return models.ErrConflicto
			}
			if r.tienePasaporte(p.IDPersona, p.IDPasaporte) {
				return models.ErrConflicto
			}
			return nil
		},
	}
}

func (r *memPasaportes) tienePasaporte(idPersona, exceptoID int) bool {
	for _, p := range r.m.pasaportes {
		if p.IDPersona == idPersona && p.IDPasaporte != exceptoID {
			return true
		}
	}
	return false
}

func (r *memPasaportes) PersonaTienePasaporte(_ context.Context, idPersona, exceptoID int) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.tienePasaporte(idPersona, exceptoID), nil
}

func (r *memPasaportes) List(ctx context.Context) ([]models.Pasaporte, error) {
	return r.tabla().List(ctx)
}
func (r *memPasaportes) Get(ctx context.Context, id int) (models.Pasaporte, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memPasaportes) Exists(ctx context.Context, id int) (bool, error) {
	return r.tabla().Exists(ctx, id)
}
func (r *memPasaportes) Create(ctx context.Context, p models.Pasaporte) error {
	return r.tabla().Create(ctx, p)
}
func (r *memPasaportes) Update(ctx context.Context, p models.Pasaporte) error {
	return r.tabla().Update(ctx, p)
}
func (r *memPasaportes) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memClientes struct{ m *memoria }

func (r *memClientes) tabla() tabla[models.Cliente] {
	return tabla[models.Cliente]{
		m:     r.m,
		filas: func() map[int]models.Cliente { return r.m.clientes },
		clave: func(c models.Cliente) int { return c.IDCliente },
		alBorrar: func(id int) error {
			for _, p := range r.m.pedidos {
				if p.IDCliente == id {
					return models.ErrConflicto
				}
			}
			return nil
		},
	}
}

func (r *memClientes) ListConPedidos(_ context.Context) ([]models.ClienteConPedidos, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return agruparPedidos(ordenados(r.m.clientes), ordenados(r.m.pedidos)), nil
}

func (r *memClientes) List(ctx context.Context) ([]models.Cliente, error) { return r.tabla().List(ctx) }
func (r *memClientes) Get(ctx context.Context, id int) (models.Cliente, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memClientes) Exists(ctx context.Context, id int) (bool, error) { return r.tabla().Exists(ctx, id) }
func (r *memClientes) Create(ctx context.Context, c models.Cliente) error {
	return r.tabla().Create(ctx, c)
}
func (r *memClientes) Update(ctx context.Context, c models.Cliente) error {
	return r.tabla().Update(ctx, c)
}
func (r *memClientes) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memPedidos struct{ m *memoria }

func (r *memPedidos) tabla() tabla[models.Pedido] {
	return tabla[models.Pedido]{
		m:     r.m,
		filas: func() map[int]models.Pedido { return r.m.pedidos },
		clave: func(p models.Pedido) int { return p.IDPedido },
		verificar: func(p models.Pedido) error {
			if _, ok := r.m.clientes[p.IDCliente]; !ok {
				return models.ErrConflicto
			}
			return nil
		},
	}
}

func (r *memPedidos) ListPorClientes(_ context.Context, ids []int) ([]models.Pedido, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	pedidos := []models.Pedido{}
	for _, p := range ordenados(r.m.pedidos) {
		if slices.Contains(ids, p.IDCliente) {
			pedidos = append(pedidos, p)
		}
	}
	return pedidos, nil
}

func (r *memPedidos) List(ctx context.Context) ([]models.Pedido, error) { return r.tabla().List(ctx) }
func (r *memPedidos) Get(ctx context.Context, id int) (models.Pedido, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memPedidos) Exists(ctx context.Context, id int) (bool, error) { return r.tabla().Exists(ctx, id) }
func (r *memPedidos) Create(ctx context.Context, p models.Pedido) error {
	return r.tabla().Create(ctx, p)
}
func (r *memPedidos) Update(ctx context.Context, p models.Pedido) error {
	return r.tabla().Update(ctx, p)
}
func (r *memPedidos) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memEstudiantes struct{ m *memoria }

func (r *memEstudiantes) tabla() tabla[models.Estudiante] {
	return tabla[models.Estudiante]{
		m:     r.m,
		filas: func() map[int]models.Estudiante { return r.m.estudiantes },
		clave: func(e models.Estudiante) int { return e.IDEstudiante },
		alBorrar: func(id int) error {
			for i := range r.m.inscripciones {
				if i.IDEstudiante == id {
					delete(r.m.inscripciones, i)
				}
			}
			return nil
		},
	}
}

func (r *memEstudiantes) cursosDe(id int) []models.Curso {
	cursos := []models.Curso{}
	for i := range r.m.inscripciones {
		if i.IDEstudiante == id {
			cursos = append(cursos, r.m.cursos[i.IDCurso])
		}
	}
	sort.Slice(cursos, func(a, b int) bool { return cursos[a].IDCurso < cursos[b].IDCurso })
	return cursos
}

func (r *memEstudiantes) ListConCursos(_ context.Context) ([]models.EstudianteConCursos, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	estudiantes := ordenados(r.m.estudiantes)
	out := make([]models.EstudianteConCursos, len(estudiantes))
	for i, e := range estudiantes {
		out[i] = models.EstudianteConCursos{Estudiante: e, Cursos: r.cursosDe(e.IDEstudiante)}
	}
	return out, nil
}

func (r *memEstudiantes) CursosDe(_ context.Context, idEstudiante int) ([]models.Curso, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.cursosDe(idEstudiante), nil
}

func (r *memEstudiantes) EstaInscrito(_ context.Context, idEstudiante, idCurso int) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	_, ok := r.m.inscripciones[models.EstudianteCurso{IDEstudiante: idEstudiante, IDCurso: idCurso}]
	return ok, nil
}

func (r *memEstudiantes) Inscribir(_ context.Context, idEstudiante, idCurso int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	par := models.EstudianteCurso{IDEstudiante: idEstudiante, IDCurso: idCurso}
	_, okE := r.m.estudiantes[idEstudiante]
	_, okC := r.m.cursos[idCurso]
	if _, dup := r.m.inscripciones[par]; dup || !okE || !okC {
		return models.ErrConflicto
	}
	r.m.inscripciones[par] = struct{}{}
	return nil
}

func (r *memEstudiantes) Desinscribir(_ context.Context, idEstudiante, idCurso int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	par := models.EstudianteCurso{IDEstudiante: idEstudiante, IDCurso: idCurso}
	if _, ok := r.m.inscripciones[par]; !ok {
		return models.ErrNoEncontrado
	}
	delete(r.m.inscripciones, par)
	return nil
}

func (r *memEstudiantes) List(ctx context.Context) ([]models.Estudiante, error) {
	return r.tabla().List(ctx)
}
func (r *memEstudiantes) Get(ctx context.Context, id int) (models.Estudiante, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memEstudiantes) Exists(ctx context.Context, id int) (bool, error) {
	return r.tabla().Exists(ctx, id)
}
func (r *memEstudiantes) Create(ctx context.Context, e models.Estudiante) error {
	return r.tabla().Create(ctx, e)
}
func (r *memEstudiantes) Update(ctx context.Context, e models.Estudiante) error {
	return r.tabla().Update(ctx, e)
}
func (r *memEstudiantes) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memCursos struct{ m *memoria }

func (r *memCursos) tabla() tabla[models.Curso] {
	return tabla[models.Curso]{
		m:     r.m,
		filas: func() map[int]models.Curso { return r.m.cursos },
		clave: func(c models.Curso) int { return c.IDCurso },
		alBorrar: func(id int) error {
			for i := range r.m.inscripciones {
				if i.IDCurso == id {
					delete(r.m.inscripciones, i)
				}
			}
			return nil
		},
	}
}

func (r *memCursos) conteo(id int) int {
	n := 0
	for i := range r.m.inscripciones {
		if i.IDCurso == id {
			n++
		}
	}
	return n
}

func (r *memCursos) ListConConteo(_ context.Context) ([]models.CursoConConteo, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	cursos := ordenados(r.m.cursos)
	out := make([]models.CursoConConteo, len(cursos))
	for i, c := range cursos {
		out[i] = models.CursoConConteo{Curso: c, EstudiantesCount: r.conteo(c.IDCurso)}
	}
	return out, nil
}

func (r *memCursos) List(ctx context.Context) ([]models.Curso, error) { return r.tabla().List(ctx) }
func (r *memCursos) Get(ctx context.Context, id int) (models.Curso, error) {
	return r.tabla().Get(ctx, id)
}
func (r *memCursos) Exists(ctx context.Context, id int) (bool, error) { return r.tabla().Exists(ctx, id) }
func (r *memCursos) Create(ctx context.Context, c models.Curso) error {
	return r.tabla().Create(ctx, c)
}
func (r *memCursos) Update(ctx context.Context, c models.Curso) error {
	return r.tabla().Update(ctx, c)
}
func (r *memCursos) Delete(ctx context.Context, id int) error { return r.tabla().Delete(ctx, id) }

type memTenants struct{ m *memoria }

func (r *memTenants) List(_ context.Context) ([]models.Tenant, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return ordenados(r.m.tenants), nil
}

func (r *memTenants) GetByDomain(_ context.Context, domain string) (models.Tenant, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, t := range r.m.tenants {
		if t.Domain == domain {
			return t, nil
		}
	}
	return models.Tenant{}, models.ErrNoEncontrado
}

type memUsers struct{ m *memoria }

func (r *memUsers) Get(_ context.Context, id int64) (models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[id]
	if !ok {
		return u, models.ErrNoEncontrado
	}
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, tenantID int64, email string) (models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNoEncontrado
}

type memPosts struct{ m *memoria }

func (r *memPosts) visibles(tenantID *int64) []models.Post {
	posts := []models.Post{}
	for _, p := range r.m.posts {
		if tenantID == nil || p.TenantID == *tenantID {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(a, b int) bool {
		if !posts[a].CreatedAt.Equal(posts[b].CreatedAt) {
			return posts[a].CreatedAt.After(posts[b].CreatedAt)
		}
		return posts[a].ID > posts[b].ID
	})
	return posts
}

func (r *memPosts) ListDetalle(_ context.Context, tenantID *int64) ([]models.PostDetalle, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	posts := r.visibles(tenantID)
	out := make([]models.PostDetalle, len(posts))
	for i, p := range posts {
		out[i] = models.PostDetalle{Post: p, User: r.m.users[p.UserID].Publico(), Tenant: r.m.tenants[p.TenantID]}
	}
	return out, nil
}

func (r *memPosts) Count(_ context.Context, tenantID *int64) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return len(r.visibles(tenantID)), nil
}

func (r *memPosts) TenantIDs(_ context.Context, tenantID *int64) ([]int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	vistos := map[int64]struct{}{}
	for _, p := range r.visibles(tenantID) {
		vistos[p.TenantID] = struct{}{}
	}
	return slices.Sorted(maps.Keys(vistos)), nil
}

func (r *memPosts) Create(_ context.Context, p *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[p.UserID]; !ok {
		return models.ErrConflicto
	}
	if _, ok := r.m.tenants[p.TenantID]; !ok {
		return models.ErrConflicto
	}
	now := r.m.ahora()
	p.ID = r.m.siguiente()
	p.CreatedAt, p.UpdatedAt = now, now
	r.m.posts[p.ID] = *p
	return nil
}

type memReportes struct{ m *memoria }

func (r *memReportes) Clientes(_ context.Context) ([]models.ReporteCliente, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	filas := []models.ReporteCliente{}
	for _, c := range ordenados(r.m.clientes) {
		f := models.ReporteCliente{IDCliente: c.IDCliente, Nombre: c.Nombre, Apellido: c.Apellido}
		for _, p := range r.m.pedidos {
			if p.IDCliente == c.IDCliente {
				f.TotalPedidos++
				f.MontoTotal += p.Total
			}
		}
		filas = append(filas, f)
	}
	return filas, nil
}

func (r *memReportes) Cursos(_ context.Context) ([]models.ReporteCurso, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	cursos := &memCursos{r.m}
	filas := []models.ReporteCurso{}
	for _, c := range ordenados(r.m.cursos) {
		filas = append(filas, models.ReporteCurso{IDCurso: c.IDCurso, Nombre: c.Nombre, TotalEstudiantes: cursos.conteo(c.IDCurso)})
	}
	return filas, nil
}
