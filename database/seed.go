package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/relaciones-backend/models"
)

// TenantSemilla es un tenant de ejemplo con su usuario y su primer post
type TenantSemilla struct {
	Tenant models.Tenant
	User   models.User
	Post   models.Post
}

// DatosSemilla son los datos de ejemplo de todas las tablas
type DatosSemilla struct {
	Personas      []models.Persona
	Pasaportes    []models.Pasaporte
	Clientes      []models.Cliente
	Pedidos       []models.Pedido
	Estudiantes   []models.Estudiante
	Cursos        []models.Curso
	Inscripciones []models.EstudianteCurso
	Tenants       []TenantSemilla
}

// PasswordSemilla es la contraseña de los usuarios de ejemplo
const PasswordSemilla = "password"

func texto(s string) *string { return &s }

// Semilla devuelve los datos de ejemplo; el SQL y el almacén en memoria cargan los mismos
func Semilla() DatosSemilla {
	pedido := func(id int, fecha string, cliente int, total float64, pago, estado, dir, ciudad, pais, envio string, obs *string) models.Pedido {
		return models.Pedido{
			IDPedido: id, Fecha: fecha, IDCliente: cliente, Total: total, MetodoPago: pago, EstadoPedido: estado,
			DireccionEnvio: dir, CiudadEnvio: ciudad, PaisEnvio: pais, FechaEnvio: envio, Observaciones: obs,
		}
	}
	const (
		dirA, ciudadA, paisA = "Calle 1 #123", "Ciudad A", "País X"
		dirB, ciudadB, paisB = "Avenida 2 #456", "Ciudad B", "País Y"
		dirC, ciudadC, paisC = "Boulevard 3 #789", "Ciudad C", "País Z"
	)

	return DatosSemilla{
		Personas: []models.Persona{
			{IDPersona: 1, Nombre: "Juan", ApellidoPaterno: "Pérez", ApellidoMaterno: "Gómez"},
			{IDPersona: 2, Nombre: "Ana", ApellidoPaterno: "López", ApellidoMaterno: "Martínez"},
			{IDPersona: 3, Nombre: "Luis", ApellidoPaterno: "Ramírez", ApellidoMaterno: "Sánchez"},
			{IDPersona: 4, Nombre: "María", ApellidoPaterno: "Torres", ApellidoMaterno: "Fernández"},
			{IDPersona: 5, Nombre: "Carlos", ApellidoPaterno: "García", ApellidoMaterno: "Ruiz"},
		},
		Pasaportes: []models.Pasaporte{
			{IDPasaporte: 101, Numero: "A123456", IDPersona: 1},
			{IDPasaporte: 102, Numero: "B234567", IDPersona: 2},
			{IDPasaporte: 103, Numero: "C345678", IDPersona: 3},
			{IDPasaporte: 104, Numero: "D456789", IDPersona: 4},
			{IDPasaporte: 105, Numero: "E567890", IDPersona: 5},
		},
		Clientes: []models.Cliente{
			{IDCliente: 1, Nombre: "Pedro", Apellido: "Ramírez", Correo: "pedro.ramirez@email.com", Telefono: "555-1234",
				Direccion: dirA, Ciudad: ciudadA, Pais: paisA, FechaRegistro: "2024-01-10", EstadoCuenta: "activo", TipoCliente: "regular"},
			{IDCliente: 2, Nombre: "Lucía", Apellido: "Gómez", Correo: "lucia.gomez@email.com", Telefono: "555-5678",
				Direccion: dirB, Ciudad: ciudadB, Pais: paisB, FechaRegistro: "2024-02-15", EstadoCuenta: "inactivo", TipoCliente: "premium"},
			{IDCliente: 3, Nombre: "Sofía", Apellido: "Martínez", Correo: "sofia.martinez@email.com", Telefono: "555-9999",
				Direccion: dirC, Ciudad: ciudadC, Pais: paisC, FechaRegistro: "2024-03-20", EstadoCuenta: "activo", TipoCliente: "vip"},
		},
		Pedidos: []models.Pedido{
			pedido(1001, "2024-03-01", 1, 150.75, "tarjeta", "enviado", dirA, ciudadA, paisA, "2024-03-02", texto("Entregar por la mañana")),
			pedido(1002, "2024-03-05", 2, 320.00, "efectivo", "pendiente", dirB, ciudadB, paisB, "2024-03-06", nil),
			pedido(1003, "2024-03-10", 3, 500.00, "transferencia", "en proceso", dirC, ciudadC, paisC, "2024-03-12", texto("Llamar antes de entregar")),
			pedido(1004, "2024-03-12", 1, 75.50, "tarjeta", "entregado", dirA, ciudadA, paisA, "2024-03-13", nil),
			pedido(1005, "2024-03-15", 2, 210.00, "efectivo", "enviado", dirB, ciudadB, paisB, "2024-03-16", texto("Dejar en portería")),
			pedido(1006, "2024-03-18", 3, 1200.00, "tarjeta", "pendiente", dirC, ciudadC, paisC, "2024-03-19", nil),
			pedido(1007, "2024-03-20", 1, 60.00, "efectivo", "en proceso", dirA, ciudadA, paisA, "2024-03-21", nil),
			pedido(1008, "2024-03-22", 2, 450.00, "transferencia", "enviado", dirB, ciudadB, paisB, "2024-03-23", texto("No llamar")),
			pedido(1009, "2024-03-25", 3, 300.00, "tarjeta", "entregado", dirC, ciudadC, paisC, "2024-03-26", nil),
			pedido(1010, "2024-03-28", 1, 80.00, "efectivo", "pendiente", dirA, ciudadA, paisA, "2024-03-29", texto("Entregar después de las 5pm")),
			pedido(1011, "2024-03-30", 3, 950.00, "transferencia", "enviado", dirC, ciudadC, paisC, "2024-03-31", texto("Urgente")),
			pedido(1012, "2024-04-01", 2, 110.00, "tarjeta", "en proceso", dirB, ciudadB, paisB, "2024-04-02", nil),
		},
		Estudiantes: []models.Estudiante{
			{IDEstudiante: 1, Nombre: "Miguel", Apellido: "Santos"},
			{IDEstudiante: 2, Nombre: "Laura", Apellido: "Mendoza"},
			{IDEstudiante: 3, Nombre: "Andrés", Apellido: "Vega"},
			{IDEstudiante: 4, Nombre: "Paula", Apellido: "Castro"},
			{IDEstudiante: 5, Nombre: "Jorge", Apellido: "Silva"},
			{IDEstudiante: 6, Nombre: "Valeria", Apellido: "Ríos"},
			{IDEstudiante: 7, Nombre: "Ricardo", Apellido: "Paredes"},
			{IDEstudiante: 8, Nombre: "Camila", Apellido: "Morales"},
			{IDEstudiante: 9, Nombre: "Santiago", Apellido: "Herrera"},
			{IDEstudiante: 10, Nombre: "Daniela", Apellido: "Navarro"},
		},
		Cursos: []models.Curso{
			{IDCurso: 1, Nombre: "Matemáticas"},
			{IDCurso: 2, Nombre: "Historia"},
			{IDCurso: 3, Nombre: "Biología"},
			{IDCurso: 4, Nombre: "Física"},
			{IDCurso: 5, Nombre: "Química"},
			{IDCurso: 6, Nombre: "Literatura"},
			{IDCurso: 7, Nombre: "Arte"},
			{IDCurso: 8, Nombre: "Educación Física"},
			{IDCurso: 9, Nombre: "Informática"},
			{IDCurso: 10, Nombre: "Geografía"},
		},
		Inscripciones: []models.EstudianteCurso{
			{IDEstudiante: 1, IDCurso: 1}, {IDEstudiante: 1, IDCurso: 2}, {IDEstudiante: 2, IDCurso: 3},
			{IDEstudiante: 3, IDCurso: 1}, {IDEstudiante: 4, IDCurso: 4}, {IDEstudiante: 5, IDCurso: 5},
			{IDEstudiante: 6, IDCurso: 6}, {IDEstudiante: 7, IDCurso: 7}, {IDEstudiante: 8, IDCurso: 8},
			{IDEstudiante: 9, IDCurso: 9}, {IDEstudiante: 2, IDCurso: 2}, {IDEstudiante: 3, IDCurso: 3},
			{IDEstudiante: 10, IDCurso: 10}, {IDEstudiante: 10, IDCurso: 1},
		},
		Tenants: []TenantSemilla{
			{
				Tenant: models.Tenant{Name: "Empresa A", Domain: "empresa-a.test", IsActive: true},
				User:   models.User{Name: "Usuario Empresa A", Email: "usuario@empresa-a.test"},
				Post: models.Post{
					Title:   "Primer post Empresa A",
					Content: "Este es el contenido del primer post de la Empresa A. Solo visible para tenant 1.",
				},
			},
			{
				Tenant: models.Tenant{Name: "Empresa B", Domain: "empresa-b.test", IsActive: true},
				User:   models.User{Name: "Usuario Empresa B", Email: "usuario@empresa-b.test"},
				Post: models.Post{
					Title:   "Primer post Empresa B",
					Content: "Este es el contenido del primer post de la Empresa B. Solo visible para tenant 2.",
				},
			},
		},
	}
}

// HashSemilla devuelve el hash bcrypt de PasswordSemilla
func HashSemilla() (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(PasswordSemilla), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error al hashear la contraseña: %w", err)
	}
	return string(hash), nil
}

// Seed carga los datos de ejemplo. No hace nada si personas ya tiene filas.
func (db *DB) Seed(ctx context.Context) error {
	var n int
	if err := db.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM personas").Scan(&n); err != nil {
		return fmt.Errorf("error al contar personas: %w", err)
	}
	if n > 0 {
		db.log.Info("Datos de ejemplo ya cargados, se omite el seed")
		return nil
	}

	hash, err := HashSemilla()
	if err != nil {
		return err
	}

	datos := Semilla()
	err = db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := db.seedGlobal(ctx, tx, datos); err != nil {
			return err
		}
		return db.seedTenants(ctx, tx, datos.Tenants, hash)
	})
	if err != nil {
		return err
	}
	db.log.Info("Datos de ejemplo cargados", zap.Int("tenants", len(datos.Tenants)))
	return nil
}

func (db *DB) insertar(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	if _, err := tx.ExecContext(ctx, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("error en seed: %w", err)
	}
	return nil
}

func (db *DB) seedGlobal(ctx context.Context, tx *sql.Tx, d DatosSemilla) error {
	for _, p := range d.Personas {
		if err := db.insertar(ctx, tx,
			"INSERT INTO personas (id_persona, nombre, apellido_paterno, apellido_materno) VALUES (?, ?, ?, ?)",
			p.IDPersona, p.Nombre, p.ApellidoPaterno, p.ApellidoMaterno); err != nil {
			return err
		}
	}
	for _, p := range d.Pasaportes {
		if err := db.insertar(ctx, tx,
			"INSERT INTO pasaportes (id_pasaporte, numero, id_persona) VALUES (?, ?, ?)",
			p.IDPasaporte, p.Numero, p.IDPersona); err != nil {
			return err
		}
	}
	for _, c := range d.Clientes {
		if err := db.insertar(ctx, tx,
			`INSERT INTO clientes (id_cliente, nombre, apellido, correo, telefono, direccion, ciudad, pais,
				fecha_registro, estado_cuenta, tipo_cliente) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.IDCliente, c.Nombre, c.Apellido, c.Correo, c.Telefono, c.Direccion, c.Ciudad, c.Pais,
			c.FechaRegistro, c.EstadoCuenta, c.TipoCliente); err != nil {
			return err
		}
	}
	for _, p := range d.Pedidos {
		if err := db.insertar(ctx, tx,
			`INSERT INTO pedidos (id_pedido, fecha, id_cliente, total, metodo_pago, estado_pedido, direccion_envio,
				ciudad_envio, pais_envio, fecha_envio, observaciones) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.IDPedido, p.Fecha, p.IDCliente, p.Total, p.MetodoPago, p.EstadoPedido, p.DireccionEnvio,
			p.CiudadEnvio, p.PaisEnvio, p.FechaEnvio, p.Observaciones); err != nil {
			return err
		}
	}
	for _, e := range d.Estudiantes {
		if err := db.insertar(ctx, tx,
			"INSERT INTO estudiantes (id_estudiante, nombre, apellido) VALUES (?, ?, ?)",
			e.IDEstudiante, e.Nombre, e.Apellido); err != nil {
			return err
		}
	}
	for _, c := range d.Cursos {
		if err := db.insertar(ctx, tx,
			"INSERT INTO cursos (id_curso, nombre) VALUES (?, ?)",
			c.IDCurso, c.Nombre); err != nil {
			return err
		}
	}
	for _, i := range d.Inscripciones {
		if err := db.insertar(ctx, tx,
			"INSERT INTO estudiante_curso (id_estudiante, id_curso) VALUES (?, ?)",
			i.IDEstudiante, i.IDCurso); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) seedTenants(ctx context.Context, tx *sql.Tx, tenants []TenantSemilla, hash string) error {
	for _, s := range tenants {
		tenantID, err := InsertID(ctx, db.Dialect, tx,
			"INSERT INTO tenants (name, domain, is_active) VALUES (?, ?, ?)", "id",
			s.Tenant.Name, s.Tenant.Domain, s.Tenant.IsActive)
		if err != nil {
			return fmt.Errorf("error al crear tenant %s: %w", s.Tenant.Domain, err)
		}

		userID, err := InsertID(ctx, db.Dialect, tx,
			"INSERT INTO users (name, email, password, tenant_id) VALUES (?, ?, ?, ?)", "id",
			s.User.Name, s.User.Email, hash, tenantID)
		if err != nil {
			return fmt.Errorf("error al crear usuario %s: %w", s.User.Email, err)
		}

		if err := db.insertar(ctx, tx,
			"INSERT INTO posts (title, content, user_id, tenant_id) VALUES (?, ?, ?, ?)",
			s.Post.Title, s.Post.Content, userID, tenantID); err != nil {
			return fmt.Errorf("error al crear post de %s: %w", s.Tenant.Domain, err)
		}
	}
	return nil
}
