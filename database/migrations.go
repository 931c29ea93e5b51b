package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// tipos que cambian entre motores
type tiposDDL struct {
	autoID    string
	timestamp string
	boolean   string
	text      string
	engine    string
}

func tiposPara(d Dialect) tiposDDL {
	if d == MySQL {
		return tiposDDL{
			autoID:    "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
			timestamp: "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP",
			boolean:   "TINYINT(1) NOT NULL DEFAULT 1",
			text:      "TEXT",
			engine:    " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		}
	}
	return tiposDDL{
		autoID:    "BIGSERIAL PRIMARY KEY",
		timestamp: "TIMESTAMPTZ NOT NULL DEFAULT NOW()",
		boolean:   "BOOLEAN NOT NULL DEFAULT TRUE",
		text:      "TEXT",
	}
}

// esquema devuelve el DDL de todas las tablas en orden de dependencia
func esquema(d Dialect) []string {
	t := tiposPara(d)
	q := d.Quote
	return []string{
		// uno a uno
		`CREATE TABLE IF NOT EXISTS personas (
			id_persona INTEGER NOT NULL PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL,
			apellido_paterno VARCHAR(50) NOT NULL,
			apellido_materno VARCHAR(50) NOT NULL
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS pasaportes (
			id_pasaporte INTEGER NOT NULL PRIMARY KEY,
			numero VARCHAR(20) NOT NULL,
			id_persona INTEGER NOT NULL UNIQUE,
			CONSTRAINT fk_pasaportes_persona FOREIGN KEY (id_persona) REFERENCES personas (id_persona)
		)` + t.engine,

		// uno a muchos
		`CREATE TABLE IF NOT EXISTS clientes (
			id_cliente INTEGER NOT NULL PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL,
			apellido VARCHAR(50) NOT NULL,
			correo VARCHAR(100) NOT NULL,
			telefono VARCHAR(20) NOT NULL,
			direccion VARCHAR(100) NOT NULL,
			ciudad VARCHAR(50) NOT NULL,
			pais VARCHAR(50) NOT NULL,
			fecha_registro DATE NOT NULL,
			estado_cuenta VARCHAR(20) NOT NULL,
			tipo_cliente VARCHAR(30) NOT NULL
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS pedidos (
			id_pedido INTEGER NOT NULL PRIMARY KEY,
			fecha DATE NOT NULL,
			id_cliente INTEGER NOT NULL,
			total DECIMAL(10,2) NOT NULL,
			metodo_pago VARCHAR(30) NOT NULL,
			estado_pedido VARCHAR(30) NOT NULL,
			direccion_envio VARCHAR(100) NOT NULL,
			ciudad_envio VARCHAR(50) NOT NULL,
			pais_envio VARCHAR(50) NOT NULL,
			fecha_envio DATE NOT NULL,
			observaciones ` + t.text + ` NULL,
			CONSTRAINT fk_pedidos_cliente FOREIGN KEY (id_cliente) REFERENCES clientes (id_cliente)
		)` + t.engine,

		// muchos a muchos
		`CREATE TABLE IF NOT EXISTS estudiantes (
			id_estudiante INTEGER NOT NULL PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL,
			apellido VARCHAR(50) NOT NULL
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS cursos (
			id_curso INTEGER NOT NULL PRIMARY KEY,
			nombre VARCHAR(50) NOT NULL
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS estudiante_curso (
			id_estudiante INTEGER NOT NULL,
			id_curso INTEGER NOT NULL,
			PRIMARY KEY (id_estudiante, id_curso),
			CONSTRAINT fk_estudiante_curso_estudiante FOREIGN KEY (id_estudiante) REFERENCES estudiantes (id_estudiante) ON DELETE CASCADE,
			CONSTRAINT fk_estudiante_curso_curso FOREIGN KEY (id_curso) REFERENCES cursos (id_curso) ON DELETE CASCADE
		)` + t.engine,

		// tenants
		`CREATE TABLE IF NOT EXISTS tenants (
			id ` + t.autoID + `,
			name VARCHAR(255) NOT NULL,
			domain VARCHAR(255) NOT NULL UNIQUE,
			` + q("database") + ` VARCHAR(255) NULL,
			is_active ` + t.boolean + `,
			created_at ` + t.timestamp + `,
			updated_at ` + t.timestamp + `
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS users (
			id ` + t.autoID + `,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			tenant_id BIGINT NOT NULL,
			created_at ` + t.timestamp + `,
			updated_at ` + t.timestamp + `,
			CONSTRAINT uq_users_tenant_email UNIQUE (tenant_id, email),
			CONSTRAINT fk_users_tenant FOREIGN KEY (tenant_id) REFERENCES tenants (id) ON DELETE CASCADE
		)` + t.engine,
		`CREATE TABLE IF NOT EXISTS posts (
			id ` + t.autoID + `,
			title VARCHAR(255) NOT NULL,
			content ` + t.text + ` NOT NULL,
			user_id BIGINT NOT NULL,
			tenant_id BIGINT NOT NULL,
			created_at ` + t.timestamp + `,
			updated_at ` + t.timestamp + `,
			CONSTRAINT fk_posts_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
			CONSTRAINT fk_posts_tenant FOREIGN KEY (tenant_id) REFERENCES tenants (id) ON DELETE CASCADE
		)` + t.engine,
	}
}

// Migrate crea las tablas que falten. Es idempotente.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range esquema(db.Dialect) {
		if _, err := db.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error al migrar %q: %w", tabla(stmt), err)
		}
	}
	db.log.Info("Migraciones aplicadas", zap.String("driver", db.Dialect.Name()))
	return nil
}

func tabla(stmt string) string {
	const prefijo = "CREATE TABLE IF NOT EXISTS "
	i := strings.Index(stmt, prefijo)
	if i < 0 {
		return ""
	}
	resto := stmt[i+len(prefijo):]
	if j := strings.IndexAny(resto, " ("); j >= 0 {
		return resto[:j]
	}
	return resto
}
