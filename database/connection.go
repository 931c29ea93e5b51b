package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/config"
)

// DB agrupa la conexión abierta y el dialecto con el que se escriben las consultas
type DB struct {
	SQL     *sql.DB
	Dialect Dialect

	pool *pgxpool.Pool
	log  *zap.Logger
}

// New envuelve una conexión ya abierta (p. ej. sqlmock en pruebas)
func New(db *sql.DB, d Dialect) *DB {
	return &DB{SQL: db, Dialect: d, log: zap.NewNop()}
}

// ConnectDB establece la conexión con la base de datos según DB_DRIVER
func ConnectDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*DB, error) {
	d, err := DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL no está definida")
	}

	db := &DB{Dialect: d, log: log}
	if d == PostgreSQL {
		err = db.connectPostgres(ctx, cfg)
	} else {
		err = db.connectMySQL(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Probar si la base de datos está viva haciendo una consulta rápida
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := db.SQL.QueryRowContext(pingCtx, "SELECT version()").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("error al probar la conexión: %w", err)
	}

	log.Info("Conectado exitosamente a la base de datos",
		zap.String("driver", d.Name()),
		zap.String("version", version),
	)
	return db, nil
}

func (db *DB) connectPostgres(ctx context.Context, cfg *config.Config) error {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error al parsear la URL de la base de datos: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = time.Minute * 30
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("error al crear el pool de conexiones: %w", err)
	}
	db.pool = pool
	db.SQL = stdlib.OpenDBFromPool(pool)
	return nil
}

func (db *DB) connectMySQL(cfg *config.Config) error {
	myCfg, err := mysql.ParseDSN(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error al parsear el DSN de MySQL: %w", err)
	}
	// DATE y TIMESTAMP llegan como time.Time
	myCfg.ParseTime = true
	// UPDATE reporta filas encontradas, no solo las modificadas
	myCfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(myCfg)
	if err != nil {
		return fmt.Errorf("error al crear el conector de MySQL: %w", err)
	}
	db.SQL = sql.OpenDB(connector)
	db.SQL.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SQL.SetMaxIdleConns(cfg.Database.MinConns)
	db.SQL.SetConnMaxLifetime(time.Hour)
	db.SQL.SetConnMaxIdleTime(time.Minute * 30)
	return nil
}

// Ping verifica la conexión; lo usa /health
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Rebind adapta los parámetros de la consulta al dialecto de la conexión
func (db *DB) Rebind(query string) string {
	return Rebind(db.Dialect, query)
}

// Transaction ejecuta fn dentro de una transacción; si fn falla se revierte
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar la transacción: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Close cierra la conexión y el pool
func (db *DB) Close() {
	if db == nil || db.SQL == nil {
		return
	}
	_ = db.SQL.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	if db.log != nil {
		db.log.Info("Pool de conexiones cerrado")
	}
}
