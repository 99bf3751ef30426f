package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"game-reports/configs"
	"game-reports/internal/querybuild"

	_ "github.com/SAP/go-hdb/driver"
	_ "github.com/denisenkom/go-mssqldb"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// Db is the process-wide connection pool together with the dialect the
// reports are rendered for.
type Db struct {
	*sqlx.DB
	Dialect querybuild.Dialect
}

// DriverName returns the database/sql driver registered for a dialect.
func DriverName(d querybuild.Dialect) string {
	switch d {
	case querybuild.MSSQL:
		return "sqlserver"
	case querybuild.HANA:
		return "hdb"
	default:
		return "postgres"
	}
}

// NewConnection opens the pool described by cfg and verifies it with a ping.
func NewConnection(cfg *configs.Config) (*Db, error) {
	dialect, err := querybuild.ParseDialect(cfg.DbConfig.Dialect)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(DriverName(dialect), cfg.DbConfig.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.DbConfig.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.DbConfig.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.DbConfig.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Db{DB: conn, Dialect: dialect}, nil
}

// Wrap adapts an already opened *sql.DB, e.g. a sqlmock handle in tests.
func Wrap(conn *sql.DB, dialect querybuild.Dialect) *Db {
	return &Db{
		DB:      sqlx.NewDb(conn, DriverName(dialect)),
		Dialect: dialect,
	}
}

// Ping checks that the pool can still reach the database.
func (db *Db) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.DB.PingContext(ctx)
}
