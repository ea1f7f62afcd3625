// Package database is the persistence collaborator: a thin connect/disconnect
// capability over database/sql, registered as a Singleton provider and driven
// by the "database.connect" loader unit, which binds the live handle back
// into the container.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/km-arc/go-foundation/framework/config"
)

// Conn wraps an open *sql.DB with its driver name.
type Conn struct {
	*sql.DB
	driver string
}

// Driver returns the driver the connection was opened with.
func (c *Conn) Driver() string { return c.driver }

// Close releases the underlying pool.
func (c *Conn) Close() error { return c.DB.Close() }

// DSN builds the driver-specific data source name for cfg.
func DSN(cfg config.DBConfig) (string, error) {
	switch cfg.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database), nil
	case "sqlite3":
		return cfg.Database, nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
}

// Connect opens a connection for cfg and verifies it with a ping. The caller
// owns the returned handle and is responsible for Close on shutdown.
func Connect(ctx context.Context, cfg config.DBConfig) (*Conn, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: opening %s: %w", cfg.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: pinging %s: %w", cfg.Driver, err)
	}

	return &Conn{DB: db, driver: cfg.Driver}, nil
}
