package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"accountsvc/config"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the configured backend: the SQLite file by default, or
// Postgres when DATABASE_URL is set. Returns the handle and the driver name.
func Open(cfg config.Config) (*sql.DB, string, error) {
	if cfg.DatabaseURL != "" {
		d, err := sql.Open(DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, "", err
		}
		if err := d.Ping(); err != nil {
			_ = d.Close()
			return nil, "", err
		}
		return d, DriverPostgres, nil
	}
	return OpenSQLite(cfg.DBPath)
}

// OpenSQLite opens (or creates) a local SQLite database file.
func OpenSQLite(path string) (*sql.DB, string, error) {
	if path == "" {
		path = "accounts.db"
	}
	d, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, "", err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, "", err
	}
	// journal_mode is unsupported for in-memory databases; ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, "", err
	}
	return d, DriverSQLite, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	plan TEXT NOT NULL DEFAULT 'FREE',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	plan TEXT NOT NULL DEFAULT 'FREE',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureSchema creates the users table if it does not exist. It never alters
// an existing table.
func EnsureSchema(d *sql.DB, driver string) error {
	schema := sqliteSchema
	if driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := d.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
