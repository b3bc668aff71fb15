package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"accountsvc/db"
	"accountsvc/models"
)

// ErrDuplicateEmail is returned by CreateUser when the unique constraint on
// email is violated.
var ErrDuplicateEmail = errors.New("email already exists")

const queryTimeout = 3 * time.Second

// UserStore defines the persistence operations on User rows.
//
// FindByEmail and FindByID return (nil, nil) when no row matches; an error
// always means a backend failure.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpgradePlan(ctx context.Context, id int64) error
}

// New returns the UserStore implementation matching the driver the database
// was opened with.
func New(d *sql.DB, driver string) UserStore {
	if driver == db.DriverPostgres {
		return &postgresStore{db: d}
	}
	return &sqliteStore{db: d}
}
