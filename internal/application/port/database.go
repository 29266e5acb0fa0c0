package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider opens the settings database on first use. Commands that
// never touch persisted settings never pay for opening it.
type DatabaseProvider interface {
	// DB returns the database connection, initializing it if necessary.
	DB(ctx context.Context) (*sql.DB, error)

	// Close closes the database connection if it was initialized.
	Close() error

	// IsInitialized returns true if the database has been initialized.
	IsInitialized() bool
}
