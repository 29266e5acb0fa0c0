package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/logging"
)

// LazyDB implements port.DatabaseProvider, opening the database on first
// access. Read-only commands such as `pageflip devices` never open it.
type LazyDB struct {
	dbPath string
	once   sync.Once
	mu     sync.RWMutex
	db     *sql.DB
	err    error
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening settings database")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("settings database unavailable")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		err := l.db.Close()
		l.db = nil
		return err
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
