package sqlite_test

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/infrastructure/persistence/sqlite"
)

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	lazy := sqlite.NewLazyDB(dbPath)

	assert.False(t, lazy.IsInitialized(), "LazyDB should not be initialized before DB() is called")
}

func TestLazyDB_InitializesOnFirstAccess(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	lazy := sqlite.NewLazyDB(dbPath)

	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	require.NotNil(t, db)

	assert.True(t, lazy.IsInitialized(), "LazyDB should be initialized after DB() is called")

	// Cleanup
	require.NoError(t, lazy.Close())
}

func TestLazyDB_ReturnsSameConnection(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	lazy := sqlite.NewLazyDB(dbPath)

	db1, err := lazy.DB(ctx)
	require.NoError(t, err)

	db2, err := lazy.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, db1, db2, "DB() should return the same connection instance")

	require.NoError(t, lazy.Close())
}

func TestLazyDB_ConcurrentAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "settings.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 10
	var wg sync.WaitGroup
	dbs := make([]*sql.DB, goroutines)
	errs := make([]error, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dbs[i], errs[i] = lazy.DB(ctx)
		}()
	}
	wg.Wait()

	for i := range goroutines {
		require.NoError(t, errs[i])
		assert.Same(t, dbs[0], dbs[i])
	}
}

func TestLazyDB_ReportsOpenFailure(t *testing.T) {
	lazy := sqlite.NewLazyDB("")

	_, err := lazy.DB(testCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database initialization failed")
	assert.False(t, lazy.IsInitialized())
}

func TestLazyDB_CloseBeforeInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	lazy := sqlite.NewLazyDB(dbPath)

	// Close without ever calling DB() should not error
	err := lazy.Close()
	assert.NoError(t, err)
}

func TestLazyDB_Path(t *testing.T) {
	dbPath := "/home/user/.local/share/pageflip/settings.db"
	lazy := sqlite.NewLazyDB(dbPath)

	assert.Equal(t, dbPath, lazy.Path())
}

func TestLazyDB_DBIsUsable(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	lazy := sqlite.NewLazyDB(dbPath)

	db, err := lazy.DB(ctx)
	require.NoError(t, err)

	// Verify we can execute a simple query
	var result int
	err = db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	require.NoError(t, lazy.Close())
}
