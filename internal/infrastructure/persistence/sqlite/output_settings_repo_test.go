package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/pageflip/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sqlite.LazyDB {
	t.Helper()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "settings.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	return lazy
}

func TestOutputSettingsRepository_EmptyWhenNothingStored(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewOutputSettingsRepository(db)

	got, err := repo.Load(ctx, entity.PluginID)
	require.NoError(t, err)
	assert.Equal(t, &entity.OutputSettings{}, got)
}

func TestOutputSettingsRepository_SaveAndLoad(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewOutputSettingsRepository(db)

	want := &entity.OutputSettings{
		DeviceID:      entity.DeviceIDVuzix,
		QuadBuffer:    entity.QuadBufferHardwareSecondary,
		HasQuadBuffer: true,
		ShowExtra:     true,
		Placement:     entity.Rect{X: -300, Y: 40, W: 1024, H: 512},
		HasPlacement:  true,
	}
	require.NoError(t, repo.Save(ctx, entity.PluginID, want))

	got, err := repo.Load(ctx, entity.PluginID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := repo.Load(ctx, "OtherPlugin")
	require.NoError(t, err)
	assert.Equal(t, &entity.OutputSettings{}, other)
}

func TestOutputSettingsRepository_SaveReplacesPreviousKeys(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewOutputSettingsRepository(db)

	require.NoError(t, repo.Save(ctx, entity.PluginID, &entity.OutputSettings{
		DeviceID:      entity.DeviceIDShutters,
		QuadBuffer:    entity.QuadBufferEmulated,
		HasQuadBuffer: true,
	}))
	require.NoError(t, repo.Save(ctx, entity.PluginID, &entity.OutputSettings{
		DeviceID: entity.DeviceIDShutters,
	}))

	got, err := repo.Load(ctx, entity.PluginID)
	require.NoError(t, err)
	assert.False(t, got.HasQuadBuffer)
	assert.Equal(t, entity.DeviceIDShutters, got.DeviceID)
}

func TestOutputSettingsRepository_IgnoresCorruptValues(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewOutputSettingsRepository(db)

	_, err = db.ExecContext(ctx,
		`INSERT INTO output_settings (plugin_id, key, value) VALUES (?, 'quadBufferType', 'stereo-magic'), (?, 'deviceId', 'Shutters')`,
		entity.PluginID, entity.PluginID)
	require.NoError(t, err)

	got, err := repo.Load(ctx, entity.PluginID)
	require.NoError(t, err)
	assert.False(t, got.HasQuadBuffer)
	assert.Equal(t, entity.DeviceIDShutters, got.DeviceID)
}

func TestLazyOutputSettingsRepository_OpensOnFirstUse(t *testing.T) {
	ctx := testCtx()
	lazy := openTestDB(t)
	repo := sqlite.NewLazyOutputSettingsRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Save(ctx, entity.PluginID, &entity.OutputSettings{ShowExtra: true}))
	assert.True(t, lazy.IsInitialized())

	got, err := repo.Load(ctx, entity.PluginID)
	require.NoError(t, err)
	assert.True(t, got.ShowExtra)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := testCtx()
	db, err := openTestDB(t).DB(ctx)
	require.NoError(t, err)

	require.NoError(t, sqlite.RunMigrations(ctx, db))
	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
