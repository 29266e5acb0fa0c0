package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/domain/repository"
	"github.com/bnema/pageflip/internal/logging"
)

// Setting keys stored per output plugin.
const (
	keyDeviceID   = "deviceId"
	keyQuadBuffer = "quadBufferType"
	keyAdvanced   = "advanced"
	keyWindowPos  = "windowPos"
)

type outputSettingsRepo struct {
	db *sql.DB
}

// NewOutputSettingsRepository creates a new SQLite-backed settings repository.
func NewOutputSettingsRepository(db *sql.DB) repository.OutputSettingsRepository {
	return &outputSettingsRepo{db: db}
}

func (r *outputSettingsRepo) Load(ctx context.Context, pluginID string) (*entity.OutputSettings, error) {
	log := logging.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM output_settings WHERE plugin_id = ?`, pluginID)
	if err != nil {
		return nil, fmt.Errorf("query output settings: %w", err)
	}
	defer rows.Close()

	settings := &entity.OutputSettings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan output setting: %w", err)
		}
		if err := applySetting(settings, key, value); err != nil {
			// A bad value is dropped; the rest of the selection still applies.
			log.Warn().Err(err).Str("key", key).Msg("ignoring stored output setting")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read output settings: %w", err)
	}
	return settings, nil
}

func applySetting(s *entity.OutputSettings, key, value string) error {
	switch key {
	case keyDeviceID:
		s.DeviceID = value
	case keyQuadBuffer:
		mode, err := entity.ParseQuadBufferMode(value)
		if err != nil {
			return err
		}
		s.QuadBuffer, s.HasQuadBuffer = mode, true
	case keyAdvanced:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.ShowExtra = on
	case keyWindowPos:
		var rect entity.Rect
		if _, err := fmt.Sscanf(value, "%dx%d+%d+%d", &rect.W, &rect.H, &rect.X, &rect.Y); err != nil {
			return fmt.Errorf("window position %q: %w", value, err)
		}
		s.Placement, s.HasPlacement = rect, true
	}
	return nil
}

func (r *outputSettingsRepo) Save(ctx context.Context, pluginID string, settings *entity.OutputSettings) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("plugin", pluginID).Str("device", settings.DeviceID).Msg("saving output settings")

	values := map[string]string{
		keyAdvanced: strconv.FormatBool(settings.ShowExtra),
	}
	if settings.DeviceID != "" {
		values[keyDeviceID] = settings.DeviceID
	}
	if settings.HasQuadBuffer {
		values[keyQuadBuffer] = settings.QuadBuffer.String()
	}
	if settings.HasPlacement {
		values[keyWindowPos] = settings.Placement.String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM output_settings WHERE plugin_id = ?`, pluginID); err != nil {
		return fmt.Errorf("clear output settings: %w", err)
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO output_settings (plugin_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			pluginID, key, value); err != nil {
			return fmt.Errorf("store output setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}
