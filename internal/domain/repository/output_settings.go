package repository

import (
	"context"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// OutputSettingsRepository persists the page-flip output selection.
type OutputSettingsRepository interface {
	// Load returns the stored settings for the given output plugin.
	// Returns an empty OutputSettings when nothing is stored.
	Load(ctx context.Context, pluginID string) (*entity.OutputSettings, error)

	// Save replaces the stored settings for the given output plugin.
	Save(ctx context.Context, pluginID string, settings *entity.OutputSettings) error
}
