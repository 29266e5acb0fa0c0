// Package sqlite provides the SQLite settings store.
package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/domain/repository"
)

// LazyOutputSettingsRepository opens the database on the first Load or Save.
type LazyOutputSettingsRepository struct {
	provider port.DatabaseProvider
	repo     repository.OutputSettingsRepository
	once     sync.Once
	initErr  error
}

// NewLazyOutputSettingsRepository creates a lazy-loading settings repository.
func NewLazyOutputSettingsRepository(provider port.DatabaseProvider) repository.OutputSettingsRepository {
	return &LazyOutputSettingsRepository{provider: provider}
}

func (r *LazyOutputSettingsRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewOutputSettingsRepository(db)
	})
	return r.initErr
}

func (r *LazyOutputSettingsRepository) Load(ctx context.Context, pluginID string) (*entity.OutputSettings, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Load(ctx, pluginID)
}

func (r *LazyOutputSettingsRepository) Save(ctx context.Context, pluginID string, settings *entity.OutputSettings) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, pluginID, settings)
}
