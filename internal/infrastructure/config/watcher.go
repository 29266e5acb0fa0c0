package config

import (
	"context"

	"github.com/bnema/pageflip/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Watch starts watching the config file for changes and reloads automatically.
// Invalid edits are logged and the previous configuration is kept.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	log := logging.FromContext(ctx).With().Str("component", "config").Logger()

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("fsnotify config change detected")

		m.mu.Lock()
		if err := m.reload(); err != nil {
			log.Warn().Err(err).Msg("failed to reload config")
			m.mu.Unlock()
			return
		}
		m.notifyCallbacksLocked()
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// notifyCallbacksLocked copies callbacks and config, releases lock, then notifies.
// Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	config := m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback(config)
	}
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload must be called with the write lock held.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}
