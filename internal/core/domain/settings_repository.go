package domain

import "context"

// SettingsRepository persists the app-wide settings. There is exactly one
// settings record, created with NewSettings the first time it's read.
type SettingsRepository interface {
	// GetSettings returns the stored settings.
	GetSettings(ctx context.Context) (*Settings, error)
	// UpdateSettings commits the changes made by the closure in a transactional
	// way.
	UpdateSettings(
		ctx context.Context, updateFn func(s *Settings) (*Settings, error),
	) error
}
