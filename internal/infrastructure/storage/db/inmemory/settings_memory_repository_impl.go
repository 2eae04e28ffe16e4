package inmemory

import (
	"context"
	"sync"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

// SettingsRepositoryImpl represents an in memory storage
type SettingsRepositoryImpl struct {
	settings *domain.Settings

	lock *sync.RWMutex
}

// NewSettingsRepositoryImpl returns a repository holding the default
// settings.
func NewSettingsRepositoryImpl() *SettingsRepositoryImpl {
	return &SettingsRepositoryImpl{
		settings: domain.NewSettings(),
		lock:     &sync.RWMutex{},
	}
}

func (r *SettingsRepositoryImpl) GetSettings(
	_ context.Context,
) (*domain.Settings, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.settings.Copy(), nil
}

func (r *SettingsRepositoryImpl) UpdateSettings(
	_ context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	updated, err := updateFn(r.settings.Copy())
	if err != nil {
		return err
	}
	r.settings = updated.Copy()
	return nil
}
