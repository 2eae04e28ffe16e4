package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const settingsKey = "settings"

type settingsRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSettingsRepositoryImpl is the factory for a badger implementation of
// domain.SettingsRepository
func NewSettingsRepositoryImpl(store *badgerhold.Store) domain.SettingsRepository {
	return settingsRepositoryImpl{store}
}

func (r settingsRepositoryImpl) GetSettings(
	_ context.Context,
) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.store.Get(settingsKey, &settings); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.NewSettings(), nil
		}
		return nil, err
	}
	return settings.Copy(), nil
}

func (r settingsRepositoryImpl) UpdateSettings(
	_ context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	return withRetry(r.store, func(tx *badger.Txn) error {
		settings := domain.NewSettings()

		var stored domain.Settings
		if err := r.store.TxGet(tx, settingsKey, &stored); err != nil {
			if !errors.Is(err, badgerhold.ErrNotFound) {
				return err
			}
		} else {
			settings = stored.Copy()
		}

		updatedSettings, err := updateFn(settings)
		if err != nil {
			return err
		}
		return r.store.TxUpsert(tx, settingsKey, *updatedSettings)
	})
}
