package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// SetToggle sets one of the boolean settings. The pin has its own flow, see
// TogglePin.
func (s *Service) SetToggle(
	ctx context.Context, toggle domain.Toggle, enabled bool,
) error {
	if toggle == domain.TogglePin {
		return validationError(
			fmt.Errorf("%w: use the pin setup", domain.ErrInvalidToggle),
		)
	}
	return s.setToggle(ctx, toggle, enabled)
}

// SetCryptoUnit ...
func (s *Service) SetCryptoUnit(ctx context.Context, unit string) error {
	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithCryptoUnit(unit)
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) setToggle(
	ctx context.Context, toggle domain.Toggle, enabled bool,
) error {
	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithToggle(toggle, enabled)
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}

// ChangeSecretStorePassword encrypts the secret store with a new password.
// The store stays unlocked.
func (s *Service) ChangeSecretStorePassword(
	_ context.Context, currentPassword, newPassword string,
) error {
	if currentPassword == "" || newPassword == "" {
		return validationError(ErrMissingPassword)
	}
	if err := s.secretStore.ChangePassword(
		currentPassword, newPassword,
	); err != nil {
		if errors.Is(err, domain.ErrInvalidPassword) {
			return validationError(err)
		}
		return externalError(err)
	}
	log.Info("secret store password changed")
	return nil
}
