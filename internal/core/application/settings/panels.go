package settings

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

var pinRegexp = regexp.MustCompile(`^[0-9]{4,8}$`)

// TogglePin enables the pin and opens the pin setup, or disables it and
// discards the stored pin.
func (s *Service) TogglePin(ctx context.Context) (*panel.Batch, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if settings.Pin {
		if err := s.disablePin(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.setToggle(ctx, domain.TogglePin, true); err != nil {
		return nil, err
	}
	batch, err := s.navigator.Open(domain.PanelPinSetup, nil)
	if err != nil {
		if rerr := s.setToggle(ctx, domain.TogglePin, false); rerr != nil {
			log.WithError(rerr).Warn("failed to disable pin after failed setup")
		}
		return nil, err
	}
	return batch, nil
}

// SetPin stores the pin chosen during the pin setup.
func (s *Service) SetPin(ctx context.Context, pin string) error {
	if !pinRegexp.MatchString(pin) {
		return validationError(ErrInvalidPin)
	}
	if err := s.secretStore.Set(ctx, domain.PinSecretKey, pin); err != nil {
		return externalError(err)
	}
	return nil
}

// OnPinSuccess closes the pin setup once the pin has been confirmed.
func (s *Service) OnPinSuccess(ctx context.Context) (*panel.Batch, error) {
	_, found, err := s.secretStore.Get(ctx, domain.PinSecretKey)
	if err != nil {
		return nil, externalError(err)
	}
	if !found {
		return nil, fmt.Errorf("%w: pin", ErrNotFound)
	}
	return s.navigator.Close(domain.PanelPinSetup, nil)
}

// ShowBackupPhrase opens the panel displaying the mnemonic of the selected
// wallet and marks the wallet as backed up.
func (s *Service) ShowBackupPhrase(ctx context.Context) ([]string, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}

	mnemonic, found, err := s.secretStore.Get(ctx, domain.MnemonicSecretKey(sel.WalletID))
	if err != nil {
		return nil, externalError(err)
	}
	if !found {
		return nil, fmt.Errorf("%w: mnemonic of wallet %s", ErrNotFound, sel.WalletID)
	}

	words := strings.Fields(mnemonic)
	s.backupLock.Lock()
	s.backupPhrase = words
	s.backupLock.Unlock()

	if _, err := s.navigator.Open(domain.PanelBackupPhraseDisplay, nil); err != nil {
		s.clearBackupPhrase()
		return nil, err
	}

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.MarkBackedUp(s.now()), nil
		},
	); err != nil {
		if _, cerr := s.HideBackupPhrase(ctx); cerr != nil {
			log.WithError(cerr).Warn("failed to close backup phrase panel")
		}
		s.clearBackupPhrase()
		return nil, writeError(err)
	}
	return NumberedWords(words), nil
}

// HideBackupPhrase closes the backup phrase panel and forgets the phrase.
func (s *Service) HideBackupPhrase(ctx context.Context) (*panel.Batch, error) {
	return s.navigator.Close(domain.PanelBackupPhraseDisplay, func() error {
		s.clearBackupPhrase()
		return nil
	})
}

// BackupPhraseWords returns the numbered words of the phrase being displayed.
func (s *Service) BackupPhraseWords() []string {
	s.backupLock.Lock()
	defer s.backupLock.Unlock()
	return NumberedWords(s.backupPhrase)
}

// OpenImportPhrase ...
func (s *Service) OpenImportPhrase(ctx context.Context) (*panel.Batch, error) {
	return s.navigator.Open(domain.PanelImportPhrase, nil)
}

// CloseImportPhrase ...
func (s *Service) CloseImportPhrase(ctx context.Context) (*panel.Batch, error) {
	return s.navigator.Close(domain.PanelImportPhrase, nil)
}

// OpenElectrumOptions ...
func (s *Service) OpenElectrumOptions(ctx context.Context) (*panel.Batch, error) {
	return s.navigator.Open(domain.PanelElectrumOptions, nil)
}

// CloseElectrumOptions ...
func (s *Service) CloseElectrumOptions(ctx context.Context) (*panel.Batch, error) {
	return s.navigator.Close(domain.PanelElectrumOptions, nil)
}

// Back closes the open panel or hands the action over to the enclosing
// navigation. Leaving the pin setup before the pin is confirmed disables the
// pin and discards whatever was stored.
func (s *Service) Back(ctx context.Context) (*panel.Batch, error) {
	switch s.navigator.ActivePanel() {
	case domain.PanelPinSetup:
		if err := s.disablePin(ctx); err != nil {
			return nil, err
		}
	case domain.PanelBackupPhraseDisplay:
		s.clearBackupPhrase()
	}
	return s.navigator.Back()
}

func (s *Service) disablePin(ctx context.Context) error {
	if err := s.secretStore.Reset(ctx, domain.PinSecretKey); err != nil {
		return externalError(err)
	}
	if err := s.setToggle(ctx, domain.TogglePin, false); err != nil {
		return err
	}
	log.Debug("pin disabled")
	return nil
}

func (s *Service) clearBackupPhrase() {
	s.backupLock.Lock()
	defer s.backupLock.Unlock()
	s.backupPhrase = nil
}
