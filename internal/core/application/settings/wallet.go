package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// CreateWallet generates a new mnemonic and adds a wallet for it. The new
// wallet becomes the selected one.
func (s *Service) CreateWallet(ctx context.Context) (string, error) {
	mnemonic, err := s.mnemonicSvc.GenerateMnemonic()
	if err != nil {
		return "", err
	}
	return s.addWallet(ctx, mnemonic)
}

// ImportMnemonic adds and selects a wallet for the given mnemonic, closes the
// import panel and rescans the selected currency.
func (s *Service) ImportMnemonic(ctx context.Context, mnemonic string) (string, error) {
	mnemonic = strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if !s.mnemonicSvc.IsMnemonicValid(mnemonic) {
		return "", validationError(ErrInvalidMnemonic)
	}

	walletID, err := s.addWallet(ctx, mnemonic)
	if err != nil {
		return "", err
	}

	if s.navigator.ActivePanel() == domain.PanelImportPhrase {
		if _, err := s.navigator.Close(domain.PanelImportPhrase, nil); err != nil {
			log.WithError(err).Warn("failed to close import panel")
		}
	}

	return walletID, s.Rescan(ctx)
}

// ListWallets ...
func (s *Service) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	return s.repoManager.WalletRepository().ListWallets(ctx)
}

func (s *Service) addWallet(ctx context.Context, mnemonic string) (string, error) {
	wallets, err := s.repoManager.WalletRepository().ListWallets(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list wallets: %w", err)
	}
	walletID := fmt.Sprintf("wallet%d", len(wallets))

	w, err := domain.NewWallet(walletID, domain.SupportedCurrencies)
	if err != nil {
		return "", validationError(err)
	}

	if err := s.secretStore.Set(
		ctx, domain.MnemonicSecretKey(walletID), mnemonic,
	); err != nil {
		return "", externalError(err)
	}
	if err := s.repoManager.WalletRepository().AddWallet(ctx, w); err != nil {
		return "", writeError(err)
	}

	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithSelection(domain.Selection{WalletID: walletID})
		},
	); err != nil {
		return "", writeError(err)
	}

	log.Infof("added wallet %s", walletID)
	return walletID, nil
}
