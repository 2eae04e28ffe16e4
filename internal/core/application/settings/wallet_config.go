package settings

import (
	"context"
	"errors"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// SetAddressType updates the address type of the selected currency together
// with its canonical derivation path, then rescans. Unknown types fall back
// to bech32.
func (s *Service) SetAddressType(ctx context.Context, addressType string) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}

	t := domain.ParseAddressType(addressType)
	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.WithAddressType(sel.Currency, t)
		},
	); err != nil {
		return writeError(err)
	}

	log.Debugf(
		"address type of wallet %s for %s set to %s", sel.WalletID, sel.Currency, t,
	)
	return s.rescan(ctx, sel)
}

// SetKeyDerivationPath overrides the derivation path of the selected currency
// without touching its address type. The wallet is rescanned only if
// requested.
func (s *Service) SetKeyDerivationPath(
	ctx context.Context, path string, rescan bool,
) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	p, err := domain.ParseDerivationPath(path)
	if err != nil {
		return validationError(err)
	}

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.WithKeyDerivationPath(sel.Currency, p)
		},
	); err != nil {
		return writeError(err)
	}

	if !rescan {
		return nil
	}
	return s.rescan(ctx, sel)
}

// AddPassphrase stores the BIP39 passphrase of the selected wallet, resets
// every chain-derived field and rescans. An empty passphrase is a no-op.
func (s *Service) AddPassphrase(ctx context.Context, passphrase string) error {
	if len(passphrase) <= 0 {
		return nil
	}

	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	if _, err := s.getWallet(ctx, sel.WalletID); err != nil {
		return err
	}

	if err := s.secretStore.Set(
		ctx, domain.PassphraseSecretKey(sel.WalletID), passphrase,
	); err != nil {
		return externalError(err)
	}

	if err := s.resetForPassphrase(ctx, sel.WalletID, true); err != nil {
		return err
	}
	return s.rescan(ctx, sel)
}

// RemovePassphrase deletes the BIP39 passphrase of the selected wallet,
// resets every chain-derived field and rescans. It succeeds even if no
// passphrase was set.
func (s *Service) RemovePassphrase(ctx context.Context) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	if _, err := s.getWallet(ctx, sel.WalletID); err != nil {
		return err
	}

	if err := s.secretStore.Reset(
		ctx, domain.PassphraseSecretKey(sel.WalletID),
	); err != nil {
		return externalError(err)
	}

	if err := s.resetForPassphrase(ctx, sel.WalletID, false); err != nil {
		return err
	}
	return s.rescan(ctx, sel)
}

// LoadPassphraseState aligns the passphrase flag of the selected wallet with
// the content of the secret store. A missing secret means no passphrase.
func (s *Service) LoadPassphraseState(ctx context.Context) (bool, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return false, err
	}

	_, found, err := s.secretStore.Get(ctx, domain.PassphraseSecretKey(sel.WalletID))
	if err != nil {
		return false, externalError(err)
	}

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			w.HasPassphrase = found
			return w, nil
		},
	); err != nil {
		return false, writeError(err)
	}
	return found, nil
}

// Rescan wipes the chain state of the selected currency and asks the sync
// engine to rebuild it from scratch.
func (s *Service) Rescan(ctx context.Context) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	return s.rescan(ctx, sel)
}

func (s *Service) rescan(ctx context.Context, sel domain.Selection) (err error) {
	s.rescanning.Store(true)
	defer func() {
		s.rescanning.Store(false)
		rescansTotal.WithLabelValues(sel.Currency, outcome(err)).Inc()
	}()

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.ResetChainState(sel.Currency), nil
		},
	); err != nil {
		return writeError(err)
	}

	if err := s.walletSyncer.Resync(ctx, sel.WalletID, sel.Currency); err != nil {
		log.WithError(err).Warnf(
			"failed to resync wallet %s for %s", sel.WalletID, sel.Currency,
		)
		return externalError(err)
	}

	s.refreshFiatBalance(ctx, sel)
	return nil
}

func (s *Service) resetForPassphrase(
	ctx context.Context, walletID string, hasPassphrase bool,
) error {
	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, walletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.ResetForPassphrase(hasPassphrase), nil
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}

// refreshFiatBalance recomputes the fiat balance with the cached rate, if
// any.
func (s *Service) refreshFiatBalance(ctx context.Context, sel domain.Selection) {
	rate, err := s.repoManager.RateRepository().GetExchangeRate(
		ctx, sel.Currency, sel.FiatCurrency,
	)
	if err != nil {
		if !errors.Is(err, domain.ErrExchangeRateNotFound) {
			log.WithError(err).Warn("failed to read cached exchange rate")
		}
		return
	}

	if err := s.repoManager.WalletRepository().UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.WithFiatBalance(sel.Currency, rate.Rate), nil
		},
	); err != nil {
		log.WithError(err).Warn("failed to update fiat balance")
	}
}
