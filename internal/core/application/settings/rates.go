package settings

import (
	"context"
	"fmt"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ChangeExchangeRateSource persists the rate source and fetches a fresh rate
// for the selected currency pair. On success the cached rate and the fiat
// balance of the wallet are updated, otherwise both are left untouched.
func (s *Service) ChangeExchangeRateSource(ctx context.Context, source string) error {
	if !s.isSupportedSource(source) {
		return validationError(fmt.Errorf("%w: %s", domain.ErrUnknownRateSource, source))
	}
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}

	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithRateSource(source), nil
		},
	); err != nil {
		return writeError(err)
	}

	return s.updateExchangeRate(ctx, sel, source)
}

// UpdateExchangeRate fetches a fresh rate from the selected source.
func (s *Service) UpdateExchangeRate(ctx context.Context) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}
	return s.updateExchangeRate(ctx, sel, settings.SelectedService)
}

// GetExchangeRate returns the cached rate for the selected currency pair.
func (s *Service) GetExchangeRate(ctx context.Context) (*domain.ExchangeRate, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := s.repoManager.RateRepository().GetExchangeRate(
		ctx, sel.Currency, sel.FiatCurrency,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return rate, nil
}

func (s *Service) updateExchangeRate(
	ctx context.Context, sel domain.Selection, source string,
) (err error) {
	defer func() {
		rateFetchesTotal.WithLabelValues(source, outcome(err)).Inc()
	}()

	price, err := s.rateService.FetchRate(ctx, sel.Currency, sel.FiatCurrency, source)
	if err != nil {
		log.WithError(err).Warnf(
			"failed to fetch %s/%s rate from %s", sel.Currency, sel.FiatCurrency, source,
		)
		return externalError(err)
	}

	w, err := s.getWallet(ctx, sel.WalletID)
	if err != nil {
		return err
	}
	var prevBalance *decimal.Decimal
	if b, ok := w.FiatBalance[sel.Currency]; ok {
		prevBalance = &b
	}

	walletRepo := s.repoManager.WalletRepository()
	if err := walletRepo.UpdateWallet(
		ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
			return w.WithFiatBalance(sel.Currency, price), nil
		},
	); err != nil {
		return writeError(err)
	}

	if err := s.repoManager.RateRepository().UpsertExchangeRate(
		ctx, domain.ExchangeRate{
			Currency:  sel.Currency,
			Fiat:      sel.FiatCurrency,
			Service:   source,
			Rate:      price,
			UpdatedAt: s.now(),
		},
	); err != nil {
		if rerr := walletRepo.UpdateWallet(
			ctx, sel.WalletID, func(w *domain.Wallet) (*domain.Wallet, error) {
				return w.WithPreviousFiatBalance(sel.Currency, prevBalance), nil
			},
		); rerr != nil {
			log.WithError(rerr).Warnf(
				"failed to restore %s fiat balance of wallet %s",
				sel.Currency, sel.WalletID,
			)
		}
		return writeError(err)
	}
	return nil
}

func (s *Service) isSupportedSource(source string) bool {
	for _, src := range s.rateService.ListSources() {
		if src == source {
			return true
		}
	}
	return false
}
