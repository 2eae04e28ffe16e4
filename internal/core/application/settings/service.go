package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"go.uber.org/atomic"
)

// Service implements the operations of the settings screen. Every operation
// is scoped to the selected wallet and currency.
//
// Operations against the same wallet must not run in parallel. The rescanning
// and connecting flags let the callers know when a rescan or a reconnection is
// in progress, but no lock is enforced.
type Service struct {
	repoManager  ports.RepoManager
	secretStore  ports.SecretStore
	walletSyncer ports.WalletSyncer
	peerClient   ports.PeerClient
	rateService  ports.RateService
	mnemonicSvc  ports.MnemonicService
	navigator    *panel.Navigator

	rescanning *atomic.Bool
	connecting *atomic.Bool

	backupLock   sync.Mutex
	backupPhrase []string

	now func() time.Time
}

func NewService(
	repoManager ports.RepoManager,
	secretStore ports.SecretStore,
	walletSyncer ports.WalletSyncer,
	peerClient ports.PeerClient,
	rateService ports.RateService,
	mnemonicSvc ports.MnemonicService,
	navigator *panel.Navigator,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if secretStore == nil {
		return nil, fmt.Errorf("missing secret store")
	}
	if walletSyncer == nil {
		return nil, fmt.Errorf("missing wallet syncer")
	}
	if peerClient == nil {
		return nil, fmt.Errorf("missing peer client")
	}
	if rateService == nil {
		return nil, fmt.Errorf("missing rate service")
	}
	if mnemonicSvc == nil {
		return nil, fmt.Errorf("missing mnemonic service")
	}
	if navigator == nil {
		return nil, fmt.Errorf("missing panel navigator")
	}

	return &Service{
		repoManager:  repoManager,
		secretStore:  secretStore,
		walletSyncer: walletSyncer,
		peerClient:   peerClient,
		rateService:  rateService,
		mnemonicSvc:  mnemonicSvc,
		navigator:    navigator,
		rescanning:   atomic.NewBool(false),
		connecting:   atomic.NewBool(false),
		now:          time.Now,
	}, nil
}

// IsRescanning ...
func (s *Service) IsRescanning() bool {
	return s.rescanning.Load()
}

// IsConnecting ...
func (s *Service) IsConnecting() bool {
	return s.connecting.Load()
}

// Status returns the busy flags, the passphrase presence for the selected
// wallet and the active panel.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	hasPassphrase := false
	if w, err := s.repoManager.WalletRepository().GetWallet(
		ctx, settings.Selection.WalletID,
	); err == nil {
		hasPassphrase = w.HasPassphrase
	}

	return &Status{
		Rescanning:    s.IsRescanning(),
		Connecting:    s.IsConnecting(),
		HasPassphrase: hasPassphrase,
		ActivePanel:   s.navigator.ActivePanel(),
		Selection:     settings.Selection,
		CurrentPeer:   settings.CurrentPeer[settings.Selection.Currency],
	}, nil
}

// GetSettings ...
func (s *Service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repoManager.SettingsRepository().GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}

// GetWalletConfig returns the crypto config of the selected wallet and
// currency.
func (s *Service) GetWalletConfig(
	ctx context.Context,
) (*domain.WalletCryptoConfig, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}
	w, err := s.getWallet(ctx, sel.WalletID)
	if err != nil {
		return nil, err
	}
	cfg, err := w.Config(sel.Currency)
	if err != nil {
		return nil, validationError(err)
	}
	return &cfg, nil
}

// GetChainState returns the chain state of the selected wallet and currency.
func (s *Service) GetChainState(ctx context.Context) (*domain.ChainState, error) {
	sel, err := s.selection(ctx)
	if err != nil {
		return nil, err
	}
	w, err := s.getWallet(ctx, sel.WalletID)
	if err != nil {
		return nil, err
	}
	state := w.ChainState(sel.Currency)
	return &state, nil
}

// Select changes the wallet, currency or fiat currency the operations are
// scoped to.
func (s *Service) Select(ctx context.Context, sel domain.Selection) error {
	if sel.WalletID != "" {
		if _, err := s.getWallet(ctx, sel.WalletID); err != nil {
			return err
		}
	}
	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithSelection(sel)
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *Service) selection(ctx context.Context) (domain.Selection, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.Selection{}, err
	}

	sel := settings.Selection
	if len(strings.TrimSpace(sel.WalletID)) <= 0 {
		return domain.Selection{}, validationError(domain.ErrMissingWalletID)
	}
	if len(sel.Currency) <= 0 {
		return domain.Selection{}, validationError(domain.ErrMissingCurrency)
	}
	return sel, nil
}

func (s *Service) getWallet(
	ctx context.Context, walletID string,
) (*domain.Wallet, error) {
	w, err := s.repoManager.WalletRepository().GetWallet(ctx, walletID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, validationError(err)
		}
		return nil, fmt.Errorf("failed to read wallet: %w", err)
	}
	return w, nil
}
