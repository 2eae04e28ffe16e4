package main

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/moonshine-wallet/moonshine-daemon/internal/config"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/settings"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/peer-client/electrum"
	rateservice "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/rate-service"
	secretstore "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/secret-store"
	dbbadger "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/storage/db/badger"
	"github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/storage/db/inmemory"
	walletsync "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/wallet-sync"
	httpinterface "github.com/moonshine-wallet/moonshine-daemon/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to initialize config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)

	repoManager, err := newRepoManager(config.GetString(config.DBTypeKey), dbDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open db")
	}
	defer repoManager.Close()

	secretStore, err := secretstore.NewStore(datadir)
	if err != nil {
		log.WithError(err).Fatal("failed to open secret store")
	}
	defer secretStore.Close()

	password, err := config.GetSecretStorePassword()
	if err != nil {
		log.WithError(err).Fatal("failed to read secret store password")
	}
	if err := secretStore.Unlock(password); err != nil {
		log.WithError(err).Fatal("failed to unlock secret store")
	}
	defer secretStore.Lock()

	peerClient := electrum.NewService(electrum.Config{
		RequestTimeout: config.GetDuration(config.PeerRequestTimeoutKey),
		ProbeRate:      config.GetInt(config.PeerProbeRateKey),
		InsecureTLS:    config.GetBool(config.PeerInsecureTLSKey),
	})
	defer peerClient.Close()

	walletSyncer, err := walletsync.NewSyncer(
		repoManager, secretStore, peerClient, config.GetInt(config.GapLimitKey),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize wallet syncer")
	}

	rateSvc := rateservice.NewService(rateservice.Config{
		Timeout: config.GetDuration(config.RateRequestTimeoutKey),
	})

	controller := panel.NewController(nil)
	navigator, err := panel.NewNavigator(
		controller, nil, config.GetDuration(config.TransitionDurationKey),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize panel navigator")
	}

	settingsSvc, err := settings.NewService(
		repoManager, secretStore, walletSyncer, peerClient, rateSvc,
		walletsync.NewMnemonicService(), navigator,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize settings service")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	if err := applyDefaults(ctx, repoManager); err != nil {
		log.WithError(err).Fatal("failed to apply default settings")
	}
	if _, err := settingsSvc.LoadPassphraseState(ctx); err != nil {
		if !errors.Is(err, domain.ErrWalletNotFound) {
			log.WithError(err).Fatal("failed to load passphrase state")
		}
		log.Info("no wallet found, create or import one to get started")
	}

	httpSvc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:        config.GetInt(config.HTTPListeningPortKey),
		SettingsSvc: settingsSvc,
		Controller:  controller,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize http interface")
	}
	if err := httpSvc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start http interface")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		controller.Run(gctx, config.GetDuration(config.FrameIntervalKey))
		return nil
	})
	g.Go(func() error {
		if _, err := settingsSvc.ReconnectPeer(gctx); err != nil {
			log.WithError(err).Warn("failed to connect to peer on startup")
		}
		if err := settingsSvc.UpdateExchangeRate(gctx); err != nil {
			log.WithError(err).Warn("failed to fetch exchange rate on startup")
		}
		return nil
	})

	log.Info("moonshine daemon started")
	<-ctx.Done()

	httpSvc.Stop()
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("background task failed")
	}
	log.Info("shutdown")
}

func newRepoManager(dbType, dbDir string) (ports.RepoManager, error) {
	if dbType == config.DBInMemory {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(dbDir, dbbadger.NewLogger())
}

// applyDefaults selects the default fiat currency on first start and
// overrides the default peers with those loaded from file, if any.
func applyDefaults(ctx context.Context, repoManager ports.RepoManager) error {
	wallets, err := repoManager.WalletRepository().ListWallets(ctx)
	if err != nil {
		return err
	}
	peers, err := config.GetNetworkPeers()
	if err != nil {
		return err
	}
	fiat := config.GetString(config.DefaultFiatKey)

	return repoManager.SettingsRepository().UpdateSettings(
		ctx, func(s *domain.Settings) (*domain.Settings, error) {
			updated := s
			if len(wallets) <= 0 {
				var err error
				if updated, err = updated.WithSelection(
					domain.Selection{FiatCurrency: fiat},
				); err != nil {
					return nil, err
				}
			}
			for currency, list := range peers {
				var err error
				if updated, err = updated.WithPeers(currency, list); err != nil {
					return nil, err
				}
			}
			return updated, nil
		},
	)
}
