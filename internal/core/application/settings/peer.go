package settings

import (
	"context"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// ReconnectPeer closes the connection of the selected currency and opens a
// new one, preferring the custom peers over the default pool. If the new
// connection fails, the current peer stays the one recorded before.
//
// Two reconnections for the same currency must not overlap.
func (s *Service) ReconnectPeer(ctx context.Context) (peer domain.Peer, err error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.Peer{}, err
	}
	currency := settings.Selection.Currency
	if len(currency) <= 0 {
		return domain.Peer{}, validationError(domain.ErrMissingCurrency)
	}

	s.connecting.Store(true)
	defer func() {
		s.connecting.Store(false)
		reconnectsTotal.WithLabelValues(currency, outcome(err)).Inc()
	}()

	if err := s.peerClient.Stop(ctx, currency); err != nil {
		return domain.Peer{}, externalError(err)
	}

	peers, customPeers := settings.PeersFor(currency)
	peer, err = s.peerClient.Start(ctx, currency, peers, customPeers)
	if err != nil {
		log.WithError(err).Warnf("failed to connect to a %s peer", currency)
		return domain.Peer{}, externalError(err)
	}

	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithCurrentPeer(currency, peer), nil
		},
	); err != nil {
		return domain.Peer{}, writeError(err)
	}

	log.Infof("connected to %s peer %s", currency, peer)
	return peer, nil
}

// PeerInfo returns the address of the peer the selected currency is
// connected to.
func (s *Service) PeerInfo(ctx context.Context) (string, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return "", err
	}

	peer, ok := settings.CurrentPeer[settings.Selection.Currency]
	if !ok || peer.IsZero() {
		return noPeerConnected, nil
	}
	return peer.String(), nil
}

// SetCustomPeer adds a custom peer for the selected currency. Custom peers
// are used instead of the default pool at the next reconnection.
func (s *Service) SetCustomPeer(ctx context.Context, peer domain.Peer) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}

	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithCustomPeer(sel.Currency, peer)
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}

// ClearCustomPeers removes the custom peers of the selected currency.
func (s *Service) ClearCustomPeers(ctx context.Context) error {
	sel, err := s.selection(ctx)
	if err != nil {
		return err
	}

	if err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			return settings.WithoutCustomPeers(sel.Currency), nil
		},
	); err != nil {
		return writeError(err)
	}
	return nil
}
