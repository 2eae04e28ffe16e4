package domain_test

import (
	"testing"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestWithToggle(t *testing.T) {
	t.Parallel()

	toggles := []domain.Toggle{
		domain.TogglePin,
		domain.ToggleTestnet,
		domain.ToggleRBF,
		domain.ToggleSendTransactionFallback,
		domain.ToggleBiometrics,
	}

	s := domain.NewSettings()
	for _, toggle := range toggles {
		current, err := s.ToggleValue(toggle)
		require.NoError(t, err)

		updated, err := s.WithToggle(toggle, !current)
		require.NoError(t, err)

		value, err := updated.ToggleValue(toggle)
		require.NoError(t, err)
		require.Equal(t, !current, value, string(toggle))
	}

	_, err := s.WithToggle("darkMode", true)
	require.ErrorIs(t, err, domain.ErrInvalidToggle)
}

func TestWithCryptoUnit(t *testing.T) {
	t.Parallel()

	s := domain.NewSettings()
	updated, err := s.WithCryptoUnit(domain.CryptoUnitBTC)
	require.NoError(t, err)
	require.Equal(t, domain.CryptoUnitBTC, updated.CryptoUnit)
	require.Equal(t, domain.CryptoUnitSatoshi, s.CryptoUnit)

	_, err = s.WithCryptoUnit("mBTC")
	require.ErrorIs(t, err, domain.ErrInvalidCryptoUnit)
}

func TestWithCustomPeer(t *testing.T) {
	t.Parallel()

	s := domain.NewSettings()
	first := domain.Peer{Host: "first.example.com", Port: 50002}
	second := domain.Peer{Host: "second.example.com", Port: 50001, Protocol: "tcp"}

	s, err := s.WithCustomPeer(domain.Bitcoin, first)
	require.NoError(t, err)
	s, err = s.WithCustomPeer(domain.Bitcoin, second)
	require.NoError(t, err)
	s, err = s.WithCustomPeer(domain.Bitcoin, first)
	require.NoError(t, err)

	peers, customPeers := s.PeersFor(domain.Bitcoin)
	require.Equal(t, domain.DefaultPeers[domain.Bitcoin], peers)
	require.Len(t, customPeers, 2)
	require.Equal(t, first.Host, customPeers[0].Host)
	require.Equal(t, domain.PeerProtocolSSL, customPeers[0].Protocol)
	require.Equal(t, second, customPeers[1])

	s = s.WithoutCustomPeers(domain.Bitcoin)
	_, customPeers = s.PeersFor(domain.Bitcoin)
	require.Empty(t, customPeers)
}

func TestFailingWithCustomPeer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		peer domain.Peer
	}{
		{"missing_host", domain.Peer{Port: 50002}},
		{"zero_port", domain.Peer{Host: "example.com"}},
		{"port_out_of_range", domain.Peer{Host: "example.com", Port: 70000}},
		{"unknown_protocol", domain.Peer{Host: "example.com", Port: 1, Protocol: "ws"}},
	}

	s := domain.NewSettings()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := s.WithCustomPeer(domain.Bitcoin, tt.peer)
			require.ErrorIs(t, err, domain.ErrInvalidPeer)
		})
	}
}

func TestWithSelection(t *testing.T) {
	t.Parallel()

	s := domain.NewSettings()
	updated, err := s.WithSelection(domain.Selection{
		Currency: domain.Litecoin, FiatCurrency: "EUR",
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultWalletID, updated.Selection.WalletID)
	require.Equal(t, domain.Litecoin, updated.Selection.Currency)
	require.Equal(t, "eur", updated.Selection.FiatCurrency)

	_, err = s.WithSelection(domain.Selection{Currency: "dogecoin"})
	require.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}

func TestParsePanel(t *testing.T) {
	t.Parallel()

	for _, p := range domain.Panels {
		parsed, err := domain.ParsePanel(p.String())
		require.NoError(t, err)
		require.Equal(t, p, parsed)
		require.Equal(t, p != domain.PanelSettings, p.IsOverlay())
	}

	_, err := domain.ParsePanel("wallets")
	require.ErrorIs(t, err, domain.ErrInvalidPanel)
}

func TestWithPeers(t *testing.T) {
	t.Parallel()

	s := domain.NewSettings()
	updated, err := s.WithPeers(domain.Litecoin, []domain.Peer{
		{Host: "electrum.example.com", Port: 50002},
	})
	require.NoError(t, err)

	peers, custom := updated.PeersFor(domain.Litecoin)
	require.Empty(t, custom)
	require.Equal(t, []domain.Peer{
		{Host: "electrum.example.com", Port: 50002, Protocol: domain.PeerProtocolSSL},
	}, peers)
	require.Equal(t, domain.DefaultPeers[domain.Bitcoin], s.Peers[domain.Bitcoin])

	_, err = s.WithPeers("dogecoin", nil)
	require.ErrorIs(t, err, domain.ErrUnsupportedCurrency)

	_, err = s.WithPeers(domain.Bitcoin, []domain.Peer{{Host: "", Port: 1}})
	require.ErrorIs(t, err, domain.ErrInvalidPeer)
}
