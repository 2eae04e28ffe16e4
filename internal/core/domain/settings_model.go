package domain

import (
	"fmt"
	"strings"
)

// Toggle is the name of a boolean app setting.
type Toggle string

const (
	TogglePin                     Toggle = "pin"
	ToggleTestnet                 Toggle = "testnet"
	ToggleRBF                     Toggle = "rbf"
	ToggleSendTransactionFallback Toggle = "sendTransactionFallback"
	ToggleBiometrics              Toggle = "biometrics"
)

const (
	PeerProtocolSSL = "ssl"
	PeerProtocolTCP = "tcp"
)

// Peer is an Electrum server endpoint.
type Peer struct {
	Host     string
	Port     int
	Protocol string
}

// Validate ...
func (p Peer) Validate() error {
	if len(strings.TrimSpace(p.Host)) <= 0 || p.Port <= 0 || p.Port > 65535 {
		return ErrInvalidPeer
	}
	if p.Protocol != "" && p.Protocol != PeerProtocolSSL &&
		p.Protocol != PeerProtocolTCP {
		return fmt.Errorf("%w: unknown protocol %s", ErrInvalidPeer, p.Protocol)
	}
	return nil
}

// IsZero ...
func (p Peer) IsZero() bool {
	return p.Host == "" && p.Port == 0
}

func (p Peer) String() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Selection identifies the wallet, currency and fiat currency every settings
// operation is scoped to.
type Selection struct {
	WalletID     string
	Currency     string
	FiatCurrency string
}

// Settings is the persisted app-wide configuration.
type Settings struct {
	Selection Selection

	Pin                     bool
	Testnet                 bool
	RBF                     bool
	SendTransactionFallback bool
	Biometrics              bool

	SelectedService string
	CryptoUnit      string

	// Peers is the default pool of Electrum servers per currency.
	Peers map[string][]Peer
	// CustomPeers, if not empty for a currency, replace the default pool.
	CustomPeers map[string][]Peer
	// CurrentPeer is the peer each currency is connected to.
	CurrentPeer map[string]Peer
}

// DefaultPeers is the Electrum pool used when a currency has no custom peer.
var DefaultPeers = map[string][]Peer{
	Bitcoin: {
		{Host: "electrum.blockstream.info", Port: 50002, Protocol: PeerProtocolSSL},
		{Host: "electrum.emzy.de", Port: 50002, Protocol: PeerProtocolSSL},
		{Host: "electrum.bitaroo.net", Port: 50002, Protocol: PeerProtocolSSL},
	},
	BitcoinTestnet: {
		{Host: "electrum.blockstream.info", Port: 60002, Protocol: PeerProtocolSSL},
		{Host: "testnet.aranguren.org", Port: 51002, Protocol: PeerProtocolSSL},
	},
	Litecoin: {
		{Host: "electrum-ltc.bysh.me", Port: 50002, Protocol: PeerProtocolSSL},
		{Host: "backup.electrum-ltc.org", Port: 443, Protocol: PeerProtocolSSL},
	},
	LitecoinTestnet: {
		{Host: "electrum-ltc.bysh.me", Port: 51002, Protocol: PeerProtocolSSL},
	},
}

// NewSettings returns the settings of a fresh install.
func NewSettings() *Settings {
	peers := make(map[string][]Peer, len(DefaultPeers))
	for currency, list := range DefaultPeers {
		peers[currency] = append([]Peer{}, list...)
	}
	return &Settings{
		Selection: Selection{
			WalletID:     DefaultWalletID,
			Currency:     Bitcoin,
			FiatCurrency: DefaultFiatCurrency,
		},
		Testnet:         true,
		RBF:             true,
		SelectedService: RateSourceCoingecko,
		CryptoUnit:      CryptoUnitSatoshi,
		Peers:           peers,
		CustomPeers:     map[string][]Peer{},
		CurrentPeer:     map[string]Peer{},
	}
}
