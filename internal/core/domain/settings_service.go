package domain

import (
	"fmt"
	"strings"
)

// Like the wallet's, the settings' methods return an updated copy.

// WithToggle sets the given boolean setting.
func (s Settings) WithToggle(toggle Toggle, enabled bool) (*Settings, error) {
	updated := s.Copy()
	switch toggle {
	case TogglePin:
		updated.Pin = enabled
	case ToggleTestnet:
		updated.Testnet = enabled
	case ToggleRBF:
		updated.RBF = enabled
	case ToggleSendTransactionFallback:
		updated.SendTransactionFallback = enabled
	case ToggleBiometrics:
		updated.Biometrics = enabled
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidToggle, toggle)
	}
	return updated, nil
}

// ToggleValue returns the current value of a boolean setting.
func (s Settings) ToggleValue(toggle Toggle) (bool, error) {
	switch toggle {
	case TogglePin:
		return s.Pin, nil
	case ToggleTestnet:
		return s.Testnet, nil
	case ToggleRBF:
		return s.RBF, nil
	case ToggleSendTransactionFallback:
		return s.SendTransactionFallback, nil
	case ToggleBiometrics:
		return s.Biometrics, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidToggle, toggle)
	}
}

// WithCryptoUnit ...
func (s Settings) WithCryptoUnit(unit string) (*Settings, error) {
	if unit != CryptoUnitBTC && unit != CryptoUnitSatoshi {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCryptoUnit, unit)
	}
	updated := s.Copy()
	updated.CryptoUnit = unit
	return updated, nil
}

// WithRateSource ...
func (s Settings) WithRateSource(service string) *Settings {
	updated := s.Copy()
	updated.SelectedService = service
	return updated
}

// WithSelection moves the scope of the settings operations to another wallet,
// currency or fiat currency. Empty fields are left untouched.
func (s Settings) WithSelection(sel Selection) (*Settings, error) {
	updated := s.Copy()
	if sel.WalletID != "" {
		updated.Selection.WalletID = sel.WalletID
	}
	if sel.Currency != "" {
		if !IsSupportedCurrency(sel.Currency) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, sel.Currency)
		}
		updated.Selection.Currency = sel.Currency
	}
	if sel.FiatCurrency != "" {
		updated.Selection.FiatCurrency = strings.ToLower(sel.FiatCurrency)
	}
	return updated, nil
}

// WithCustomPeer adds the peer on top of the custom peers of the currency.
// Adding an already present peer moves it on top.
func (s Settings) WithCustomPeer(currency string, peer Peer) (*Settings, error) {
	if err := peer.Validate(); err != nil {
		return nil, err
	}
	if peer.Protocol == "" {
		peer.Protocol = PeerProtocolSSL
	}

	updated := s.Copy()
	peers := []Peer{peer}
	for _, p := range updated.CustomPeers[currency] {
		if p.Host == peer.Host && p.Port == peer.Port {
			continue
		}
		peers = append(peers, p)
	}
	updated.CustomPeers[currency] = peers
	return updated, nil
}

// WithoutCustomPeers ...
func (s Settings) WithoutCustomPeers(currency string) *Settings {
	updated := s.Copy()
	delete(updated.CustomPeers, currency)
	return updated
}

// WithPeers replaces the default peer pool of the currency.
func (s Settings) WithPeers(currency string, peers []Peer) (*Settings, error) {
	if !IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	list := make([]Peer, 0, len(peers))
	for _, p := range peers {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.Protocol == "" {
			p.Protocol = PeerProtocolSSL
		}
		list = append(list, p)
	}

	updated := s.Copy()
	updated.Peers[currency] = list
	return updated, nil
}

// WithCurrentPeer records the peer the currency is connected to.
func (s Settings) WithCurrentPeer(currency string, peer Peer) *Settings {
	updated := s.Copy()
	updated.CurrentPeer[currency] = peer
	return updated
}

// PeersFor returns the default and the custom peers of the currency.
func (s Settings) PeersFor(currency string) (peers, customPeers []Peer) {
	peers = append([]Peer{}, s.Peers[currency]...)
	if len(peers) <= 0 {
		peers = append(peers, DefaultPeers[currency]...)
	}
	customPeers = append([]Peer{}, s.CustomPeers[currency]...)
	return
}

// Copy returns a deep copy of the settings.
func (s Settings) Copy() *Settings {
	c := s
	c.Peers = make(map[string][]Peer, len(s.Peers))
	for k, v := range s.Peers {
		c.Peers[k] = append([]Peer{}, v...)
	}
	c.CustomPeers = make(map[string][]Peer, len(s.CustomPeers))
	for k, v := range s.CustomPeers {
		c.CustomPeers[k] = append([]Peer{}, v...)
	}
	c.CurrentPeer = make(map[string]Peer, len(s.CurrentPeer))
	for k, v := range s.CurrentPeer {
		c.CurrentPeer[k] = v
	}
	return &c
}
