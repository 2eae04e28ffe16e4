package httpinterface

import (
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

type selectRequest struct {
	WalletID     string `json:"walletId"`
	Currency     string `json:"currency"`
	FiatCurrency string `json:"fiatCurrency"`
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

type cryptoUnitRequest struct {
	Unit string `json:"unit"`
}

type pinRequest struct {
	Pin string `json:"pin"`
}

type peerRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

type rateSourceRequest struct {
	Source string `json:"source"`
}

type importRequest struct {
	Mnemonic string `json:"mnemonic"`
}

type addressTypeRequest struct {
	AddressType string `json:"addressType"`
}

type derivationPathRequest struct {
	Path   string `json:"path"`
	Rescan bool   `json:"rescan"`
}

type passphraseRequest struct {
	Passphrase string `json:"passphrase"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type statusReply struct {
	Rescanning    bool       `json:"rescanning"`
	Connecting    bool       `json:"connecting"`
	HasPassphrase bool       `json:"hasPassphrase"`
	ActivePanel   string     `json:"activePanel"`
	WalletID      string     `json:"walletId"`
	Currency      string     `json:"currency"`
	FiatCurrency  string     `json:"fiatCurrency"`
	CurrentPeer   *peerReply `json:"currentPeer,omitempty"`
}

type peerReply struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

func newPeerInfo(p domain.Peer) *peerReply {
	if p.IsZero() {
		return nil
	}
	return &peerReply{p.Host, p.Port, p.Protocol}
}

type peerInfoReply struct {
	Info string `json:"info"`
}

type wordsReply struct {
	Words []string `json:"words"`
}

type batchReply struct {
	BatchID string `json:"batchId,omitempty"`
	Settled bool   `json:"settled"`
}

type panelState struct {
	Panel   string  `json:"panel"`
	Active  bool    `json:"active"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
}

func newPanelStates(states []panel.State) []panelState {
	list := make([]panelState, 0, len(states))
	for _, s := range states {
		list = append(list, panelState{
			Panel:   s.Panel.String(),
			Active:  s.Active,
			Visible: s.Visible,
			Opacity: s.Opacity,
		})
	}
	return list
}

type rateReply struct {
	Currency  string `json:"currency"`
	Fiat      string `json:"fiat"`
	Service   string `json:"service"`
	URL       string `json:"url"`
	Rate      string `json:"rate"`
	UpdatedAt int64  `json:"updatedAt"`
}

type walletsReply struct {
	WalletIDs []string `json:"walletIds"`
}

type walletReply struct {
	WalletID string `json:"walletId"`
}

type walletConfigReply struct {
	AddressType       string `json:"addressType"`
	KeyDerivationPath string `json:"keyDerivationPath"`
	PathTemplate      string `json:"pathTemplate"`
	HasPassphrase     bool   `json:"hasPassphrase"`
}
