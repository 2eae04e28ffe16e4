package httpinterface

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/settings"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

var errBadRequest = errors.New("bad request")

type handler struct {
	svc        *settings.Service
	controller *panel.Controller
}

func newHandler(svc *settings.Service, controller *panel.Controller) *handler {
	return &handler{svc, controller}
}

func (h *handler) routes(r *mux.Router) {
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/status", h.status).Methods(http.MethodGet)
	v1.HandleFunc("/settings", h.getSettings).Methods(http.MethodGet)
	v1.HandleFunc("/select", h.selectScope).Methods(http.MethodPost)
	v1.HandleFunc("/toggles/{toggle}", h.setToggle).Methods(http.MethodPost)
	v1.HandleFunc("/crypto-unit", h.setCryptoUnit).Methods(http.MethodPost)

	v1.HandleFunc("/pin/toggle", h.togglePin).Methods(http.MethodPost)
	v1.HandleFunc("/pin", h.setPin).Methods(http.MethodPost)
	v1.HandleFunc("/pin/success", h.pinSuccess).Methods(http.MethodPost)

	v1.HandleFunc("/backup-phrase", h.backupPhrase).Methods(http.MethodGet)
	v1.HandleFunc("/backup-phrase/show", h.showBackupPhrase).Methods(http.MethodPost)
	v1.HandleFunc("/backup-phrase/hide", h.hideBackupPhrase).Methods(http.MethodPost)

	v1.HandleFunc("/panels", h.listPanels).Methods(http.MethodGet)
	v1.HandleFunc("/panels/stream", h.streamPanels).Methods(http.MethodGet)
	v1.HandleFunc("/panels/back", h.back).Methods(http.MethodPost)
	v1.HandleFunc("/panels/{panel}/open", h.openPanel).Methods(http.MethodPost)
	v1.HandleFunc("/panels/{panel}/close", h.closePanel).Methods(http.MethodPost)

	v1.HandleFunc("/peer", h.peerInfo).Methods(http.MethodGet)
	v1.HandleFunc("/peer/reconnect", h.reconnectPeer).Methods(http.MethodPost)
	v1.HandleFunc("/peer/custom", h.setCustomPeer).Methods(http.MethodPost)
	v1.HandleFunc("/peer/custom", h.clearCustomPeers).Methods(http.MethodDelete)

	v1.HandleFunc("/rate", h.getRate).Methods(http.MethodGet)
	v1.HandleFunc("/rate/source", h.changeRateSource).Methods(http.MethodPost)
	v1.HandleFunc("/rate/update", h.updateRate).Methods(http.MethodPost)

	v1.HandleFunc("/wallets", h.listWallets).Methods(http.MethodGet)
	v1.HandleFunc("/wallets", h.createWallet).Methods(http.MethodPost)
	v1.HandleFunc("/wallets/import", h.importWallet).Methods(http.MethodPost)
	v1.HandleFunc("/wallet/config", h.walletConfig).Methods(http.MethodGet)
	v1.HandleFunc("/wallet/chain-state", h.chainState).Methods(http.MethodGet)
	v1.HandleFunc("/wallet/address-type", h.setAddressType).Methods(http.MethodPost)
	v1.HandleFunc("/wallet/derivation-path", h.setDerivationPath).Methods(http.MethodPost)
	v1.HandleFunc("/wallet/passphrase", h.addPassphrase).Methods(http.MethodPost)
	v1.HandleFunc("/wallet/passphrase", h.removePassphrase).Methods(http.MethodDelete)
	v1.HandleFunc("/wallet/rescan", h.rescan).Methods(http.MethodPost)

	v1.HandleFunc("/secret-store/password", h.changePassword).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

func (h *handler) status(w http.ResponseWriter, req *http.Request) {
	status, err := h.svc.Status(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, statusReply{
		Rescanning:    status.Rescanning,
		Connecting:    status.Connecting,
		HasPassphrase: status.HasPassphrase,
		ActivePanel:   status.ActivePanel.String(),
		WalletID:      status.Selection.WalletID,
		Currency:      status.Selection.Currency,
		FiatCurrency:  status.Selection.FiatCurrency,
		CurrentPeer:   newPeerInfo(status.CurrentPeer),
	})
}

func (h *handler) getSettings(w http.ResponseWriter, req *http.Request) {
	s, err := h.svc.GetSettings(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, s)
}

func (h *handler) selectScope(w http.ResponseWriter, req *http.Request) {
	var body selectRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.Select(req.Context(), domain.Selection{
		WalletID:     body.WalletID,
		Currency:     body.Currency,
		FiatCurrency: body.FiatCurrency,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) setToggle(w http.ResponseWriter, req *http.Request) {
	var body toggleRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	toggle := domain.Toggle(mux.Vars(req)["toggle"])
	if err := h.svc.SetToggle(req.Context(), toggle, body.Enabled); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) setCryptoUnit(w http.ResponseWriter, req *http.Request) {
	var body cryptoUnitRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.SetCryptoUnit(req.Context(), body.Unit); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) togglePin(w http.ResponseWriter, req *http.Request) {
	batch, err := h.svc.TogglePin(req.Context())
	h.writeBatch(w, req, batch, err)
}

func (h *handler) setPin(w http.ResponseWriter, req *http.Request) {
	var body pinRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.SetPin(req.Context(), body.Pin); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) pinSuccess(w http.ResponseWriter, req *http.Request) {
	batch, err := h.svc.OnPinSuccess(req.Context())
	h.writeBatch(w, req, batch, err)
}

func (h *handler) backupPhrase(w http.ResponseWriter, req *http.Request) {
	writeData(w, wordsReply{Words: h.svc.BackupPhraseWords()})
}

func (h *handler) showBackupPhrase(w http.ResponseWriter, req *http.Request) {
	words, err := h.svc.ShowBackupPhrase(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, wordsReply{Words: words})
}

func (h *handler) hideBackupPhrase(w http.ResponseWriter, req *http.Request) {
	batch, err := h.svc.HideBackupPhrase(req.Context())
	h.writeBatch(w, req, batch, err)
}

func (h *handler) listPanels(w http.ResponseWriter, req *http.Request) {
	writeData(w, newPanelStates(h.controller.Snapshot()))
}

func (h *handler) back(w http.ResponseWriter, req *http.Request) {
	batch, err := h.svc.Back(req.Context())
	h.writeBatch(w, req, batch, err)
}

func (h *handler) openPanel(w http.ResponseWriter, req *http.Request) {
	p, err := parsePanel(req)
	if err != nil {
		writeError(w, err)
		return
	}

	var batch *panel.Batch
	switch p {
	case domain.PanelImportPhrase:
		batch, err = h.svc.OpenImportPhrase(req.Context())
	case domain.PanelElectrumOptions:
		batch, err = h.svc.OpenElectrumOptions(req.Context())
	default:
		err = fmt.Errorf("%w: panel %s cannot be opened directly", errBadRequest, p)
	}
	h.writeBatch(w, req, batch, err)
}

func (h *handler) closePanel(w http.ResponseWriter, req *http.Request) {
	p, err := parsePanel(req)
	if err != nil {
		writeError(w, err)
		return
	}

	var batch *panel.Batch
	switch p {
	case domain.PanelImportPhrase:
		batch, err = h.svc.CloseImportPhrase(req.Context())
	case domain.PanelElectrumOptions:
		batch, err = h.svc.CloseElectrumOptions(req.Context())
	case domain.PanelBackupPhraseDisplay:
		batch, err = h.svc.HideBackupPhrase(req.Context())
	default:
		err = fmt.Errorf("%w: panel %s cannot be closed directly", errBadRequest, p)
	}
	h.writeBatch(w, req, batch, err)
}

func (h *handler) peerInfo(w http.ResponseWriter, req *http.Request) {
	info, err := h.svc.PeerInfo(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, peerInfoReply{Info: info})
}

func (h *handler) reconnectPeer(w http.ResponseWriter, req *http.Request) {
	peer, err := h.svc.ReconnectPeer(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, newPeerInfo(peer))
}

func (h *handler) setCustomPeer(w http.ResponseWriter, req *http.Request) {
	var body peerRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.SetCustomPeer(req.Context(), domain.Peer{
		Host:     body.Host,
		Port:     body.Port,
		Protocol: body.Protocol,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) clearCustomPeers(w http.ResponseWriter, req *http.Request) {
	if err := h.svc.ClearCustomPeers(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) getRate(w http.ResponseWriter, req *http.Request) {
	rate, err := h.svc.GetExchangeRate(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, rateReply{
		Currency:  rate.Currency,
		Fiat:      rate.Fiat,
		Service:   rate.Service,
		URL:       settings.ExchangeRateSourceURL(rate.Service),
		Rate:      rate.Rate.String(),
		UpdatedAt: rate.UpdatedAt.Unix(),
	})
}

func (h *handler) changeRateSource(w http.ResponseWriter, req *http.Request) {
	var body rateSourceRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.ChangeExchangeRateSource(req.Context(), body.Source); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) updateRate(w http.ResponseWriter, req *http.Request) {
	if err := h.svc.UpdateExchangeRate(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) listWallets(w http.ResponseWriter, req *http.Request) {
	wallets, err := h.svc.ListWallets(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	ids := make([]string, 0, len(wallets))
	for _, w := range wallets {
		ids = append(ids, w.ID)
	}
	writeData(w, walletsReply{WalletIDs: ids})
}

func (h *handler) createWallet(w http.ResponseWriter, req *http.Request) {
	walletID, err := h.svc.CreateWallet(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, walletReply{WalletID: walletID})
}

func (h *handler) importWallet(w http.ResponseWriter, req *http.Request) {
	var body importRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	walletID, err := h.svc.ImportMnemonic(req.Context(), body.Mnemonic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, walletReply{WalletID: walletID})
}

func (h *handler) walletConfig(w http.ResponseWriter, req *http.Request) {
	cfg, err := h.svc.GetWalletConfig(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.svc.Status(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, walletConfigReply{
		AddressType:       string(cfg.AddressType),
		KeyDerivationPath: string(cfg.KeyDerivationPath),
		PathTemplate: settings.DerivationPathTemplate(
			cfg.KeyDerivationPath, status.Selection.Currency,
		),
		HasPassphrase: cfg.HasPassphrase,
	})
}

func (h *handler) chainState(w http.ResponseWriter, req *http.Request) {
	state, err := h.svc.GetChainState(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, state)
}

func (h *handler) setAddressType(w http.ResponseWriter, req *http.Request) {
	var body addressTypeRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.SetAddressType(req.Context(), body.AddressType); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) setDerivationPath(w http.ResponseWriter, req *http.Request) {
	var body derivationPathRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.SetKeyDerivationPath(
		req.Context(), body.Path, body.Rescan,
	); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) addPassphrase(w http.ResponseWriter, req *http.Request) {
	var body passphraseRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.AddPassphrase(req.Context(), body.Passphrase); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) removePassphrase(w http.ResponseWriter, req *http.Request) {
	if err := h.svc.RemovePassphrase(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) changePassword(w http.ResponseWriter, req *http.Request) {
	var body passwordRequest
	if err := decodeBody(req, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.svc.ChangeSecretStorePassword(
		req.Context(), body.CurrentPassword, body.NewPassword,
	); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

func (h *handler) rescan(w http.ResponseWriter, req *http.Request) {
	if err := h.svc.Rescan(req.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, nil)
}

// writeBatch replies with the id of the batch of transitions started by the
// request. If the wait query param is set, the reply is sent once every
// transition has settled.
func (h *handler) writeBatch(
	w http.ResponseWriter, req *http.Request, batch *panel.Batch, err error,
) {
	if err != nil {
		writeError(w, err)
		return
	}
	if batch == nil {
		writeData(w, batchReply{Settled: true})
		return
	}

	if wait, _ := strconv.ParseBool(req.URL.Query().Get("wait")); wait {
		if err := batch.Wait(req.Context()); err != nil {
			writeError(w, err)
			return
		}
	}

	settled := false
	select {
	case <-batch.Done():
		settled = true
	default:
	}
	writeData(w, batchReply{BatchID: batch.ID, Settled: settled})
}

func parsePanel(req *http.Request) (domain.Panel, error) {
	p, err := domain.ParsePanel(mux.Vars(req)["panel"])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return p, nil
}

func decodeBody(req *http.Request, v interface{}) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid body: %s", errBadRequest, err)
	}
	return nil
}
