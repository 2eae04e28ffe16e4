package httpinterface

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/settings"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type response struct {
	Ok     bool        `json:"ok"`
	Reason string      `json:"reason,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, response{Ok: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Warn("request failed")
	} else {
		log.WithError(err).Debug("request rejected")
	}
	writeJSON(w, status, response{Reason: err.Error()})
}

func notFound(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusNotFound, response{
		Reason: fmt.Sprintf("route %s %s not found", req.Method, req.URL.Path),
	})
}

func methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, response{
		Reason: fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path),
	})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, settings.ErrValidation),
		errors.Is(err, panel.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidPanel):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
