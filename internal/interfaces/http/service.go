package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/settings"
	interfaces "github.com/moonshine-wallet/moonshine-daemon/internal/interfaces"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type ServiceOpts struct {
	Port int

	SettingsSvc *settings.Service
	Controller  *panel.Controller
}

func (o ServiceOpts) validate() error {
	if o.Port < 0 || o.Port > 65535 {
		return fmt.Errorf("invalid listening port %d", o.Port)
	}
	if o.SettingsSvc == nil {
		return fmt.Errorf("settings app service must not be null")
	}
	if o.Controller == nil {
		return fmt.Errorf("panel controller must not be null")
	}
	return nil
}

type service struct {
	opts     ServiceOpts
	handler  http.Handler
	server   *http.Server
}

// NewService returns the HTTP interface of the daemon. Along with the
// settings API it serves the panel state stream and the metrics.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	return &service{opts: opts, handler: newRouter(opts)}, nil
}

// NewHandler returns the router of the interface without binding any port.
func NewHandler(opts ServiceOpts) (http.Handler, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}
	return newRouter(opts), nil
}

func newRouter(opts ServiceOpts) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	newHandler(opts.SettingsSvc, opts.Controller).routes(r)
	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.Debugf(
			"%s %s served in %s", req.Method, req.URL.Path, time.Since(start),
		)
	})
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("http interface stopped unexpectedly")
		}
	}()

	log.Infof("http interface is listening on %s", lis.Addr())
	return nil
}

func (s *service) Stop() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
		s.server.Close()
	}
	log.Info("stopped http interface")
}
