package rateservice

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/circuitbreaker"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/util"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	defaultTimeout = 15 * time.Second
)

// Config allows to override the base urls of the price sources. Empty fields
// fall back to the public endpoints.
type Config struct {
	Timeout      time.Duration
	CoingeckoURL string
	CoincapURL   string
}

// source is a public price api.
type source interface {
	url(currency, fiat string) (string, error)
	parse(body, currency, fiat string) (decimal.Decimal, error)
}

type service struct {
	timeout  time.Duration
	sources  map[string]source
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewService returns a RateService fetching prices from coingecko and
// coincap. Each source is guarded by its own circuit breaker.
func NewService(cfg Config) ports.RateService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CoingeckoURL == "" {
		cfg.CoingeckoURL = coingeckoURL
	}
	if cfg.CoincapURL == "" {
		cfg.CoincapURL = coincapURL
	}

	sources := map[string]source{
		domain.RateSourceCoingecko: coingecko{strings.TrimSuffix(cfg.CoingeckoURL, "/")},
		domain.RateSourceCoincap:   coincap{strings.TrimSuffix(cfg.CoincapURL, "/")},
	}
	breakers := make(map[string]*gobreaker.CircuitBreaker, len(sources))
	for name := range sources {
		breakers[name] = circuitbreaker.NewCircuitBreaker(name)
	}

	return &service{cfg.Timeout, sources, breakers}
}

func (s *service) FetchRate(
	ctx context.Context, currency, fiat, sourceName string,
) (decimal.Decimal, error) {
	src, ok := s.sources[sourceName]
	if !ok {
		return decimal.Zero, fmt.Errorf(
			"%w: %s", domain.ErrUnknownRateSource, sourceName,
		)
	}
	fiat = strings.ToLower(fiat)
	url, err := src.url(currency, fiat)
	if err != nil {
		return decimal.Zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	iRate, err := s.breakers[sourceName].Execute(func() (interface{}, error) {
		status, body, err := util.NewHTTPRequest(
			ctx, http.MethodGet, url, "",
			map[string]string{"Accept": "application/json"},
		)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%s responded with status %d: %s", sourceName, status, body)
		}
		return src.parse(body, currency, fiat)
	})
	if err != nil {
		log.WithError(err).Debugf("failed to fetch %s/%s rate from %s", currency, fiat, sourceName)
		return decimal.Zero, err
	}

	return iRate.(decimal.Decimal), nil
}

func (s *service) ListSources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
