package electrum

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	goelectrum "github.com/checksum0/go-electrum/electrum"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultProbeRate      = 5
)

// Config ...
type Config struct {
	// RequestTimeout bounds dial plus handshake and every single request.
	RequestTimeout time.Duration
	// ProbeRate is the max number of peers probed per second when looking for
	// a reachable one.
	ProbeRate int
	// InsecureTLS skips the verification of the server certificate. Many
	// Electrum servers use self-signed ones.
	InsecureTLS bool
}

var _ ports.PeerClient = (*Service)(nil)

// Service keeps at most one live connection with an Electrum server for
// every currency.
type Service struct {
	cfg     Config
	limiter ratelimit.Limiter

	lock    sync.RWMutex
	clients map[string]*conn
}

// NewService ...
func NewService(cfg Config) *Service {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ProbeRate <= 0 {
		cfg.ProbeRate = defaultProbeRate
	}

	return &Service{
		cfg:     cfg,
		limiter: ratelimit.New(cfg.ProbeRate),
		clients: make(map[string]*conn),
	}
}

// Start connects to the first peer that completes the handshake. Custom peers
// are tried in order and, if present, replace the default pool, which is
// tried in random order instead. A previous connection of the currency is
// closed only once the new one is established.
func (s *Service) Start(
	ctx context.Context, currency string, peers, customPeers []domain.Peer,
) (domain.Peer, error) {
	candidates := append([]domain.Peer{}, customPeers...)
	if len(candidates) <= 0 {
		candidates = append(candidates, peers...)
		rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	if len(candidates) <= 0 {
		return domain.Peer{}, fmt.Errorf("%w for %s", ErrNoPeers, currency)
	}

	errs := make([]error, 0, len(candidates))
	for _, peer := range candidates {
		if err := ctx.Err(); err != nil {
			return domain.Peer{}, err
		}
		s.limiter.Take()

		c, err := s.connect(ctx, peer)
		if err != nil {
			log.WithError(err).Debugf("electrum: %s peer %s unreachable", currency, peer)
			errs = append(errs, fmt.Errorf("%s: %w", peer, err))
			continue
		}

		s.lock.Lock()
		prev := s.clients[currency]
		s.clients[currency] = c
		s.lock.Unlock()

		if prev != nil {
			prev.close()
		}

		log.Infof("electrum: %s connected to %s", currency, peer)
		return peer, nil
	}

	return domain.Peer{}, fmt.Errorf(
		"%w for %s: %w", ErrNoReachablePeer, currency, errors.Join(errs...),
	)
}

// Stop closes the connection of the currency, if any.
func (s *Service) Stop(_ context.Context, currency string) error {
	s.lock.Lock()
	c := s.clients[currency]
	delete(s.clients, currency)
	s.lock.Unlock()

	if c != nil {
		c.close()
		log.Debugf("electrum: %s disconnected from %s", currency, c.peer)
	}
	return nil
}

// CurrentPeer returns the peer the currency is connected to.
func (s *Service) CurrentPeer(currency string) (domain.Peer, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	c, ok := s.clients[currency]
	if !ok {
		return domain.Peer{}, false
	}
	return c.peer, true
}

// GetHistory returns the confirmed and mempool transactions of the script
// hash on the peer of the currency.
func (s *Service) GetHistory(
	ctx context.Context, currency, scriptHash string,
) ([]*goelectrum.GetMempoolResult, error) {
	c, err := s.conn(currency)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	history, err := c.client.GetHistory(ctx, scriptHash)
	if err != nil {
		return nil, fmt.Errorf("%s get history: %w", c.peer, err)
	}
	return history, nil
}

// ListUnspent returns the unspent outputs of the script hash on the peer of
// the currency.
func (s *Service) ListUnspent(
	ctx context.Context, currency, scriptHash string,
) ([]*goelectrum.ListUnspentResult, error) {
	c, err := s.conn(currency)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	unspents, err := c.client.ListUnspent(ctx, scriptHash)
	if err != nil {
		return nil, fmt.Errorf("%s list unspent: %w", c.peer, err)
	}
	return unspents, nil
}

// Close closes every live connection.
func (s *Service) Close() {
	s.lock.Lock()
	clients := s.clients
	s.clients = make(map[string]*conn)
	s.lock.Unlock()

	for _, c := range clients {
		c.close()
	}
}

func (s *Service) conn(currency string) (*conn, error) {
	s.lock.RLock()
	c, ok := s.clients[currency]
	s.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConnected, currency)
	}
	if c.isClosed() {
		return nil, fmt.Errorf("%w: %s", ErrConnectionClosed, c.peer)
	}
	return c, nil
}

func (s *Service) connect(ctx context.Context, peer domain.Peer) (*conn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	c, err := dial(ctx, peer, s.cfg.InsecureTLS)
	if err != nil {
		return nil, err
	}
	software, err := c.handshake(ctx)
	if err != nil {
		c.close()
		return nil, err
	}
	log.Debugf("electrum: %s runs %s", peer, software)

	return c, nil
}
