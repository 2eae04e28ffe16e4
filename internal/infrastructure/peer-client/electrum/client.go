package electrum

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"sync"

	goelectrum "github.com/checksum0/go-electrum/electrum"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// conn is a live connection with an Electrum server.
type conn struct {
	peer   domain.Peer
	client *goelectrum.Client
	done   chan struct{}

	closeOnce sync.Once
}

func dial(
	ctx context.Context, peer domain.Peer, insecureTLS bool,
) (*conn, error) {
	addr := net.JoinHostPort(peer.Host, strconv.Itoa(peer.Port))

	var client *goelectrum.Client
	var err error
	if peer.Protocol == domain.PeerProtocolTCP {
		client, err = goelectrum.NewClientTCP(ctx, addr)
	} else {
		client, err = goelectrum.NewClientSSL(ctx, addr, &tls.Config{
			ServerName:         peer.Host,
			InsecureSkipVerify: insecureTLS,
		})
	}
	if err != nil {
		return nil, err
	}

	c := &conn{
		peer:   peer,
		client: client,
		done:   make(chan struct{}),
	}
	go c.drainErrors()

	return c, nil
}

// handshake negotiates the protocol version and returns the server software.
func (c *conn) handshake(ctx context.Context) (string, error) {
	software, _, err := c.client.ServerVersion(ctx)
	if err != nil {
		return "", err
	}
	return software, nil
}

// drainErrors consumes the transport errors of the client, which otherwise
// blocks on reporting them.
func (c *conn) drainErrors() {
	for {
		select {
		case err := <-c.client.Error:
			if err != nil {
				log.WithError(err).Debugf("electrum: connection with %s dropped", c.peer)
			}
		case <-c.done:
			return
		}
	}
}

func (c *conn) isClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return c.client.IsShutdown()
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.client.Shutdown()
	})
}
