package ports

import (
	"context"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

// PeerClient manages the connection with the Electrum peer of every
// currency. There is at most one live connection per currency.
type PeerClient interface {
	// Start connects to the first reachable peer among customPeers, if any,
	// otherwise among peers.
	Start(
		ctx context.Context, currency string, peers, customPeers []domain.Peer,
	) (domain.Peer, error)
	// Stop closes the connection of the currency. It's idempotent.
	Stop(ctx context.Context, currency string) error
}
