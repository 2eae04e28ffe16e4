package electrum

import "errors"

var (
	// ErrNoPeers is returned when starting a currency with an empty pool.
	ErrNoPeers = errors.New("no peers to connect to")
	// ErrNoReachablePeer is returned when every candidate failed the
	// handshake.
	ErrNoReachablePeer = errors.New("no reachable peer")
	// ErrNotConnected is returned when making a request for a currency that
	// has no live connection.
	ErrNotConnected = errors.New("currency not connected to any peer")
	// ErrConnectionClosed ...
	ErrConnectionClosed = errors.New("connection closed")
)
