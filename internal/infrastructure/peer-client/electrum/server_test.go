package electrum_test

import (
	"bufio"
	"encoding/json"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/stretchr/testify/require"
)

type handler func(params []json.RawMessage) (result, rpcErr interface{})

// fakeServer is a minimal Electrum server speaking plain tcp.
type fakeServer struct {
	listener net.Listener
	handlers map[string]handler

	lock  sync.Mutex
	conns int
}

func newFakeServer(t *testing.T, handlers map[string]handler) *fakeServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{
		listener: listener,
		handlers: map[string]handler{
			"server.version": func([]json.RawMessage) (interface{}, interface{}) {
				return []string{"ElectrumX 1.16.0", "1.4"}, nil
			},
		},
	}
	for method, h := range handlers {
		s.handlers[method] = h
	}
	go s.serve()
	t.Cleanup(func() { listener.Close() })
	return s
}

func (s *fakeServer) peer() domain.Peer {
	host, port, _ := net.SplitHostPort(s.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return domain.Peer{Host: host, Port: p, Protocol: domain.PeerProtocolTCP}
}

func (s *fakeServer) numOfConns() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.conns
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.lock.Lock()
		s.conns++
		s.lock.Unlock()
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer func() {
		conn.Close()
		s.lock.Lock()
		s.conns--
		s.lock.Unlock()
	}()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}
		var req struct {
			ID     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		h, ok := s.handlers[req.Method]
		if !ok {
			resp["error"] = map[string]interface{}{
				"code": -32601, "message": "unknown method " + req.Method,
			}
		} else {
			result, rpcErr := h(req.Params)
			if rpcErr != nil {
				resp["error"] = rpcErr
			} else {
				resp["result"] = result
			}
		}

		buf, _ := json.Marshal(resp)
		if _, err := conn.Write(append(buf, '\n')); err != nil {
			return
		}
	}
}

// unreachablePeer returns the address of a closed listener.
func unreachablePeer(t *testing.T) domain.Peer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, _ := net.SplitHostPort(listener.Addr().String())
	listener.Close()
	p, _ := strconv.Atoi(port)
	return domain.Peer{Host: host, Port: p, Protocol: domain.PeerProtocolTCP}
}
