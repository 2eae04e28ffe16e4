package httpinterface

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// streamPanels upgrades the connection to a websocket and pushes the states
// of the panels at every change, starting from the current ones.
func (h *handler) streamPanels(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.WithError(err).Debug("failed to upgrade panel stream")
		return
	}
	defer conn.Close()

	panelStreams.Inc()
	defer panelStreams.Dec()

	states, unsubscribe := h.controller.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := writeStates(conn, newPanelStates(h.controller.Snapshot())); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-req.Context().Done():
			return
		case s, ok := <-states:
			if !ok {
				return
			}
			if err := writeStates(conn, newPanelStates(s)); err != nil {
				log.WithError(err).Debug("panel stream closed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeStates(conn *websocket.Conn, states []panelState) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(states)
}

// readUntilClosed drains the client messages to process control frames and
// notifies once the connection is closed.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
