// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/classpulse/models"
)

// ackBuffer bounds pending acks between the read and write pumps.
const ackBuffer = 8

// writeTimeout bounds each socket write so a peer that stops reading
// cannot stall the write pump indefinitely.
const writeTimeout = 10 * time.Second

// ServeWS returns the handler for GET /ws. Each connection gets a hub
// registration, a read pump dispatching messages to the coordinator,
// and a write pump serializing events and acks onto the socket.
func ServeWS(hub *Hub, sess Session, allowedOrigin string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
			return
		}

		connectionID, events := hub.Register()
		slog.Info("socket connected", "connection_id", connectionID, "remote", r.RemoteAddr)

		acks := make(chan models.Ack, ackBuffer)
		done := make(chan struct{})
		go writePump(conn, events, acks, done)
		readPump(conn, hub, sess, connectionID, acks, done)
	}
}

// readPump reads client messages until the connection drops or the
// write pump dies, then tears the connection down. Disconnect is
// fire-and-forget: no ack is sent.
func readPump(conn *websocket.Conn, hub *Hub, sess Session, connectionID string, acks chan<- models.Ack, done <-chan struct{}) {
	defer func() {
		hub.Unregister(connectionID)
		sess.Disconnect(connectionID)
		conn.Close()
		slog.Info("socket disconnected", "connection_id", connectionID)
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("socket read failed", "connection_id", connectionID, "error", err)
			}
			return
		}
		// Guarded send: a dead write pump must never wedge the reader
		// behind a full ack buffer, or the teardown defer would not run
		// and the roster entry would leak.
		select {
		case acks <- HandleMessage(sess, hub, connectionID, msg):
		case <-done:
			return
		}
	}
}

// writePump is the single writer for a connection. It exits when the
// hub closes the event channel (unregister) or a write fails, closing
// the socket and the done channel on the way out so the reader
// unblocks too.
func writePump(conn *websocket.Conn, events <-chan models.Event, acks <-chan models.Ack, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case ack := <-acks:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ack); err != nil {
				return
			}
		}
	}
}
