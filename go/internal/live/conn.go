package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout   = 10 * time.Second
	pongTimeout    = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 1 << 20 // pushed snapshots carry full player lists
)

// transport wraps one websocket connection to the auction server. Reads
// happen from a single goroutine; writes are serialized by a mutex because
// commands originate from the console goroutine while pings come from the
// keepalive loop.
type transport struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func dialTransport(ctx context.Context, socketURL string) (*transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", socketURL, err)
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	return &transport{conn: conn}, nil
}

// readEvent blocks until the next server event arrives or the connection
// breaks.
func (t *transport) readEvent() (ServerEvent, error) {
	var event ServerEvent
	if err := t.conn.ReadJSON(&event); err != nil {
		return ServerEvent{}, err
	}
	t.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	return event, nil
}

// writeJSON sends one message with a write deadline.
func (t *transport) writeJSON(v interface{}) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return t.conn.WriteJSON(v)
}

// ping keeps the connection alive between pushed events.
func (t *transport) ping() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return t.conn.WriteMessage(websocket.PingMessage, nil)
}

// close tears the connection down, sending a best-effort close frame first.
func (t *transport) close() {
	t.writeMu.Lock()
	t.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	t.writeMu.Unlock()
	t.conn.Close()
}
