// ABOUTME: WebSocket-backed Transport implementation using gorilla/websocket.
// ABOUTME: Text frames in both directions, close handshake on shutdown.

package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketDialer dials the socket server over WebSocket.
type WebSocketDialer struct {
	// HandshakeTimeout bounds the WebSocket opening handshake. Zero
	// means no limit beyond context cancellation.
	HandshakeTimeout time.Duration
}

// Dial opens a WebSocket connection to addr (a ws:// or wss:// URL).
// Cancelling ctx aborts an in-flight dial.
func (d *WebSocketDialer) Dial(ctx context.Context, addr string) (Transport, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: d.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}

	return &wsTransport{conn: conn}, nil
}

// wsTransport wraps a gorilla connection as a Transport.
type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) ReadText() (string, error) {
	for {
		msgType, data, err := t.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		// The chat protocol is text-only; binary frames are decoded the
		// same way since the payload is UTF-8 JSON either way.
		if msgType == websocket.TextMessage || msgType == websocket.BinaryMessage {
			return string(data), nil
		}
	}
}

func (t *wsTransport) WriteText(payload string) error {
	return t.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

func (t *wsTransport) Close() error {
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	deadline := time.Now().Add(time.Second)
	t.conn.WriteControl(websocket.CloseMessage, message, deadline)
	return t.conn.Close()
}

// isExpectedClose reports whether a read error is the normal result of
// closing the connection, as opposed to a transport failure.
func isExpectedClose(err error) bool {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}
