// ABOUTME: Transport abstraction between the session manager and the underlying socket.
// ABOUTME: A Dialer opens Transports; the manager owns at most one live Transport at a time.

package session

import "context"

// Transport is one live frame connection to the socket server. The
// manager reads frames from it on a single goroutine and writes from
// operator actions; implementations must support one concurrent reader
// and one concurrent writer.
type Transport interface {
	// ReadText blocks until the next inbound text frame or a terminal
	// error. After an error the transport is dead; every transport
	// eventually returns an error once closed, from either side.
	ReadText() (string, error)

	// WriteText sends one text frame.
	WriteText(payload string) error

	// Close requests connection shutdown. The pending ReadText call
	// observes the closure and returns an error, which is what drives
	// the manager's transition back to disconnected.
	Close() error
}

// Dialer opens transports. The context cancels an in-flight dial, which
// is how a disconnect issued during the connecting state terminates the
// attempt.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Transport, error)
}
