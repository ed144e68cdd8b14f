// ABOUTME: Session manager owning the socket connection's lifecycle state machine.
// ABOUTME: Turns inbound frames into classified events and guards every send behind an open connection.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/2389/chat-probe/internal/framelog"
	"github.com/2389/chat-probe/internal/protocol"
)

// Session errors.
var (
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
)

// Status is the connection lifecycle state.
type Status string

// Connection states. Disconnected is both the initial and the terminal
// state; a new connect attempt restarts the machine.
const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusOpen         Status = "open"
)

// Listener receives session notifications for display. Each transport
// event arrives as a synchronous method call; the listener must not call
// back into the Manager from these methods.
type Listener interface {
	// OnEvent delivers a classified inbound frame.
	OnEvent(ev protocol.Event)

	// OnStatus reports a lifecycle transition.
	OnStatus(s Status)

	// OnSystem reports a lifecycle notice (connected, disconnected).
	OnSystem(text string)

	// OnFailure reports an operation that failed. Every failure path
	// produces exactly one call; nothing fails silently.
	OnFailure(text string)
}

// Manager owns the single socket connection and the session context. All
// state transitions happen under its mutex; inbound frames are handled
// sequentially on the transport's read goroutine, each one to completion
// before the next.
type Manager struct {
	mu         sync.Mutex
	status     Status
	transport  Transport
	cancelDial context.CancelFunc
	sctx       *Context

	dialer   Dialer
	frames   *framelog.Log
	listener Listener
	logger   *slog.Logger
}

// NewManager creates a session manager in the disconnected state. The
// context is the process-wide session context, created by the caller at
// startup and owned by the manager from here on.
func NewManager(dialer Dialer, frames *framelog.Log, sctx *Context, listener Listener, logger *slog.Logger) *Manager {
	return &Manager{
		status:   StatusDisconnected,
		sctx:     sctx,
		dialer:   dialer,
		frames:   frames,
		listener: listener,
		logger:   logger,
	}
}

// Status returns the current connection state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Connect starts an asynchronous connection attempt to addr. It returns
// ErrAlreadyConnected unless the session is disconnected; the attempt
// itself completes on a background goroutine, transitioning to open on
// success or back to disconnected on failure. There is no automatic
// reconnect: a failed or dropped connection stays down until the
// operator connects again.
func (m *Manager) Connect(addr string) error {
	m.mu.Lock()
	if m.status != StatusDisconnected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}

	dialCtx, cancel := context.WithCancel(context.Background())
	m.status = StatusConnecting
	m.cancelDial = cancel
	m.mu.Unlock()

	m.logger.Info("connecting", "addr", addr)
	m.listener.OnStatus(StatusConnecting)

	go m.dial(dialCtx, addr)
	return nil
}

// dial performs the transport open and completes the connect transition.
func (m *Manager) dial(ctx context.Context, addr string) {
	t, err := m.dialer.Dial(ctx, addr)

	m.mu.Lock()
	if m.status != StatusConnecting {
		// A disconnect raced the dial and already won. Discard the
		// transport if the dial happened to succeed anyway.
		m.mu.Unlock()
		if err == nil {
			t.Close()
		}
		return
	}

	if err != nil {
		m.status = StatusDisconnected
		m.cancelDial = nil
		m.mu.Unlock()

		m.logger.Warn("connect failed", "addr", addr, "error", err)
		m.listener.OnStatus(StatusDisconnected)
		m.listener.OnFailure(fmt.Sprintf("connect failed: %v", err))
		return
	}

	m.transport = t
	m.cancelDial = nil
	m.status = StatusOpen
	m.mu.Unlock()

	m.logger.Info("connected", "addr", addr)
	m.listener.OnStatus(StatusOpen)
	m.listener.OnSystem("connected to " + addr)

	go m.readLoop(t)
}

// Disconnect requests connection shutdown. While connecting it cancels
// the in-flight dial immediately; while open it closes the transport and
// lets the read loop's close observation drive the state transition,
// which is the only path that clears the transport handle. Calling it in
// any other state, or twice, is a no-op beyond a redundant close request.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	switch m.status {
	case StatusConnecting:
		cancel := m.cancelDial
		m.cancelDial = nil
		m.status = StatusDisconnected
		m.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		m.logger.Info("connect attempt canceled")
		m.listener.OnStatus(StatusDisconnected)
		m.listener.OnSystem("connection attempt canceled")

	case StatusOpen:
		t := m.transport
		m.mu.Unlock()

		if t == nil {
			return
		}
		if err := t.Close(); err != nil {
			m.logger.Debug("transport close", "error", err)
		}

	default:
		m.mu.Unlock()
	}
}

// Send encodes the command and transmits it. It requires an open
// connection; otherwise the command is dropped, a failure notice is
// emitted, and ErrNotConnected is returned. On success exactly one sent
// frame-log entry is appended, with the exact encoded payload, before
// the transport transmit.
func (m *Manager) Send(cmd protocol.Command) error {
	payload, err := protocol.Encode(cmd)
	if err != nil {
		m.listener.OnFailure(fmt.Sprintf("encode failed: %v", err))
		return err
	}

	m.mu.Lock()
	t := m.transport
	if m.status != StatusOpen || t == nil {
		m.mu.Unlock()
		m.listener.OnFailure("not connected")
		return ErrNotConnected
	}
	m.mu.Unlock()

	m.frames.Append(framelog.DirectionSent, payload)

	if err := t.WriteText(payload); err != nil {
		m.logger.Warn("send failed", "error", err)
		m.listener.OnFailure(fmt.Sprintf("send failed: %v", err))
		return fmt.Errorf("sending frame: %w", err)
	}
	return nil
}

// readLoop delivers inbound frames sequentially until the transport
// dies. It runs on its own goroutine, one per live connection.
func (m *Manager) readLoop(t Transport) {
	for {
		raw, err := t.ReadText()
		if err != nil {
			m.closed(t, err)
			return
		}
		m.HandleFrame(raw)
	}
}

// HandleFrame processes one inbound frame to completion: the raw payload
// is logged first, so malformed frames still leave a faithful wire
// trace, then classified and applied to the session context before the
// listener sees the event.
func (m *Manager) HandleFrame(raw string) {
	m.frames.Append(framelog.DirectionReceived, raw)

	ev := protocol.Classify(raw)
	m.autofill(ev)
	m.listener.OnEvent(ev)
}

// autofill applies the conversation-id heuristic. Only chat and info
// events can set the id, and only when it is currently unset: manual
// operator edits and earlier auto-fills both take precedence. Error and
// unparseable events never touch the session context.
func (m *Manager) autofill(ev protocol.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sctx.ConversationID != "" {
		return
	}

	switch ev.Kind {
	case protocol.KindChat:
		m.sctx.ConversationID = ev.Conversation
		m.logger.Info("conversation id auto-filled from chat frame", "conversation_id", ev.Conversation)
	case protocol.KindInfo:
		if id, ok := protocol.SniffConversationID(ev.Text); ok {
			m.sctx.ConversationID = id
			m.logger.Info("conversation id auto-filled from info text", "conversation_id", id)
		}
	}
}

// closed completes the transition to disconnected after the transport
// reports closure. The transport identity check guards against a stale
// read loop from an earlier connection racing a newer one.
func (m *Manager) closed(t Transport, err error) {
	m.mu.Lock()
	if m.transport != t {
		m.mu.Unlock()
		return
	}
	m.transport = nil
	m.status = StatusDisconnected
	m.mu.Unlock()

	m.listener.OnStatus(StatusDisconnected)
	if isExpectedClose(err) {
		m.logger.Info("disconnected")
		m.listener.OnSystem("disconnected")
	} else {
		m.logger.Warn("connection lost", "error", err)
		m.listener.OnFailure(fmt.Sprintf("connection lost: %v", err))
	}
}

// Snapshot returns a copy of the session context.
func (m *Manager) Snapshot() Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.sctx
}

// SetCredentials records a successful login.
func (m *Manager) SetCredentials(token, userID, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sctx.Token = token
	m.sctx.UserID = userID
	m.sctx.Username = username
}

// SetConversationID records a manual conversation-id override. Manual
// edits always win: the auto-fill heuristic never replaces a non-empty
// value. Setting it to empty re-arms the heuristic.
func (m *Manager) SetConversationID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sctx.ConversationID = id
}

// SetParticipantID records the pending peer for conversation creation.
func (m *Manager) SetParticipantID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sctx.ParticipantID = id
}
