// Package session owns the WebSocket connection to the chat backend and
// the state that accumulates across a console run.
//
// # State machine
//
// The connection moves through three states:
//
//	disconnected -> connecting -> open -> disconnected
//
// Connecting may also fall straight back to disconnected on dial failure
// or cancellation. There is no distinct closing state: a close request
// transitions to disconnected as soon as the transport confirms closure.
// Reconnection is always a manual operator action.
//
// # Frame handling
//
// The transport delivers inbound frames one at a time on a single read
// goroutine. Each frame is processed to completion - raw payload logged,
// classified, conversation-id heuristic applied, listener notified -
// before the next frame is read, so classification and session-context
// reads never race each other.
//
// # Invariants
//
//   - A command is sent if and only if the connection is open.
//   - Every frame, sent or received, is logged verbatim before any
//     interpretation is attempted.
//   - The conversation id is auto-filled at most once; manual edits win.
//
// # Notifications
//
// The Manager pushes all observable activity through a Listener rather
// than callbacks capturing outer state: each transport event is a
// synchronous method call on the manager, and the manager holds its own
// references, so there is no stale-closure state to go wrong.
package session
