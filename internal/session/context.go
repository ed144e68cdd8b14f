// ABOUTME: Session context: the mutable operator state threaded through the session.
// ABOUTME: Constructed once at startup and owned by the Manager; no package-level singleton.

package session

// Context holds the operator state that accumulates across a run:
// credentials from the auth gateway, the remembered username, the active
// conversation id, and the pending participant id for conversation
// creation. One instance exists per process; the Manager owns it and all
// reads and writes go through Manager methods so the frame-handling
// goroutine and the operator goroutine never race on it.
type Context struct {
	// Token is the JWT from the last successful login.
	Token string

	// UserID is the local user's id from the last successful login.
	UserID string

	// Username is the name the operator last logged in as.
	Username string

	// ConversationID is the active conversation. Set automatically at
	// most once by the auto-fill heuristic; a manual override always
	// wins and is never replaced automatically.
	ConversationID string

	// ParticipantID is the pending peer user id for create_conversation.
	ParticipantID string
}
