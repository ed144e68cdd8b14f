// ABOUTME: Tests for console rendering and command handling.
// ABOUTME: Uses an in-memory output buffer with colors disabled so assertions see plain text.

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/chat-probe/internal/authgw"
	"github.com/2389/chat-probe/internal/config"
	"github.com/2389/chat-probe/internal/framelog"
	"github.com/2389/chat-probe/internal/protocol"
	"github.com/2389/chat-probe/internal/session"
)

type failingDialer struct{}

func (failingDialer) Dial(ctx context.Context, addr string) (session.Transport, error) {
	return nil, errors.New("dial refused")
}

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	out := &bytes.Buffer{}
	cfg := config.Default()
	auth := authgw.New(cfg.Auth.URL, time.Second)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := New(cfg, failingDialer{}, auth, framelog.New(), strings.NewReader(""), out, logger)
	return c, out
}

func TestSplitCredentials(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		username string
		password string
		ok       bool
	}{
		{"two fields", "alice s3cret", "alice", "s3cret", true},
		{"extra whitespace", "  alice   s3cret  ", "alice", "s3cret", true},
		{"missing password", "alice", "", "", false},
		{"too many fields", "alice s3cret extra", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, password, ok := splitCredentials(tt.args)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.username, username)
			assert.Equal(t, tt.password, password)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0199c4a7…", shortID("0199c4a7-3f0e-7aa6-9e42-7c2f4d9b1a55"))
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "", shortID(""))
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"type\": \"say\"\n}", prettyJSON(`{"type":"say"}`))
	assert.Equal(t, "not json at all", prettyJSON("not json at all"))
}

func TestOnEventRendering(t *testing.T) {
	tests := []struct {
		name string
		ev   protocol.Event
		want string
	}{
		{
			name: "chat shows abbreviated sender",
			ev:   protocol.Event{Kind: protocol.KindChat, From: "0199c4a7-3f0e-7aa6-9e42-7c2f4d9b1a55", Text: "hello"},
			want: "<0199c4a7…> hello",
		},
		{
			name: "info",
			ev:   protocol.Event{Kind: protocol.KindInfo, Text: "AUTH OK abc"},
			want: "[info] AUTH OK abc",
		},
		{
			name: "error",
			ev:   protocol.Event{Kind: protocol.KindError, Text: "REAUTH FORBIDDEN"},
			want: "[error] REAUTH FORBIDDEN",
		},
		{
			name: "unparseable shows raw payload",
			ev:   protocol.Event{Kind: protocol.KindUnparseable, Raw: `{"type":"mystery"}`},
			want: `[unparseable] {"type":"mystery"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(t)
			c.OnEvent(tt.ev)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestSayRequiresConversation(t *testing.T) {
	c, out := newTestConsole(t)

	c.say("hello")

	assert.Contains(t, out.String(), "no active conversation")
	assert.Zero(t, c.frames.Len())
}

func TestAuthRequiresToken(t *testing.T) {
	c, out := newTestConsole(t)

	c.authenticate()

	assert.Contains(t, out.String(), "no token")
}

func TestConvRejectsNonUUIDParticipant(t *testing.T) {
	c, out := newTestConsole(t)

	c.dispatch(context.Background(), "/conv not-a-uuid")

	assert.Contains(t, out.String(), "not a UUID")
	assert.Empty(t, c.manager.Snapshot().ParticipantID)
}

func TestUseConversationOverrideAndClear(t *testing.T) {
	c, out := newTestConsole(t)

	c.dispatch(context.Background(), "/use 0199c4a7-3f0e-7aa6-9e42-7c2f4d9b1a55")
	require.Equal(t, "0199c4a7-3f0e-7aa6-9e42-7c2f4d9b1a55", c.manager.Snapshot().ConversationID)

	c.dispatch(context.Background(), "/use")
	assert.Empty(t, c.manager.Snapshot().ConversationID)
	assert.Contains(t, out.String(), "auto-fill re-armed")
}

func TestDispatchUnknownCommand(t *testing.T) {
	c, out := newTestConsole(t)

	c.dispatch(context.Background(), "/teleport")

	assert.Contains(t, out.String(), "unknown command /teleport")
}

func TestSetEndpoints(t *testing.T) {
	c, out := newTestConsole(t)

	c.dispatch(context.Background(), "/set socket-url ws://example.test:9901")
	assert.Equal(t, "ws://example.test:9901", c.cfg.Socket.URL)

	c.dispatch(context.Background(), "/set auth-url http://example.test:3000")
	assert.Equal(t, "http://example.test:3000", c.cfg.Auth.URL)

	c.dispatch(context.Background(), "/set flux-capacitor on")
	assert.Contains(t, out.String(), "unknown setting")
}

func TestRunQuits(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	cfg := config.Default()
	auth := authgw.New(cfg.Auth.URL, time.Second)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := New(cfg, failingDialer{}, auth, framelog.New(), strings.NewReader("/quit\n"), out, logger)

	err := c.Run(context.Background())
	require.NoError(t, err)
}

func TestRunStopsOnEOF(t *testing.T) {
	c, _ := newTestConsole(t)

	err := c.Run(context.Background())
	require.NoError(t, err)
}
