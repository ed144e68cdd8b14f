// ABOUTME: Interactive operator console: readline-style input, command dispatch, event display.
// ABOUTME: Drives the session manager and auth gateway; implements session.Listener for notifications.

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/chat-probe/internal/authgw"
	"github.com/2389/chat-probe/internal/config"
	"github.com/2389/chat-probe/internal/framelog"
	"github.com/2389/chat-probe/internal/protocol"
	"github.com/2389/chat-probe/internal/session"
	"github.com/2389/chat-probe/internal/token"
)

// Console is the presentation layer. It collects operator input, invokes
// session and auth-gateway operations, and renders every notification;
// no failure path is silent.
type Console struct {
	cfg     *config.Config
	manager *session.Manager
	auth    *authgw.Client
	frames  *framelog.Log
	logger  *slog.Logger

	in io.Reader

	outMu sync.Mutex
	out   io.Writer
}

// New creates a console reading operator input from in and writing to out.
// The console owns the session manager it drives and receives its
// notifications as the manager's listener.
func New(cfg *config.Config, dialer session.Dialer, auth *authgw.Client, frames *framelog.Log, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	c := &Console{
		cfg:    cfg,
		auth:   auth,
		frames: frames,
		logger: logger,
		in:     in,
		out:    out,
	}
	c.manager = session.NewManager(dialer, frames, &session.Context{}, c, logger)
	return c
}

// Close tears down the socket connection if one is open.
func (c *Console) Close() {
	c.manager.Disconnect()
}

// printf writes one line of console output. Output is serialized so the
// read-loop goroutine and the input goroutine never interleave lines.
func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

// OnEvent renders a classified inbound frame.
func (c *Console) OnEvent(ev protocol.Event) {
	ts := clock(time.Now())
	switch ev.Kind {
	case protocol.KindChat:
		c.printf("%s %s %s", systemColor.Sprint(ts), chatColor.Sprintf("<%s>", shortID(ev.From)), ev.Text)
	case protocol.KindInfo:
		c.printf("%s %s %s", systemColor.Sprint(ts), infoColor.Sprint("[info]"), ev.Text)
	case protocol.KindError:
		c.printf("%s %s %s", systemColor.Sprint(ts), errColor.Sprint("[error]"), ev.Text)
	case protocol.KindUnparseable:
		c.printf("%s %s %s", systemColor.Sprint(ts), errColor.Sprint("[unparseable]"), ev.Raw)
	}
}

// OnStatus renders a connection state transition.
func (c *Console) OnStatus(s session.Status) {
	c.printf("%s", systemColor.Sprintf("-- %s --", s))
}

// OnSystem renders a lifecycle notice.
func (c *Console) OnSystem(text string) {
	c.printf("%s %s", systemColor.Sprint(clock(time.Now())), systemColor.Sprint(text))
}

// OnFailure renders a failed operation.
func (c *Console) OnFailure(text string) {
	c.printf("%s %s %s", systemColor.Sprint(clock(time.Now())), errColor.Sprint("[error]"), text)
}

// Run executes the interactive loop until the context is canceled or the
// operator quits. Bare input is sent as a chat message; slash commands
// do everything else.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)

	for {
		c.prompt()

		// Read input with context awareness
		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		if strings.HasPrefix(input, "/") {
			c.dispatch(ctx, input)
			continue
		}

		c.say(input)
	}
}

// prompt prints the input prompt with connection and conversation state.
func (c *Console) prompt() {
	sctx := c.manager.Snapshot()
	badge := string(c.manager.Status())
	if sctx.ConversationID != "" {
		badge += " " + shortID(sctx.ConversationID)
	}

	c.outMu.Lock()
	fmt.Fprintf(c.out, "[%s]> ", badge)
	c.outMu.Unlock()
}

// dispatch routes one slash command.
func (c *Console) dispatch(ctx context.Context, input string) {
	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "/help":
		c.printHelp()
	case "/register":
		c.register(ctx, args)
	case "/login":
		c.login(ctx, args)
	case "/verify":
		c.verify(ctx, args)
	case "/connect":
		c.connect(args)
	case "/disconnect":
		c.manager.Disconnect()
	case "/auth":
		c.authenticate()
	case "/conv":
		c.createConversation(args)
	case "/use":
		c.useConversation(args)
	case "/whoami":
		c.whoami()
	case "/token":
		c.showToken()
	case "/status":
		c.showStatus()
	case "/log":
		c.showLog()
	case "/clearlog":
		c.frames.Clear()
		c.printf("frame log cleared")
	case "/set":
		c.set(args)
	default:
		c.printf("unknown command %s (try /help)", cmd)
	}
}

func (c *Console) printHelp() {
	c.printf("Commands:")
	c.printf("  /register <user> <pass>  Create an account on the auth service")
	c.printf("  /login <user> <pass>     Log in and remember the token")
	c.printf("  /verify [token]          Server-side check of a token (default: current)")
	c.printf("  /connect [url]           Open the socket connection")
	c.printf("  /disconnect              Close the socket connection")
	c.printf("  /auth                    Present the login token on the socket")
	c.printf("  /conv <user-id>          Create a conversation with a participant")
	c.printf("  /use [conversation-id]   Override the active conversation (empty re-arms auto-fill)")
	c.printf("  /whoami                  Show the logged-in user")
	c.printf("  /token                   Inspect the current token's claims")
	c.printf("  /status                  Show connection state and endpoints")
	c.printf("  /log                     Dump the raw frame log")
	c.printf("  /clearlog                Clear the frame log")
	c.printf("  /set <auth-url|socket-url> <url>  Change an endpoint")
	c.printf("  /quit                    Exit")
	c.printf("Anything else is sent as a chat message to the active conversation.")
}

// splitCredentials parses "<user> <pass>" arguments.
func splitCredentials(args string) (username, password string, ok bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func (c *Console) register(ctx context.Context, args string) {
	username, password, ok := splitCredentials(args)
	if !ok {
		c.printf("usage: /register <user> <pass>")
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeouts.Request)
	defer cancel()

	account, err := c.auth.Register(reqCtx, username, password)
	if err != nil {
		c.OnFailure(fmt.Sprintf("register failed: %v", err))
		return
	}
	c.printf("Registered: %s (%s)", account.Username, account.ID)
}

func (c *Console) login(ctx context.Context, args string) {
	username, password, ok := splitCredentials(args)
	if !ok {
		c.printf("usage: /login <user> <pass>")
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeouts.Request)
	defer cancel()

	result, err := c.auth.Login(reqCtx, username, password)
	if err != nil {
		c.OnFailure(fmt.Sprintf("login failed: %v", err))
		return
	}

	c.manager.SetCredentials(result.Token, result.ID, result.Username)
	c.logger.Info("logged in", "username", result.Username, "user_id", result.ID)
	c.printf("Logged in as %s (%s)", result.Username, result.ID)
}

func (c *Console) verify(ctx context.Context, args string) {
	tok := args
	if tok == "" {
		tok = c.manager.Snapshot().Token
	}
	if tok == "" {
		c.printf("no token to verify; /login first or pass one")
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeouts.Request)
	defer cancel()

	account, err := c.auth.Verify(reqCtx, tok)
	if err != nil {
		c.OnFailure(fmt.Sprintf("verify failed: %v", err))
		return
	}
	c.printf("Token is valid for %s (%s)", account.Username, account.ID)
}

func (c *Console) connect(args string) {
	addr := args
	if addr == "" {
		addr = c.cfg.Socket.URL
	}
	if err := c.manager.Connect(addr); err != nil {
		c.OnFailure(fmt.Sprintf("connect: %v", err))
	}
}

func (c *Console) authenticate() {
	tok := c.manager.Snapshot().Token
	if tok == "" {
		c.OnFailure("no token; /login first")
		return
	}
	c.manager.Send(protocol.NewAuthenticate(tok))
}

func (c *Console) createConversation(args string) {
	if args == "" {
		c.printf("usage: /conv <participant-user-id>")
		return
	}
	if _, err := uuid.Parse(args); err != nil {
		c.OnFailure(fmt.Sprintf("participant id is not a UUID: %v", err))
		return
	}

	c.manager.SetParticipantID(args)
	c.manager.Send(protocol.NewCreateConversation(args))
}

func (c *Console) useConversation(args string) {
	c.manager.SetConversationID(args)
	if args == "" {
		c.printf("cleared conversation; auto-fill re-armed")
		return
	}
	c.printf("now using conversation %s", args)
}

func (c *Console) say(message string) {
	sctx := c.manager.Snapshot()
	if sctx.ConversationID == "" {
		c.OnFailure("no active conversation; /conv <user-id> or /use <conversation-id> first")
		return
	}
	c.manager.Send(protocol.NewSay(message, sctx.ConversationID))
}

func (c *Console) whoami() {
	sctx := c.manager.Snapshot()
	if sctx.Username == "" {
		c.printf("not logged in")
		return
	}
	c.printf("Logged in as %s (%s)", sctx.Username, sctx.UserID)
}

func (c *Console) showToken() {
	sctx := c.manager.Snapshot()
	if sctx.Token == "" {
		c.printf("no token; /login first")
		return
	}

	claims, err := token.Inspect(sctx.Token)
	if err != nil {
		c.OnFailure(fmt.Sprintf("token: %v", err))
		return
	}

	c.printf("subject:  %s", claims.Subject)
	if claims.Username != "" {
		c.printf("username: %s", claims.Username)
	}
	if !claims.IssuedAt.IsZero() {
		c.printf("issued:   %s", claims.IssuedAt.Format(time.RFC3339))
	}
	if !claims.ExpiresAt.IsZero() {
		c.printf("expires:  %s", claims.ExpiresAt.Format(time.RFC3339))
	}
	if claims.Expired(time.Now()) {
		c.printf("%s", errColor.Sprint("token is expired"))
	}
}

func (c *Console) showStatus() {
	sctx := c.manager.Snapshot()
	c.printf("connection:   %s", c.manager.Status())
	c.printf("auth url:     %s", c.cfg.Auth.URL)
	c.printf("socket url:   %s", c.cfg.Socket.URL)
	if sctx.ConversationID != "" {
		c.printf("conversation: %s", sctx.ConversationID)
	}
	if sctx.ParticipantID != "" {
		c.printf("participant:  %s", sctx.ParticipantID)
	}
}

func (c *Console) showLog() {
	entries := c.frames.Entries()
	if len(entries) == 0 {
		c.printf("no frames yet")
		return
	}
	for _, e := range entries {
		c.printf("%4d %s %s", e.Seq, directionArrow(e.Direction), systemColor.Sprint(clock(e.Timestamp)))
		c.printf("%s", prettyJSON(e.Payload))
	}
}

// set changes an endpoint URL at runtime. The socket URL applies to the
// next /connect; the auth URL applies immediately.
func (c *Console) set(args string) {
	key, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)
	if value == "" {
		c.printf("usage: /set <auth-url|socket-url> <url>")
		return
	}

	switch key {
	case "auth-url":
		c.cfg.Auth.URL = value
		c.auth = authgw.New(value, c.cfg.Timeouts.Request)
		c.printf("auth url set to %s", value)
	case "socket-url":
		c.cfg.Socket.URL = value
		c.printf("socket url set to %s", value)
	default:
		c.printf("unknown setting %q (auth-url, socket-url)", key)
	}
}
