// ABOUTME: HTTP client for the chat backend's auth service (register/login/verify).
// ABOUTME: Each call is an independent request/response; failures surface the best-available message.

package authgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Account identifies a registered user.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResult is a successful login: the account plus its JWT.
type LoginResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Error is a failed auth-gateway call: a non-2xx response, with the
// response's message field when one was present and the HTTP status text
// otherwise.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Client talks to the auth service. Calls have no ordering relationship
// with the WebSocket session; the console issues at most one per
// operator action and never retries on its own.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the auth service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// credentialsRequest is the JSON body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// verifyRequest is the JSON body for verify.
type verifyRequest struct {
	Token string `json:"token"`
}

// Register creates a new user.
func (c *Client) Register(ctx context.Context, username, password string) (*Account, error) {
	var account Account
	if err := c.post(ctx, "/register", credentialsRequest{Username: username, Password: password}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Login authenticates a user and returns the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/login", credentialsRequest{Username: username, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify asks the auth service to validate a token server-side and
// returns the account it was issued to.
func (c *Client) Verify(ctx context.Context, token string) (*Account, error) {
	var account Account
	if err := c.post(ctx, "/verify", verifyRequest{Token: token}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// post sends one JSON request and decodes a 2xx response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return responseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// responseError builds an Error from a non-2xx response. The body may be
// a JSON object with a message field; anything else falls back to the
// HTTP status text.
func responseError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Message != "" {
		apiErr.Message = detail.Message
	}
	return apiErr
}
