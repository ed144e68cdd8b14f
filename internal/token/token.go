// ABOUTME: Local JWT inspection for tokens issued by the auth service.
// ABOUTME: Unverified parse only; the socket server is what actually validates the signature.

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken indicates the string is not a decodable JWT.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the subset of the auth service's token payload the console
// displays. The service issues HS256 tokens with sub, iat, exp and an
// embedded user object ({id, username, created_at, updated_at}).
type Claims struct {
	Subject   string
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. Tokens without
// an exp claim never report expired.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect decodes a token's claims without verifying its signature. The
// console has no access to the signing secret; this exists purely so the
// operator can see what they are about to present to the socket server.
func Inspect(tokenString string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if user, ok := claims["user"].(map[string]any); ok {
		if id, ok := user["id"].(string); ok {
			out.UserID = id
		}
		if name, ok := user["username"].(string); ok {
			out.Username = name
		}
	}
	return out, nil
}
