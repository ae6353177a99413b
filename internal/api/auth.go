package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Header names used by the header-key scheme.
const (
	HeaderUserID = "X-User-Id"
	HeaderAPIKey = "X-API-Key"
)

// Authenticator decorates an outgoing request with credentials. An error
// aborts the request before it reaches the network.
type Authenticator interface {
	Authenticate(ctx context.Context, req *http.Request) error
}

// UserIDSource supplies the current user's identifier.
type UserIDSource interface {
	UserID(ctx context.Context) (string, error)
}

// TokenSource supplies the current session token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HeaderKeyAuth identifies the caller with a user ID header and a static
// API key header.
type HeaderKeyAuth struct {
	APIKey string
	Users  UserIDSource
}

// Authenticate sets X-User-Id and X-API-Key.
func (a HeaderKeyAuth) Authenticate(ctx context.Context, req *http.Request) error {
	if strings.TrimSpace(a.APIKey) == "" {
		return &AuthError{Message: "api key is not configured"}
	}
	userID, err := a.Users.UserID(ctx)
	if err != nil {
		return &AuthError{Message: "no signed-in user", Err: err}
	}
	req.Header.Set(HeaderUserID, userID)
	req.Header.Set(HeaderAPIKey, a.APIKey)
	return nil
}

// BearerAuth sends the identity provider's session token.
type BearerAuth struct {
	Tokens TokenSource
}

// Authenticate sets the Authorization header.
func (a BearerAuth) Authenticate(ctx context.Context, req *http.Request) error {
	token, err := a.Tokens.Token(ctx)
	if err != nil {
		return &AuthError{Message: "no session token", Err: err}
	}
	if token == "" {
		return &AuthError{Message: "no session token", Err: errors.New("empty token")}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
