// Package identity exposes the session issued by the external identity
// provider. The client never handles passwords; it only stores the token
// the provider hands out and reads the user ID and expiry from its claims.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/credential"
)

// TokenKey is the keyring entry holding the session token.
const TokenKey = "session-token"

var (
	// ErrSignedOut means no session token is stored.
	ErrSignedOut = errors.New("signed out")

	// ErrSessionExpired means the stored token's exp claim has passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidToken means the token could not be decoded or has no subject.
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is the current user's identity.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at now. A
// token without exp never expires client-side.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// CredentialStore is the secret storage the provider reads from.
type CredentialStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KeyringProvider serves the session from a CredentialStore.
type KeyringProvider struct {
	creds  CredentialStore
	now    func() time.Time
	logger *slog.Logger
}

// NewKeyringProvider returns a provider reading from creds. now may be nil.
func NewKeyringProvider(creds CredentialStore, now func() time.Time, logger *slog.Logger) *KeyringProvider {
	if now == nil {
		now = time.Now
	}
	return &KeyringProvider{creds: creds, now: now, logger: logger}
}

// Session returns the current session.
func (p *KeyringProvider) Session(ctx context.Context) (Session, error) {
	token, err := p.creds.Get(TokenKey)
	if errors.Is(err, credential.ErrNotFound) {
		return Session{}, ErrSignedOut
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrSignedOut
	}

	s, err := Decode(token)
	if err != nil {
		return Session{}, err
	}
	if s.Expired(p.now()) {
		return Session{}, ErrSessionExpired
	}
	return s, nil
}

// UserID returns the signed-in user's ID.
func (p *KeyringProvider) UserID(ctx context.Context) (string, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.UserID, nil
}

// Token returns the signed-in user's session token.
func (p *KeyringProvider) Token(ctx context.Context) (string, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// SignIn stores token after checking it decodes and has not expired.
func (p *KeyringProvider) SignIn(token string) (Session, error) {
	token = strings.TrimSpace(token)
	s, err := Decode(token)
	if err != nil {
		return Session{}, err
	}
	if s.Expired(p.now()) {
		return Session{}, ErrSessionExpired
	}
	if err := p.creds.Set(TokenKey, token); err != nil {
		return Session{}, fmt.Errorf("storing session: %w", err)
	}
	p.logger.Info("signed in", slog.String("user_id", s.UserID))
	return s, nil
}

// SignOut deletes the stored token.
func (p *KeyringProvider) SignOut() error {
	if err := p.creds.Delete(TokenKey); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	p.logger.Info("signed out")
	return nil
}

// Decode reads sub and exp from a JWT without verifying its signature.
// The API verifies tokens; the client only needs the claims.
func Decode(token string) (Session, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Session{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	s := Session{UserID: claims.Subject, Token: token}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
