package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"github.com/launchpad-labs/project-starter/internal/auth/domain"
)

// IdentityProvider is the slice of the identity service the session manager consumes.
type IdentityProvider interface {
	// CreateSession trades an ID token obtained by the browser for a provider
	// session token valid for ttl.
	CreateSession(ctx context.Context, idToken string, ttl time.Duration) (string, *domain.User, error)
	// GetCurrentUser resolves a provider session token to its user. It may
	// skip the revocation lookup and is called on every request.
	GetCurrentUser(ctx context.Context, sessionToken string) (*domain.User, error)
	// CheckRevoked resolves the token like GetCurrentUser and also rejects it
	// when the user's sessions were revoked.
	CheckRevoked(ctx context.Context, sessionToken string) (*domain.User, error)
	// SignOut terminates every provider session of uid.
	SignOut(ctx context.Context, uid string) error
}

// tokenClient is implemented by *auth.Client.
type tokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseProvider backs IdentityProvider with Firebase Authentication session cookies.
type FirebaseProvider struct {
	client tokenClient
}

func NewFirebaseProvider(client *auth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) CreateSession(ctx context.Context, idToken string, ttl time.Duration) (string, *domain.User, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", nil, domain.ErrMissingToken
	}

	tok, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	cookie, err := p.client.SessionCookie(ctx, idToken, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("create session cookie: %w", err)
	}

	return cookie, userFromToken(tok), nil
}

// GetCurrentUser checks the cookie signature and expiry locally.
func (p *FirebaseProvider) GetCurrentUser(ctx context.Context, sessionToken string) (*domain.User, error) {
	return p.verify(ctx, sessionToken, p.client.VerifySessionCookie)
}

// CheckRevoked adds a round-trip to Firebase for the revocation state.
func (p *FirebaseProvider) CheckRevoked(ctx context.Context, sessionToken string) (*domain.User, error) {
	return p.verify(ctx, sessionToken, p.client.VerifySessionCookieAndCheckRevoked)
}

func (p *FirebaseProvider) verify(ctx context.Context, sessionToken string, fn func(context.Context, string) (*auth.Token, error)) (*domain.User, error) {
	if sessionToken == "" {
		return nil, domain.ErrMissingToken
	}
	tok, err := fn(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return userFromToken(tok), nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func userFromToken(tok *auth.Token) *domain.User {
	u := &domain.User{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		u.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		u.DisplayName = name
	}
	if picture, ok := tok.Claims["picture"].(string); ok {
		u.PhotoURL = picture
	}
	return u
}

// DevProvider accepts any non-empty ID token and treats it as the user id.
// Use this ONLY for development/testing.
type DevProvider struct{}

const devTokenPrefix = "dev."

func (DevProvider) CreateSession(_ context.Context, idToken string, _ time.Duration) (string, *domain.User, error) {
	uid := strings.TrimSpace(idToken)
	if uid == "" {
		return "", nil, domain.ErrMissingToken
	}
	return devTokenPrefix + uid, devUser(uid), nil
}

func (DevProvider) GetCurrentUser(_ context.Context, sessionToken string) (*domain.User, error) {
	uid, ok := strings.CutPrefix(sessionToken, devTokenPrefix)
	if !ok || uid == "" {
		return nil, domain.ErrInvalidToken
	}
	return devUser(uid), nil
}

func (d DevProvider) CheckRevoked(ctx context.Context, sessionToken string) (*domain.User, error) {
	return d.GetCurrentUser(ctx, sessionToken)
}

func (DevProvider) SignOut(context.Context, string) error { return nil }

func devUser(uid string) *domain.User {
	email := uid
	if !strings.Contains(email, "@") {
		email = uid + "@dev.local"
	}
	return &domain.User{UID: uid, Email: email}
}
