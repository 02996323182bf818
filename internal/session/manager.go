// Package session owns per-browser authentication state: it restores
// sessions, signs users in and out, and notifies observers of transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/launchpad-labs/project-starter/internal/auth"
	"github.com/launchpad-labs/project-starter/internal/logging"
	"github.com/launchpad-labs/project-starter/internal/session/domain"
	"github.com/launchpad-labs/project-starter/internal/users"
)

// UserRegistry records sign-ins. *users.Repo implements it.
type UserRegistry interface {
	RecordSignIn(ctx context.Context, u users.SignIn) (string, error)
}

type Manager struct {
	provider auth.IdentityProvider
	store    Store
	broker   Broker
	registry UserRegistry
	ttl      time.Duration
	now      func() time.Time
	newID    func() string

	onSignOut []func(contextID string)
}

type Option func(*Manager)

// WithUserRegistry records every sign-in in r.
func WithUserRegistry(r UserRegistry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithSignOutHook runs fn with the context id after every sign-out.
func WithSignOutHook(fn func(contextID string)) Option {
	return func(m *Manager) { m.onSignOut = append(m.onSignOut, fn) }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(provider auth.IdentityProvider, store Store, broker Broker, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		provider: provider,
		store:    store,
		broker:   broker,
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewContextID mints an identifier for a fresh browser context.
func (m *Manager) NewContextID() string {
	return m.newID()
}

// CheckExistingSession returns the live session for contextID, or nil.
// Every failure, including provider errors, reads as "not authenticated".
func (m *Manager) CheckExistingSession(ctx context.Context, contextID string) *domain.Session {
	if contextID == "" {
		return nil
	}

	s, err := m.store.Get(ctx, contextID)
	if err != nil {
		return nil
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, contextID)
		return nil
	}

	user, err := m.provider.GetCurrentUser(ctx, s.ProviderToken)
	if err != nil || user.UID != s.UserID {
		return nil
	}
	return s
}

// CurrentView is the view for contextID right now.
func (m *Manager) CurrentView(ctx context.Context, contextID string) domain.View {
	return domain.ViewFor(m.CheckExistingSession(ctx, contextID))
}

// OnSessionChange registers h for transitions of contextID. The caller must
// Unsubscribe when its scope ends.
func (m *Manager) OnSessionChange(ctx context.Context, contextID string, h Handler) (Subscription, error) {
	return m.broker.Subscribe(ctx, contextID, h)
}

// SignIn exchanges idToken for a provider session and binds it to a new
// context id. Observers of the previous context id are told about it, so
// other tabs of the same browser follow along.
func (m *Manager) SignIn(ctx context.Context, prevContextID, idToken string) (*domain.Session, error) {
	logger := logging.NewLogger(ctx)

	token, user, err := m.provider.CreateSession(ctx, idToken, m.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	now := m.now()
	s := &domain.Session{
		ID:              m.newID(),
		UserID:          user.UID,
		Email:           user.Email,
		IsAuthenticated: true,
		ProviderToken:   token,
		CreatedAt:       now,
		ExpiresAt:       now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if prevContextID != "" && prevContextID != s.ID {
		_ = m.store.Delete(ctx, prevContextID)
	}

	if m.registry != nil {
		if _, err := m.registry.RecordSignIn(ctx, users.SignIn{
			FirebaseUID: user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
		}); err != nil {
			logger.LogError("record_sign_in", err)
		}
	}

	logger.LogInfof("sign_in", "user_id=%s", user.UID)
	m.publish(ctx, domain.EventSignedIn, s, prevContextID, s.ID)
	return s, nil
}

// Refresh re-verifies the session with the provider, including revocation.
// A non-empty idToken replaces the provider session and extends the expiry.
// If the provider no longer accepts the session, it is signed out and
// ErrSessionNotFound returned.
func (m *Manager) Refresh(ctx context.Context, contextID, idToken string) (*domain.Session, error) {
	s, err := m.store.Get(ctx, contextID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if idToken != "" {
		token, user, err := m.provider.CreateSession(ctx, idToken, m.ttl)
		if err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}
		if user.UID != s.UserID {
			return nil, fmt.Errorf("refresh: token belongs to another user")
		}
		s.ProviderToken = token
		s.Email = user.Email
		s.ExpiresAt = m.now().Add(m.ttl)
	} else if _, err := m.provider.CheckRevoked(ctx, s.ProviderToken); err != nil {
		m.SignOut(ctx, contextID)
		return nil, domain.ErrSessionNotFound
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.publish(ctx, domain.EventTokenRefreshed, s, contextID)
	return s, nil
}

// SignOut terminates the session. A provider failure is logged and local
// state is cleared regardless; afterwards contextID has no session.
func (m *Manager) SignOut(ctx context.Context, contextID string) {
	logger := logging.NewLogger(ctx)

	s, err := m.store.Get(ctx, contextID)
	if err == nil {
		if err := m.provider.SignOut(ctx, s.UserID); err != nil {
			logger.LogWarnf("sign_out", "provider sign-out failed for user_id=%s: %v", s.UserID, err)
		}
	} else if !errors.Is(err, domain.ErrSessionNotFound) {
		logger.LogError("sign_out", err)
	}

	if err := m.store.Delete(ctx, contextID); err != nil {
		logger.LogError("sign_out", err)
	}
	for _, fn := range m.onSignOut {
		fn(contextID)
	}
	m.publish(ctx, domain.EventSignedOut, nil, contextID)
}

func (m *Manager) publish(ctx context.Context, typ domain.EventType, s *domain.Session, contextIDs ...string) {
	seen := make(map[string]bool, len(contextIDs))
	for _, id := range contextIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ev := domain.Event{Type: typ, ContextID: id, Session: s.Public(), At: m.now()}
		if err := m.broker.Publish(ctx, ev); err != nil {
			logging.NewLogger(ctx).LogError("publish_session_event", err)
		}
	}
}
