// Package session owns the client's belief about who is logged in.
package session

import (
	"context"
	"errors"
	"fmt"

	"resumatch/internal/client/api"
	"resumatch/internal/client/creds"
	"resumatch/internal/shared/models"
)

type Status int

const (
	Bootstrapping Status = iota
	Unauthenticated
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Bootstrapping:
		return "bootstrapping"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is a snapshot of the session. User is non-nil exactly when the
// status is Authenticated.
type State struct {
	Status Status
	User   *models.User
}

// Manager drives every session transition. It is the only component that
// writes the credential store or the API client token. The store write
// always happens before the token update, and the token update before any
// dependent request, so a request issued right after a successful login
// carries the new credential.
type Manager struct {
	store  *creds.Store
	client *api.Client
	state  State
}

func NewManager(store *creds.Store, client *api.Client) *Manager {
	return &Manager{store: store, client: client, state: State{Status: Bootstrapping}}
}

func (m *Manager) State() State { return m.state }

// Bootstrap reconciles the credential store with the server. With no
// stored credential it settles on Unauthenticated without touching the
// network. A stored credential the profile endpoint rejects is treated as
// expired: the session is logged out, clearing the store, and the fetch is
// never retried. Bootstrapping again from that point is a no-network no-op.
func (m *Manager) Bootstrap(ctx context.Context) State {
	pair := m.store.Load()
	if pair.Access == "" {
		m.state = State{Status: Unauthenticated}
		return m.state
	}
	m.client.SetToken(pair.Access)
	var user models.User
	if err := m.client.GetJSON(ctx, "/api/auth/profile/", &user); err != nil {
		m.Logout()
		return m.state
	}
	m.state = State{Status: Authenticated, User: &user}
	return m.state
}

// Login authenticates and, on success, persists the credential pair,
// propagates the access token and records the returned user. On failure
// the session is left exactly as it was and the error carries the server's
// first non-field message, or a generic one.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := m.client.PostJSON(ctx, "/api/auth/login/", req, &resp); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			if msg := apiErr.FieldMessage("non_field_errors"); msg != "" {
				return errors.New(msg)
			}
		}
		return errors.New("Login failed")
	}
	return m.establish(resp)
}

// Register mirrors Login against the registration endpoint, submitting
// both password fields. A rejection's field errors pass through untouched
// so the caller decides how to render them.
func (m *Manager) Register(ctx context.Context, email, username, password, passwordConfirm string) error {
	var resp models.AuthResponse
	req := models.RegisterRequest{
		Email:           email,
		Username:        username,
		Password:        password,
		PasswordConfirm: passwordConfirm,
	}
	if err := m.client.PostJSON(ctx, "/api/auth/register/", req, &resp); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return errors.New("Registration failed")
	}
	return m.establish(resp)
}

// Logout clears the persisted pair, strips the client token and drops the
// user. Synchronous and infallible; safe to call in any state.
func (m *Manager) Logout() {
	m.store.Clear()
	m.client.ClearToken()
	m.state = State{Status: Unauthenticated}
}

// establish commits a successful authentication: store write first, then
// the client token, then the in-memory user.
func (m *Manager) establish(resp models.AuthResponse) error {
	if err := m.store.Save(creds.Pair{Access: resp.Tokens.Access, Refresh: resp.Tokens.Refresh}); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	m.client.SetToken(resp.Tokens.Access)
	user := resp.User
	m.state = State{Status: Authenticated, User: &user}
	return nil
}
