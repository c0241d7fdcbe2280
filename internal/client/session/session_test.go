package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/client/api"
	"resumatch/internal/client/creds"
)

type env struct {
	store  *creds.Store
	client *api.Client
	mgr    *Manager
	srv    *httptest.Server
	reqs   *int
}

func newEnv(t *testing.T, handler http.HandlerFunc) *env {
	t.Helper()
	e := &env{reqs: new(int)}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(*e.reqs)++
		handler(w, r)
	}))
	t.Cleanup(e.srv.Close)
	e.store = creds.NewStoreAt(t.TempDir())
	e.client = api.New(e.srv.URL)
	e.mgr = NewManager(e.store, e.client)
	return e
}

func authOK(t *testing.T, w http.ResponseWriter) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{
		"tokens": {"access": "new-access", "refresh": "new-refresh"},
		"user": {"id": "u1", "email": "a@b.c", "username": "alice"}
	}`))
}

func TestBootstrapWithoutCredential(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a stored credential")
	})

	state := e.mgr.Bootstrap(context.Background())

	assert.Equal(t, Unauthenticated, state.Status)
	assert.Nil(t, state.User)
	assert.Zero(t, *e.reqs)
	assert.False(t, e.client.HasToken())
}

func TestBootstrapWithValidCredential(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/profile/", r.URL.Path)
		require.Equal(t, "Bearer stored-access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "u1", "email": "a@b.c", "username": "alice"}`))
	})
	require.NoError(t, e.store.Save(creds.Pair{Access: "stored-access", Refresh: "stored-refresh"}))

	state := e.mgr.Bootstrap(context.Background())

	assert.Equal(t, Authenticated, state.Status)
	require.NotNil(t, state.User)
	assert.Equal(t, "a@b.c", state.User.Email)
	assert.True(t, e.client.HasToken())
}

func TestBootstrapWithRejectedCredential(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid or expired token."}`))
	})
	require.NoError(t, e.store.Save(creds.Pair{Access: "expired", Refresh: "r"}))

	state := e.mgr.Bootstrap(context.Background())

	assert.Equal(t, Unauthenticated, state.Status)
	assert.Nil(t, state.User)
	assert.False(t, e.client.HasToken(), "rejected token must be stripped")
	assert.Empty(t, e.store.Load().Access, "rejected token must be purged from the store")
	assert.Equal(t, 1, *e.reqs, "the profile fetch is never retried")

	// Settled sessions bootstrap again without network traffic.
	e.mgr.Bootstrap(context.Background())
	assert.Equal(t, 1, *e.reqs)
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.c", body["email"])
		require.Equal(t, "hunter22", body["password"])
		authOK(t, w)
	})

	require.NoError(t, e.mgr.Login(context.Background(), "a@b.c", "hunter22"))

	state := e.mgr.State()
	assert.Equal(t, Authenticated, state.Status)
	require.NotNil(t, state.User)
	assert.Equal(t, "alice", state.User.Username)

	pair := e.store.Load()
	assert.Equal(t, "new-access", pair.Access)
	assert.Equal(t, "new-refresh", pair.Refresh)
	assert.True(t, e.client.HasToken())
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"non_field_errors": ["Invalid credentials"]}`))
	})

	err := e.mgr.Login(context.Background(), "a@b.c", "wrong")

	require.EqualError(t, err, "Invalid credentials")
	assert.Equal(t, Bootstrapping, e.mgr.State().Status, "failed login leaves state untouched")
	assert.False(t, e.client.HasToken())
	assert.Empty(t, e.store.Load().Access)
}

func TestLoginFailureWithoutMessage(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := e.mgr.Login(context.Background(), "a@b.c", "pw")
	require.EqualError(t, err, "Login failed")
}

func TestRegisterFieldErrorsPassThrough(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email": ["A user with this email already exists."]}`))
	})

	err := e.mgr.Register(context.Background(), "a@b.c", "alice", "hunter22", "hunter22")

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "A user with this email already exists.", apiErr.FieldMessage("email"))
}

func TestRegisterSuccess(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "hunter22", body["password_confirm"])
		authOK(t, w)
	})

	require.NoError(t, e.mgr.Register(context.Background(), "a@b.c", "alice", "hunter22", "hunter22"))
	assert.Equal(t, Authenticated, e.mgr.State().Status)
}

func TestLogoutStripsEverything(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		authOK(t, w)
	})
	require.NoError(t, e.mgr.Login(context.Background(), "a@b.c", "hunter22"))

	e.mgr.Logout()

	assert.Equal(t, Unauthenticated, e.mgr.State().Status)
	assert.False(t, e.client.HasToken())
	assert.Empty(t, e.store.Load().Access)
	assert.Empty(t, e.store.Load().Refresh)

	// Logout in a logged-out state is a safe no-op.
	e.mgr.Logout()
	assert.Equal(t, Unauthenticated, e.mgr.State().Status)
}
