package cmd

import (
	"context"
	"errors"

	"resumatch/internal/client/api"
	"resumatch/internal/client/creds"
	"resumatch/internal/client/session"
)

// newSession wires the credential store and API client for one invocation
// and replays the bootstrap transition so commands start from a settled
// session state.
func newSession(ctx context.Context, serverURL string) (*session.Manager, *api.Client) {
	client := api.New(serverURL)
	mgr := session.NewManager(creds.NewStore(), client)
	mgr.Bootstrap(ctx)
	return mgr, client
}

// requireAuth is the CLI's route gate: protected commands refuse to run
// unless the session settled on Authenticated.
func requireAuth(mgr *session.Manager) error {
	switch session.Gate(mgr.State()) {
	case session.Allow:
		return nil
	case session.Pending:
		return errors.New("session still starting, try again")
	default:
		return errors.New("not logged in, run 'resumatch auth login' first")
	}
}
