package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/callwa-dashboard/api"
	"github.com/jrsteele09/callwa-dashboard/internal/config"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/jrsteele09/callwa-dashboard/session"
	"github.com/jrsteele09/callwa-dashboard/tokenstore"
)

// runtime is the object graph every command works against: one token repo,
// one resource client, one auth client and the session store that owns them.
type runtime struct {
	cfg    config.Config
	tokens tokenstore.Repo
	client *api.Client
	auth   *api.AuthClient
	store  *session.Store
}

func newRuntime(opts *options) (*runtime, error) {
	cfg := opts.cfg
	if cfg == nil {
		cfg = config.New()
	}

	var tokens tokenstore.Repo
	if opts.ephemeral {
		tokens = tokenstore.NewInMemoryRepo()
	} else {
		fileRepo, err := tokenstore.NewFileRepo(cfg.GetStorageFile(), cfg.GetTokenStorageKey())
		if err != nil {
			return nil, fmt.Errorf("opening token storage: %w", err)
		}
		tokens = fileRepo
	}

	client, err := api.NewClient(cfg.GetAPIBaseURL(), tokens, api.WithTimeout(cfg.GetAPITimeout()))
	if err != nil {
		return nil, err
	}

	// The auth bindings get their own client that never carries the persisted token
	auth, err := api.NewAuthClient(cfg.GetAPIBaseURL(), &http.Client{Timeout: cfg.GetAPITimeout()})
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(auth, tokens)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, tokens: tokens, client: client, auth: auth, store: store}, nil
}

// requireSession restores the persisted session and fails when there is none.
func (rt *runtime) requireSession(ctx context.Context) (session.Session, error) {
	rt.store.Restore(ctx)
	snapshot := rt.store.Snapshot()
	if !snapshot.Authenticated() {
		return snapshot, fmt.Errorf("%w: run \"dashboard login\" first", apperrors.ErrNotAuthenticated)
	}
	return snapshot, nil
}
