package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/callwa-dashboard/api"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/jrsteele09/callwa-dashboard/tokenstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Authenticator is the pair of auth bindings the store depends on.
type Authenticator interface {
	ExchangeCredentials(ctx context.Context, email, password string) (*api.TokenResponse, error)
	FetchIdentity(ctx context.Context, token string) (*api.Identity, error)
}

var _ Authenticator = (*api.AuthClient)(nil)

// Store is the single source of truth for "is the caller authenticated".
//
// Every asynchronous operation (Login, Restore) captures a generation number
// when it starts and applies its result only if no later operation has begun
// since. Logout bumps the generation, so a login still in flight when the
// user logs out cannot repopulate the cleared session.
type Store struct {
	mu         sync.RWMutex
	auth       Authenticator
	tokens     tokenstore.Repo
	nowTime    func() time.Time
	generation uint64
	session    Session
}

// StoreOption modifies a Store during construction.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates the session store. A persisted token puts the store in
// StateRestoring; call Restore to confirm it.
func NewStore(auth Authenticator, tokens tokenstore.Repo, options ...StoreOption) (*Store, error) {
	if auth == nil {
		return nil, errors.New("[NewStore] authenticator is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewStore] token repo is required")
	}

	s := &Store{
		auth:    auth,
		tokens:  tokens,
		nowTime: time.Now,
		session: Session{State: StateUnauthenticated},
	}
	for _, opt := range options {
		opt(s)
	}

	token, err := tokens.Get()
	if err != nil {
		log.Err(err).Msg("Failed to read persisted token, starting unauthenticated")
		return s, nil
	}
	if token != "" {
		s.session = Session{Token: token, IsLoading: true, State: StateRestoring}
	}
	return s, nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.session
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}

// IsAuthenticated reports the guard condition for the current session.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated()
}

// Restore silently re-establishes the session from the persisted token.
// It is a no-op unless the store is in StateRestoring. Failures are logged,
// never returned: the persisted token is removed and the store becomes
// unauthenticated.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	if s.session.State != StateRestoring {
		s.mu.Unlock()
		return
	}
	gen := s.nextGeneration()
	token := s.session.Token
	s.mu.Unlock()

	if expiry, ok := TokenExpiry(token); ok && !expiry.After(s.nowTime()) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			return
		}
		log.Info().Time("expired_at", expiry).Msg("Persisted token has expired, discarding it")
		s.resetLocked(Session{State: StateUnauthenticated})
		return
	}

	identity, err := s.auth.FetchIdentity(ctx, token)
	if err == nil && identity == nil {
		err = fmt.Errorf("%w: backend returned no identity", apperrors.ErrAuthRejected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Debug().Msg("Discarding superseded session restore")
		return
	}
	if err != nil {
		log.Err(err).Msg("Failed to load user from stored token")
		s.resetLocked(Session{State: StateUnauthenticated})
		return
	}
	s.session = Session{Token: token, User: identity, State: StateAuthenticated}
}

// Login exchanges credentials for a token, persists it and confirms the
// identity behind it. The session only becomes authenticated once both calls
// succeed. On failure the session is cleared, Error is set to
// InvalidCredentialsMessage and the underlying error is returned.
//
// If a later Login or a Logout starts while this one is in flight, this
// attempt's result is discarded: a failure is still returned as is, a
// success returns ErrSuperseded.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	gen := s.nextGeneration()
	if s.session.State == StateRestoring {
		s.session.Token = ""
		s.session.State = StateUnauthenticated
	}
	s.session.IsLoading = true
	s.session.Error = ""
	s.mu.Unlock()

	resp, err := s.auth.ExchangeCredentials(ctx, email, password)
	if err == nil && (resp == nil || resp.AccessToken == "") {
		err = fmt.Errorf("%w: backend returned an empty access token", apperrors.ErrAuthRejected)
	}
	if err != nil {
		return s.finishLogin(gen, err, nil)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return apperrors.ErrSuperseded
	}
	if err := s.tokens.Set(resp.AccessToken); err != nil {
		s.mu.Unlock()
		return s.finishLogin(gen, errors.Wrap(err, "Store.Login persist token"), nil)
	}
	s.mu.Unlock()

	identity, err := s.auth.FetchIdentity(ctx, resp.AccessToken)
	if err == nil && identity == nil {
		err = fmt.Errorf("%w: backend returned no identity", apperrors.ErrAuthRejected)
	}
	return s.finishLogin(gen, err, func() error {
		s.session = Session{Token: resp.AccessToken, User: identity, State: StateAuthenticated}
		return nil
	})
}

// finishLogin applies the outcome of a login attempt if gen is still current.
// commit runs under the lock when err is nil; it may be nil only when err
// is not.
func (s *Store) finishLogin(gen uint64, err error, commit func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		if err != nil {
			return err
		}
		log.Debug().Msg("Discarding superseded login")
		return apperrors.ErrSuperseded
	}

	if err != nil {
		log.Err(err).Msg("Login failed")
		s.resetLocked(Session{Error: InvalidCredentialsMessage, State: StateAuthError})
		return err
	}
	return commit()
}

// Logout clears the session and the persisted token. It makes no backend
// call and is a no-op when already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGeneration()
	s.resetLocked(Session{State: StateUnauthenticated})
}

// resetLocked replaces the session and removes the persisted token.
func (s *Store) resetLocked(next Session) {
	if err := s.tokens.Delete(); err != nil {
		log.Err(err).Msg("Failed to remove persisted token")
	}
	s.session = next
}

func (s *Store) nextGeneration() uint64 {
	s.generation++
	return s.generation
}
