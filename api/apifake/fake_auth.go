package apifake

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/callwa-dashboard/api"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
)

// FakeAuth is an in-memory stand-in for api.AuthClient.
type FakeAuth struct {
	lock       sync.Mutex
	passwords  map[string]string
	tokens     map[string]string
	identities map[string]*api.Identity

	// ExchangeHook and IdentityHook run before the fake answers. Tests use
	// them to block a call or to inject a failure.
	ExchangeHook func(ctx context.Context, email string) error
	IdentityHook func(ctx context.Context, token string) error

	ExchangeCalls int
	IdentityCalls int
}

func NewFakeAuth() *FakeAuth {
	return &FakeAuth{
		passwords:  make(map[string]string),
		tokens:     make(map[string]string),
		identities: make(map[string]*api.Identity),
	}
}

// AddUser registers credentials that exchange for token, which in turn
// resolves to identity.
func (f *FakeAuth) AddUser(email, password, token string, identity api.Identity) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.passwords[email] = password
	f.tokens[email] = token
	f.identities[token] = &identity
}

// RevokeToken makes token unknown, as if it had expired server-side.
func (f *FakeAuth) RevokeToken(token string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.identities, token)
}

func (f *FakeAuth) ExchangeCredentials(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	f.lock.Lock()
	f.ExchangeCalls++
	hook := f.ExchangeHook
	f.lock.Unlock()

	if hook != nil {
		if err := hook(ctx, email); err != nil {
			return nil, err
		}
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	expected, ok := f.passwords[email]
	if !ok || expected != password {
		return nil, fmt.Errorf("%w: incorrect email or password", apperrors.ErrAuthRejected)
	}
	return &api.TokenResponse{AccessToken: f.tokens[email], TokenType: "bearer"}, nil
}

func (f *FakeAuth) FetchIdentity(ctx context.Context, token string) (*api.Identity, error) {
	f.lock.Lock()
	f.IdentityCalls++
	hook := f.IdentityHook
	f.lock.Unlock()

	if hook != nil {
		if err := hook(ctx, token); err != nil {
			return nil, err
		}
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	identity, ok := f.identities[token]
	if !ok {
		return nil, fmt.Errorf("%w: could not validate credentials", apperrors.ErrAuthRejected)
	}
	copied := *identity
	return &copied, nil
}

// Calls returns the exchange and identity call counts.
func (f *FakeAuth) Calls() (exchange, identity int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.ExchangeCalls, f.IdentityCalls
}
