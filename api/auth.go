package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	RouteAuthLogin = "/auth/login"
	RouteUsersMe   = "/users/me"
)

// AuthClient exchanges credentials and resolves identities. It never reads
// the persisted token; tokens are always passed explicitly.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
	oauth      oauth2.Config
}

// NewAuthClient creates the auth bindings. hc may be nil.
func NewAuthClient(baseURL string, hc *http.Client) (*AuthClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[NewAuthClient] baseURL is required")
	}
	if hc == nil {
		hc = &http.Client{}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &AuthClient{
		baseURL:    baseURL,
		httpClient: hc,
		oauth: oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  baseURL + RouteAuthLogin,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}, nil
}

// ExchangeCredentials posts the form-encoded username and password to the
// login endpoint using the OAuth2 password grant.
func (a *AuthClient) ExchangeCredentials(ctx context.Context, email, password string) (*TokenResponse, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	token, err := a.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, a.classifyExchangeError(err)
	}

	return &TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}, nil
}

// FetchIdentity resolves the identity behind token.
func (a *AuthClient) FetchIdentity(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", apperrors.ErrAuthRejected)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var identity Identity
	if err := doJSON(ctx, a.httpClient, http.MethodGet, a.baseURL+RouteUsersMe, header, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// classifyExchangeError maps oauth2 failures onto the dashboard taxonomy.
// Any 4xx from the login endpoint is a credential rejection.
func (a *AuthClient) classifyExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) || retrieveErr.Response == nil {
		return fmt.Errorf("%w: credential exchange: %w", apperrors.ErrTransport, err)
	}

	httpErr := &apperrors.HTTPError{
		Method:     http.MethodPost,
		URL:        a.oauth.Endpoint.TokenURL,
		StatusCode: retrieveErr.Response.StatusCode,
		Body:       strings.TrimSpace(string(retrieveErr.Body)),
	}
	if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
		return fmt.Errorf("%w: %w", apperrors.ErrAuthRejected, httpErr)
	}
	return httpErr
}
