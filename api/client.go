// Package api binds the dashboard to the call automation backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of a failed response body is kept on HTTPError.
const maxErrorBody = 4096

// TokenReader exposes the persisted access token ("" when none is stored).
type TokenReader interface {
	Get() (string, error)
}

// Client issues requests against the backend. Every request carries the
// persisted token as a bearer credential when one is present.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying client. Its transport is wrapped, not replaced.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.httpClient = &copied
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates the shared resource client for baseURL
// (e.g. "http://127.0.0.1:8000/api/v1").
func NewClient(baseURL string, tokens TokenReader, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewClient] token reader is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range options {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &bearerTransport{base: base, tokens: tokens}

	return c, nil
}

// bearerTransport reads the persisted token before every request.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenReader
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Get()
	if err != nil {
		log.Err(err).Msg("Failed to read persisted token, sending request without credentials")
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	authorized := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(authorized)
	return t.base.RoundTrip(authorized)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return doJSON(ctx, c.httpClient, http.MethodGet, c.baseURL+path, nil, nil, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return doJSON(ctx, c.httpClient, http.MethodPut, c.baseURL+path, nil, body, out)
}

// doJSON performs one request and decodes a JSON response into out.
// Transport failures wrap ErrTransport; non-2xx answers return *HTTPError.
func doJSON(ctx context.Context, hc *http.Client, method, url string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.Wrapf(err, "build request %s %s", method, url)
	}
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperrors.HTTPError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", apperrors.ErrTransport, method, url, err)
	}
	return nil
}
