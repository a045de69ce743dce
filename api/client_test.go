package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/callwa-dashboard/api"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/jrsteele09/callwa-dashboard/tokenstore"
	"github.com/stretchr/testify/require"
)

type failingTokens struct{}

func (failingTokens) Get() (string, error) { return "", errors.New("disk on fire") }

// recorder captures the Authorization header of each request.
type recorder struct {
	mu      sync.Mutex
	headers []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append(r.headers, req.Header.Get("Authorization"))
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.headers[len(r.headers)-1]
}

func TestClient_AttachesPersistedToken(t *testing.T) {
	rec := &recorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /calls", func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		writeJSON(t, w, http.StatusOK, []any{})
	})
	tokens := tokenstore.NewInMemoryRepo()
	client, err := api.NewClient(setupBackend(t, mux), tokens)
	require.NoError(t, err)

	_, err = client.ListCalls(context.Background())
	require.NoError(t, err)
	require.Empty(t, rec.last(), "no token persisted, no header")

	require.NoError(t, tokens.Set(testToken))
	_, err = client.ListCalls(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testToken, rec.last())

	require.NoError(t, tokens.Delete())
	_, err = client.ListCalls(context.Background())
	require.NoError(t, err)
	require.Empty(t, rec.last(), "token read on every request")
}

func TestClient_TokenReadFailureSendsAnonymously(t *testing.T) {
	rec := &recorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/", func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		writeJSON(t, w, http.StatusOK, []any{})
	})
	client, err := api.NewClient(setupBackend(t, mux), failingTokens{})
	require.NoError(t, err)

	_, err = client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, rec.last())
}

func TestClient_ListCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /calls", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":2,"tenant_id":7,"direction":"inbound","from_number":"+911","to_number":"+912","customer_number":"+911",
			 "status":"completed","duration_seconds":42,"should_trigger_automation":true,"created_at":"2024-05-01T10:00:00Z"},
			{"id":1,"tenant_id":7,"direction":"inbound","from_number":"+913","to_number":"+912","customer_number":"+913",
			 "status":"failed","should_trigger_automation":false}
		]`)
	})
	client, err := api.NewClient(setupBackend(t, mux), tokenstore.NewInMemoryRepo())
	require.NoError(t, err)

	calls, err := client.ListCalls(context.Background())
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Equal(t, int64(2), calls[0].ID, "backend order preserved")
	require.Equal(t, 42, utils.Value(calls[0].DurationSeconds))
	require.True(t, calls[0].ShouldTriggerAutomation)
	require.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), calls[0].CreatedAt.UTC())
	require.Nil(t, calls[1].DurationSeconds)
	require.Nil(t, calls[1].CreatedAt)
}

func TestClient_ListProducts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "tenant_id": 7, "name": "Men Formal Shirt", "category": "Shirt", "price": 799.0, "is_active": true},
			{"id": 2, "tenant_id": 7, "name": "Scarf", "category": nil, "price": nil, "is_active": false},
		})
	})
	client, err := api.NewClient(setupBackend(t, mux), tokenstore.NewInMemoryRepo())
	require.NoError(t, err)

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Men Formal Shirt", products[0].Name)
	require.Equal(t, "Shirt", utils.Value(products[0].Category))
	require.InDelta(t, 799.0, utils.Value(products[0].Price), 0.001)
	require.Nil(t, products[1].Category)
	require.False(t, products[1].IsActive)
}

func TestClient_ErrorsReturnedVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /calls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	})
	mux.HandleFunc("GET /products/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{not json`)
	})
	client, err := api.NewClient(setupBackend(t, mux), tokenstore.NewInMemoryRepo())
	require.NoError(t, err)

	_, err = client.ListCalls(context.Background())
	var httpErr *apperrors.HTTPError
	require.True(t, apperrors.As(err, &httpErr))
	require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	require.True(t, apperrors.Is(err, apperrors.ErrAuthRejected))

	_, err = client.ListProducts(context.Background())
	require.True(t, apperrors.Is(err, apperrors.ErrTransport))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /calls", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	baseURL := setupBackend(t, mux)
	defer close(release)

	client, err := api.NewClient(baseURL, tokenstore.NewInMemoryRepo(), api.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.ListCalls(context.Background())
	require.True(t, apperrors.Is(err, apperrors.ErrTransport))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := api.NewClient("", tokenstore.NewInMemoryRepo())
	require.Error(t, err)
	_, err = api.NewClient("http://localhost", nil)
	require.Error(t, err)
}

func TestClient_DoesNotMutateProvidedHTTPClient(t *testing.T) {
	hc := &http.Client{}
	_, err := api.NewClient("http://localhost", tokenstore.NewInMemoryRepo(), api.WithHTTPClient(hc))
	require.NoError(t, err)
	require.Nil(t, hc.Transport)
}

// decodeBody is shared by the settings tests.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}
