package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/callwa-dashboard/internal/cli"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/jrsteele09/callwa-dashboard/session"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "owner@gmail.com"
	testPassword = "demo-password"
	testToken    = "abc123"
)

// fakeBackend is a minimal stand-in for the automation REST API.
type fakeBackend struct {
	mu      sync.Mutex
	updates []map[string]any
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+testToken
	}
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != testEmail || r.PostForm.Get("password") != testPassword {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": testToken, "token_type": "bearer"})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": testEmail, "tenant_id": 7, "is_active": true})
	})
	mux.HandleFunc("GET /calls", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, authorized(r))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "from_number": "+911234", "to_number": "+915678", "status": "completed", "duration_seconds": 42, "should_trigger_automation": true},
		})
	})
	mux.HandleFunc("GET /products/", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, authorized(r))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 3, "name": "Silk saree", "category": "sarees", "price": 1499.5, "is_active": true},
		})
	})
	mux.HandleFunc("GET /settings/automation", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, authorized(r))
		writeJSON(w, http.StatusOK, map[string]any{"enabled": true, "min_call_duration_seconds": 10})
	})
	mux.HandleFunc("PUT /settings/automation", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, authorized(r))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.updates = append(b.updates, body)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"enabled": true, "min_call_duration_seconds": body["min_call_duration_seconds"]})
	})

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", mux))
	return root
}

type testFixture struct {
	backend *fakeBackend
	dataDir string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	dataDir := t.TempDir()
	t.Setenv("ENV", "TEST")
	t.Setenv("FOLDER", dataDir)
	t.Setenv("API_BASE_URL", srv.URL+"/api/v1")
	t.Setenv("TOKEN_STORAGE_KEY", "")
	t.Setenv("API_TIMEOUT", "")

	return &testFixture{backend: backend, dataDir: dataDir}
}

// run executes one command the way a separate process would.
func (f *testFixture) run(stdin string, args ...string) (string, error) {
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	out, err := f.run(testPassword+"\n", "login", "--email", testEmail, "--password-stdin")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in as "+testEmail)
}

func (f *testFixture) storedValues(t *testing.T) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dataDir, "storage.json"))
	if os.IsNotExist(err) {
		return map[string]string{}
	}
	require.NoError(t, err)
	values := map[string]string{}
	require.NoError(t, json.Unmarshal(data, &values))
	return values
}

func TestLogin(t *testing.T) {
	t.Run("persists the token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.login(t)
		require.Equal(t, testToken, f.storedValues(t)["auth_token"])
	})

	t.Run("invalid credentials print the fixed message", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.run("wrong\n", "login", "--email", testEmail, "--password-stdin")
		require.EqualError(t, err, session.InvalidCredentialsMessage)
		require.Empty(t, f.storedValues(t)["auth_token"])
	})

	t.Run("email is required", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.run(testPassword+"\n", "login", "--password-stdin")
		require.Error(t, err)
	})

	t.Run("ephemeral sessions are not persisted", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.run(testPassword+"\n", "--ephemeral", "login", "--email", testEmail, "--password-stdin")
		require.NoError(t, err)
		require.Empty(t, f.storedValues(t)["auth_token"])

		_, err = f.run("", "whoami")
		require.True(t, apperrors.Is(err, apperrors.ErrNotAuthenticated))
	})
}

func TestWhoAmI(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.run("", "whoami")
	require.True(t, apperrors.Is(err, apperrors.ErrNotAuthenticated))

	f.login(t)
	out, err := f.run("", "whoami")
	require.NoError(t, err)
	require.Contains(t, out, testEmail)
	require.Contains(t, out, "Tenant ID:")
	require.Contains(t, out, "7")
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	out, err := f.run("", "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Signed out")
	require.Empty(t, f.storedValues(t)["auth_token"])

	// Logging out twice is fine
	_, err = f.run("", "logout")
	require.NoError(t, err)

	_, err = f.run("", "calls")
	require.True(t, apperrors.Is(err, apperrors.ErrNotAuthenticated))
}

func TestRevokedTokenIsCleared(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "storage.json"), []byte(`{"auth_token":"stale","theme":"dark"}`), 0o600))

	_, err := f.run("", "whoami")
	require.True(t, apperrors.Is(err, apperrors.ErrNotAuthenticated))

	values := f.storedValues(t)
	require.NotContains(t, values, "auth_token")
	require.Equal(t, "dark", values["theme"])
}

func TestResourceCommands(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	t.Run("calls", func(t *testing.T) {
		out, err := f.run("", "calls")
		require.NoError(t, err)
		require.Contains(t, out, "+911234")
		require.Contains(t, out, "42s")
		require.Contains(t, out, "queued")
	})

	t.Run("products", func(t *testing.T) {
		out, err := f.run("", "products")
		require.NoError(t, err)
		require.Contains(t, out, "Silk saree")
		require.Contains(t, out, "₹1499.50")
	})

	t.Run("settings show", func(t *testing.T) {
		out, err := f.run("", "settings", "show")
		require.NoError(t, err)
		require.Contains(t, out, "10s")
	})

	t.Run("settings set sends only the given fields", func(t *testing.T) {
		out, err := f.run("", "settings", "set", "--min-duration", "30")
		require.NoError(t, err)
		require.Contains(t, out, "Settings saved successfully.")

		f.backend.mu.Lock()
		defer f.backend.mu.Unlock()
		require.Len(t, f.backend.updates, 1)
		require.Equal(t, map[string]any{"min_call_duration_seconds": float64(30)}, f.backend.updates[0])
	})

	t.Run("settings set rejects bad input before sending", func(t *testing.T) {
		_, err := f.run("", "settings", "set")
		require.True(t, apperrors.Is(err, apperrors.ErrValidation))

		_, err = f.run("", "settings", "set", "--send-mode", "spam_everyone")
		require.True(t, apperrors.Is(err, apperrors.ErrValidation))

		f.backend.mu.Lock()
		defer f.backend.mu.Unlock()
		require.Len(t, f.backend.updates, 1)
	})
}
