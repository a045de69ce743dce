package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/callwa-dashboard/session"
	"github.com/rs/zerolog/log"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Already signed in, nothing to do here
		if s.session.IsAuthenticated() {
			redirectSuccess(w, r, RouteOverview)
			return
		}

		render(w, s.views.login, LoginPageData{
			AppName: s.appName,
			Error:   r.URL.Query().Get("error"),
			Email:   r.URL.Query().Get("email"),
		})
	}
}

// LoginSubmissionHandler processes the login form submission (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		preserve := url.Values{"email": {email}}

		if email == "" || password == "" {
			redirectWithError(w, r, RouteLogin, "Email and password are required", preserve)
			return
		}

		if err := s.session.Login(r.Context(), email, password); err != nil {
			log.Debug().Err(err).Str("email", email).Msg("Login submission failed")
			redirectWithError(w, r, RouteLogin, loginErrorMessage(s.session.Snapshot()), preserve)
			return
		}

		redirectSuccess(w, r, RouteOverview)
	}
}

// LogoutHandler ends the session and returns to the login page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session.Logout()
		redirectSuccess(w, r, RouteLogin)
	}
}

// loginErrorMessage returns the store's user-facing message. A login that was
// superseded leaves no message behind, so fall back to the fixed text.
func loginErrorMessage(snapshot session.Session) string {
	if snapshot.Error != "" {
		return snapshot.Error
	}
	return session.InvalidCredentialsMessage
}
