package server

import (
	"net/http"
)

// RequireSession is the route guard for dashboard views. It evaluates the
// session on every request and sends unauthenticated callers to the login
// page; the 303 keeps the protected URL out of the browser history.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !s.session.IsAuthenticated() {
				redirectSuccess(w, r, RouteLogin)
				return
			}
			next(w, r)
		}
	}
}
