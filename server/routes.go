package server

import (
	"encoding/json"
	"net/http"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Dashboard routes (require an authenticated session)
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.OverviewHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteCalls, ChainMiddleware(s.CallsHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ProductsHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteAutomationSettings, ChainMiddleware(s.AutomationSettingsHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteAutomationSettings, ChainMiddleware(s.AutomationSettingsSaveHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteWhatsAppSettings, ChainMiddleware(s.WhatsAppSettingsHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Anything else goes back to the overview, which the guard may bounce to /login.
	s.RegisterRouteHandler("/", ChainMiddleware(redirectTo(RouteOverview), s.HTMLMiddleWare()...))
}

// HealthHandler reports liveness and whether a session is established.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":        "ok",
			"authenticated": s.session.IsAuthenticated(),
		})
	}
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectSuccess(w, r, target)
	}
}
