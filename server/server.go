package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/callwa-dashboard/api"
	"github.com/jrsteele09/callwa-dashboard/internal/config"
	"github.com/jrsteele09/callwa-dashboard/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SessionStore is the part of session.Store the views use.
type SessionStore interface {
	Snapshot() session.Session
	IsAuthenticated() bool
	Login(ctx context.Context, email, password string) error
	Logout()
}

var _ SessionStore = (*session.Store)(nil)

// DashboardAPI is the set of resource bindings rendered by the views.
type DashboardAPI interface {
	ListCalls(ctx context.Context) ([]api.Call, error)
	ListProducts(ctx context.Context) ([]api.Product, error)
	GetAutomationSettings(ctx context.Context) (*api.AutomationSettings, error)
	UpdateAutomationSettings(ctx context.Context, update api.AutomationSettingsUpdate) (*api.AutomationSettings, error)
}

var _ DashboardAPI = (*api.Client)(nil)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	appName string
	mux     *http.ServeMux
	routes  []string
	session SessionStore
	api     DashboardAPI
	views   *views
}

func New(cfg config.EnvConfig, store SessionStore, dashboardAPI DashboardAPI) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if store == nil {
		return nil, errors.New("[Server New] session store is required")
	}
	if dashboardAPI == nil {
		return nil, errors.New("[Server New] dashboard API is required")
	}

	views, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:     cfg.GetEnv(),
		appName: cfg.GetAppName(),
		mux:     http.NewServeMux(),
		session: store,
		api:     dashboardAPI,
		views:   views,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
