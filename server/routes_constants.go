package server

// Route path constants
// All dashboard routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Dashboard Routes (guarded)
	RouteOverview           = "/"
	RouteCalls              = "/calls"
	RouteProducts           = "/products"
	RouteAutomationSettings = "/settings/automation"
	RouteWhatsAppSettings   = "/settings/whatsapp"

	// Operational Routes
	RouteHealth = "/healthz"
)
