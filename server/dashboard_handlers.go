package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Page keys used to highlight the active navigation entry
const (
	pageOverview   = "overview"
	pageCalls      = "calls"
	pageProducts   = "products"
	pageAutomation = "automation"
	pageWhatsApp   = "whatsapp"
)

func (s *Server) OverviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := s.session.Snapshot()
		render(w, s.views.overview, OverviewPageData{
			basePage:    s.basePage(snapshot, "Dashboard", pageOverview),
			WelcomeName: welcomeName(snapshot.User),
			TenantID:    tenantLabel(snapshot.User),
		})
	}
}

func (s *Server) CallsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := CallsPageData{basePage: s.basePage(s.session.Snapshot(), "Calls", pageCalls)}

		calls, err := s.api.ListCalls(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load calls")
			data.Error = "Failed to load calls. Try again."
		}
		for _, c := range calls {
			data.Calls = append(data.Calls, newCallRow(c))
		}

		render(w, s.views.calls, data)
	}
}

func (s *Server) ProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ProductsPageData{basePage: s.basePage(s.session.Snapshot(), "Catalog", pageProducts)}

		products, err := s.api.ListProducts(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load products")
			data.Error = "Failed to load products. Try again."
		}
		for _, p := range products {
			data.Products = append(data.Products, newProductRow(p))
		}

		render(w, s.views.products, data)
	}
}

// WhatsAppSettingsHandler is informational only; nothing is fetched.
func (s *Server) WhatsAppSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, s.views.whatsAppSettings, s.basePage(s.session.Snapshot(), "WhatsApp", pageWhatsApp))
	}
}
