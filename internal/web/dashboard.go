package web

import (
	"net/http"

	"github.com/scmmishra/subly/internal/presets"
)

type DashboardData struct {
	Domains     []string
	OfferIDs    []string
	CustomOffer string
}

// Dashboard serves the management page. It holds no data itself; the page
// talks to /api with a token kept in the browser.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	offers := h.reg.Presets().OfferIDs()
	if offers == nil {
		offers = []string{}
	}
	h.templates.Render(w, "templates/dashboard.html", DashboardData{
		Domains:     h.domains,
		OfferIDs:    offers,
		CustomOffer: presets.CustomOffer,
	})
}
