package handlers

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/analytics"
	"github.com/scmmishra/subly/internal/cache"
	"github.com/scmmishra/subly/internal/cloak"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/registry"
)

type RedirectHandler struct {
	Registry  *registry.Registry
	Cache     *cache.LinkCache
	Renderer  *cloak.Renderer
	Collector *analytics.Collector
}

// Serve resolves sub and renders the preview or redirect document. The path
// code is decorative and never checked against the stored one.
func (h *RedirectHandler) Serve(w http.ResponseWriter, r *http.Request, sub, pathCode string) {
	link, found := h.Cache.Get(sub)
	if !found {
		var err error
		link, err = h.Registry.Get(r.Context(), sub)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				NotFound(w, r)
				return
			}
			log.Error().Err(err).Str("subdomain", sub).Msg("resolve link")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.Cache.Set(link)
	}

	client := cloak.Classify(r.UserAgent())

	// chi's RealIP middleware already sets RemoteAddr from X-Forwarded-For/X-Real-IP
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	if ip == "" {
		ip = r.RemoteAddr
	}
	h.Collector.Push(analytics.Visit{
		Subdomain: link.Subdomain,
		At:        time.Now().UTC(),
		IP:        ip,
		UserAgent: r.UserAgent(),
		Preview:   client.Preview,
	})

	var err error
	if client.Preview {
		err = h.Renderer.Preview(w, link, pathCode)
	} else {
		err = h.Renderer.Redirect(w, link)
	}
	if err != nil {
		log.Error().Err(err).Str("subdomain", sub).Bool("preview", client.Preview).Msg("render")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
