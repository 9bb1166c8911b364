package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/cache"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/registry"
)

type LinkHandler struct {
	Registry *registry.Registry
	Cache    *cache.LinkCache
}

type createLinkRequest struct {
	OfferID     string `json:"offerId" validate:"omitempty,max=64"`
	CustomCode  string `json:"customCode" validate:"omitempty,max=63"`
	TargetURL   string `json:"targetUrl" validate:"omitempty,http_url"`
	Domain      string `json:"domain" validate:"required,max=253"`
	Title       string `json:"title" validate:"omitempty,max=300"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,http_url"`
}

type createLinkResponse struct {
	Success    bool   `json:"success"`
	URL        string `json:"url"`
	ShortID    string `json:"shortId"`
	PathCode   string `json:"pathCode"`
	UniqueCode string `json:"uniqueCode"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errs, ok := validateStruct(req); ok {
		writeValidationErrors(w, errs)
		return
	}

	created, err := h.Registry.Create(r.Context(), registry.CreateInput{
		OfferID:     req.OfferID,
		CustomCode:  req.CustomCode,
		TargetURL:   req.TargetURL,
		Domain:      req.Domain,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createLinkResponse{
		Success:    true,
		URL:        created.URL,
		ShortID:    created.Link.Subdomain,
		PathCode:   created.Link.PathCode,
		UniqueCode: created.Link.UniqueCode,
	})
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.Registry.List(r.Context())
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	if links == nil {
		links = []models.Link{}
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: links})
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sub := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "subdomain")))
	if err := h.Registry.Delete(r.Context(), sub); err != nil {
		writeRegistryError(w, err)
		return
	}
	h.Cache.Invalidate(sub)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Link " + sub + " deleted"})
}

func (h *LinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Registry.Stats(r.Context(), chi.URLParam(r, "subdomain"))
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: st})
}

// writeRegistryError maps registry and store errors onto HTTP statuses.
func writeRegistryError(w http.ResponseWriter, err error) {
	var ve *registry.ValidationError
	var se *models.StoreError
	switch {
	case errors.As(err, &ve):
		JSONError(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, registry.ErrConflict):
		JSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, registry.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &se):
		log.Error().Err(err).Str("op", se.Op).Str("key", se.Key).Msg("store failure")
		JSONError(w, "storage error", http.StatusInternalServerError)
	default:
		log.Error().Err(err).Msg("unhandled error")
		JSONError(w, "internal error", http.StatusInternalServerError)
	}
}
