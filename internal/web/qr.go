package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	qrcode "github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/scmmishra/subly/internal/handlers"
	"github.com/scmmishra/subly/internal/models"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// QRCode renders the link's public URL as a PNG.
// Query: shape=circle, fg=#rrggbb, dl=1 for a download.
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	sub := chi.URLParam(r, "subdomain")
	link, err := h.reg.Get(r.Context(), sub)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			handlers.JSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("subdomain", sub).Msg("qr lookup")
		handlers.JSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	png, err := renderQR(link.FullURL(), r.URL.Query().Get("shape"), r.URL.Query().Get("fg"))
	if err != nil {
		log.Error().Err(err).Str("subdomain", sub).Msg("qr render")
		handlers.JSONError(w, "failed to render qr code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if r.URL.Query().Get("dl") == "1" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+link.Subdomain+"-qr.png\"")
	}
	w.Write(png)
}

func renderQR(content, shape, fg string) ([]byte, error) {
	opts := []standard.ImageOption{
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(10),
		standard.WithBorderWidth(20),
		standard.WithBgTransparent(),
	}
	if shape == "circle" {
		opts = append(opts, standard.WithCircleShape())
	}
	if hexColorRe.MatchString(fg) {
		opts = append(opts, standard.WithFgColorRGBHex(fg))
	}

	qrc, err := qrcode.New(content)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := qrc.Save(standard.NewWithWriter(nopCloser{&buf}, opts...)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
