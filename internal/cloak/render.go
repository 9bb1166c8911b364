package cloak

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/scmmishra/subly/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	DefaultPreviewMaxAge = time.Hour
	redirectDelay        = 1200 * time.Millisecond
)

// Destination appends the tracking code to target as the ref parameter.
func Destination(target, code string) string {
	if code == "" {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "ref=" + code
}

type Renderer struct {
	preview       *template.Template
	redirect      *template.Template
	previewMaxAge time.Duration
}

func NewRenderer(previewMaxAge time.Duration) (*Renderer, error) {
	if previewMaxAge <= 0 {
		previewMaxAge = DefaultPreviewMaxAge
	}
	preview, err := template.ParseFS(templateFS, "templates/preview.html")
	if err != nil {
		return nil, err
	}
	redirect, err := template.ParseFS(templateFS, "templates/redirect.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{preview: preview, redirect: redirect, previewMaxAge: previewMaxAge}, nil
}

type previewData struct {
	Title       string
	Description string
	ImageURL    string
	URL         string
}

// Preview writes the share-metadata document. pathCode is the path the
// crawler requested; the stored one is used when it is empty.
func (r *Renderer) Preview(w http.ResponseWriter, link *models.Link, pathCode string) error {
	if pathCode == "" {
		pathCode = link.PathCode
	}
	data := previewData{
		Title:       link.Title,
		Description: link.Description,
		ImageURL:    link.ImageURL,
		URL:         "https://" + link.Subdomain + "." + link.Domain + "/" + pathCode,
	}

	h := w.Header()
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(r.previewMaxAge.Seconds())))
	h.Set("Vary", "User-Agent")
	h.Del("Pragma")
	h.Del("Expires")
	return write(w, r.preview, data)
}

type redirectData struct {
	Destination string
	DelayMS     int64
}

// Redirect writes the document that navigates the browser to the link target.
func (r *Renderer) Redirect(w http.ResponseWriter, link *models.Link) error {
	data := redirectData{
		Destination: Destination(link.TargetURL, link.UniqueCode),
		DelayMS:     redirectDelay.Milliseconds(),
	}
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	return write(w, r.redirect, data)
}

func write(w http.ResponseWriter, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", t.Name(), err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
