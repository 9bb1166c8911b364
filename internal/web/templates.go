package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

type TemplateRegistry struct {
	cache map[string]*template.Template
}

func NewTemplateRegistry() (*TemplateRegistry, error) {
	tr := &TemplateRegistry{cache: make(map[string]*template.Template)}
	for _, page := range []string{"templates/dashboard.html"} {
		name := page[strings.LastIndex(page, "/")+1:]
		t, err := template.New(name).ParseFS(templateFS, page)
		if err != nil {
			return nil, err
		}
		tr.cache[page] = t
	}
	return tr, nil
}

// Render executes into a buffer first so a failing template never leaves a
// half-written page.
func (tr *TemplateRegistry) Render(w http.ResponseWriter, name string, data any) {
	t, ok := tr.cache[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
