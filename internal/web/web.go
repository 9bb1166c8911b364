// Package web serves the operator dashboard and link QR codes.
package web

import (
	"github.com/scmmishra/subly/internal/registry"
)

type Handler struct {
	reg       *registry.Registry
	domains   []string
	templates *TemplateRegistry
}

func NewHandler(reg *registry.Registry, domains []string) (*Handler, error) {
	tmpl, err := NewTemplateRegistry()
	if err != nil {
		return nil, err
	}
	return &Handler{reg: reg, domains: domains, templates: tmpl}, nil
}
