package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Route int

const (
	RouteNotFound Route = iota
	RouteRobots
	RouteFavicon
	RouteRedirect
	RouteAPI
	RouteDashboard
)

func (r Route) String() string {
	switch r {
	case RouteRobots:
		return "robots"
	case RouteFavicon:
		return "favicon"
	case RouteRedirect:
		return "redirect"
	case RouteAPI:
		return "api"
	case RouteDashboard:
		return "dashboard"
	default:
		return "not_found"
	}
}

// Classify picks the handler for a request. The first matching rule wins.
func Classify(host, path string, domains []string) Route {
	switch {
	case path == "/robots.txt":
		return RouteRobots
	case path == "/favicon.ico":
		return RouteFavicon
	}
	if _, ok := SubdomainOf(host, domains); ok {
		return RouteRedirect
	}
	switch {
	case strings.HasPrefix(path, "/api/"):
		return RouteAPI
	case path == "/" || path == "":
		return RouteDashboard
	}
	return RouteNotFound
}

// SubdomainOf returns the first label of host when host sits strictly below
// one of domains. "www." hosts are treated as the bare domain.
func SubdomainOf(host string, domains []string) (string, bool) {
	host = normalizeHost(host)
	if host == "" || strings.HasPrefix(host, "www.") {
		return "", false
	}
	for _, d := range domains {
		d = strings.ToLower(d)
		if d == "" || host == d || !strings.HasSuffix(host, "."+d) {
			continue
		}
		sub, _, _ := strings.Cut(host, ".")
		if sub == "" {
			return "", false
		}
		return sub, true
	}
	return "", false
}

func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}

type Deps struct {
	AdminKey  string
	Domains   []string
	Links     *LinkHandler
	Redirect  *RedirectHandler
	Dashboard http.HandlerFunc
	QRCode    http.HandlerFunc
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog)
	r.Use(Recoverer)
	r.Use(SecurityHeaders)

	// Served on every host and for every method.
	r.HandleFunc("/robots.txt", Robots)
	r.HandleFunc("/favicon.ico", Favicon)

	r.Group(func(r chi.Router) {
		r.Use(hostDispatch(d.Domains, d.Redirect))

		r.Get("/healthz", Health)

		r.Route("/api", func(r chi.Router) {
			r.Use(AuthMiddleware(d.AdminKey))
			r.Post("/create", d.Links.Create)
			r.Get("/list", d.Links.List)
			r.Delete("/delete/{subdomain}", d.Links.Delete)
			r.Delete("/delete/", d.Links.Delete)
			r.Get("/stats/{subdomain}", d.Links.Stats)
			if d.QRCode != nil {
				r.Get("/qr/{subdomain}", d.QRCode)
			}
		})
		if d.Dashboard != nil {
			r.Get("/", d.Dashboard)
		}
		r.NotFound(NotFound)
		r.MethodNotAllowed(NotFound)
	})

	return r
}

// hostDispatch hands requests on a link subdomain to the redirect handler,
// whatever their path.
func hostDispatch(domains []string, rh *RedirectHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Classify(r.Host, r.URL.Path, domains) != RouteRedirect {
				next.ServeHTTP(w, r)
				return
			}
			sub, _ := SubdomainOf(r.Host, domains)
			rh.Serve(w, r, sub, strings.TrimPrefix(r.URL.Path, "/"))
		})
	}
}
