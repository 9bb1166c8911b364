package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/scmmishra/subly/internal/kv"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/presets"
	"github.com/scmmishra/subly/internal/registry"
	"github.com/scmmishra/subly/internal/slug"
	"github.com/scmmishra/subly/internal/web"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func setupRouter(t *testing.T) (*chi.Mux, *registry.Registry) {
	t.Helper()

	store, err := kv.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	p := presets.Default(map[string]string{"SPRING": "https://offers.test/spring"})
	reg := registry.New(models.NewLinkStore(store), p, slug.New(rand.New(rand.NewSource(1)), p.Names))

	h, err := web.NewHandler(reg, []string{"short.io", "s.co"})
	if err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Get("/", h.Dashboard)
	r.Get("/api/qr/{subdomain}", h.QRCode)
	return r, reg
}

func createLink(t *testing.T, reg *registry.Registry, code string) {
	t.Helper()
	_, err := reg.Create(context.Background(), registry.CreateInput{
		CustomCode: code,
		TargetURL:  "https://example.com",
		Domain:     "short.io",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDashboard_Renders(t *testing.T) {
	r, _ := setupRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`<option value="short.io">short.io</option>`,
		`<option value="s.co">s.co</option>`,
		`<option value="SPRING">SPRING</option>`,
		`<option value="CUSTOM">Custom target</option>`,
		`/api/create`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %s", want)
		}
	}
}

func TestQRCode_ReturnsPNG(t *testing.T) {
	r, reg := setupRouter(t)
	createLink(t, reg, "promo")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/qr/promo", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), pngMagic) {
		t.Error("body is not a PNG")
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("Content-Disposition = %q, want empty", cd)
	}
}

func TestQRCode_DownloadWithOptions(t *testing.T) {
	r, reg := setupRouter(t)
	createLink(t, reg, "promo")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/qr/promo?shape=circle&fg=%23112233&dl=1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	want := `attachment; filename="promo-qr.png"`
	if cd := rr.Header().Get("Content-Disposition"); cd != want {
		t.Errorf("Content-Disposition = %q, want %q", cd, want)
	}
}

func TestQRCode_UnknownLink(t *testing.T) {
	r, _ := setupRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/qr/nobody", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "link not found" {
		t.Errorf("error = %q, want %q", body.Error, "link not found")
	}
}
