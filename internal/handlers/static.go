package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

const robotsTxt = `User-agent: *
Disallow: /

User-agent: Googlebot
Disallow: /

User-agent: facebookexternalhit
Allow: /

User-agent: Facebot
Allow: /
`

func Robots(w http.ResponseWriter, r *http.Request) {
	publicCache(w, 24*time.Hour)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(robotsTxt))
}

func Favicon(w http.ResponseWriter, r *http.Request) {
	publicCache(w, 24*time.Hour)
	w.WriteHeader(http.StatusNoContent)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not Found"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes the {"error": msg} body used by every API route.
func JSONError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
