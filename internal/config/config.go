package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/scmmishra/subly/internal/presets"
)

type Config struct {
	Port          string
	Store         string
	AdminKey      string
	Domains       []string
	GeoIPPath     string
	FlushInterval time.Duration
	BufferSize    int
	CacheSize     int
	CacheTTL      time.Duration
	PreviewMaxAge time.Duration
	Offers        map[string]string
	LogLevel      string
	LogPretty     bool
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func Load() (*Config, error) {
	adminKey := os.Getenv("SUBLY_ADMIN_KEY")
	if adminKey == "" {
		return nil, fmt.Errorf("SUBLY_ADMIN_KEY is required")
	}

	domainsRaw := os.Getenv("SUBLY_DOMAINS")
	if domainsRaw == "" {
		return nil, fmt.Errorf("SUBLY_DOMAINS is required")
	}
	var domains []string
	for _, d := range strings.Split(domainsRaw, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("SUBLY_DOMAINS has no usable domain")
	}

	offers, err := presets.ParseOffers(os.Getenv("SUBLY_OFFERS"))
	if err != nil {
		return nil, fmt.Errorf("SUBLY_OFFERS: %w", err)
	}

	cfg := &Config{
		Port:          envOrDefault("SUBLY_PORT", "8080"),
		Store:         envOrDefault("SUBLY_STORE", "sqlite:./subly.db"),
		AdminKey:      adminKey,
		Domains:       domains,
		GeoIPPath:     os.Getenv("SUBLY_GEOIP_PATH"),
		FlushInterval: parseDuration("SUBLY_FLUSH_INTERVAL", 2*time.Second),
		BufferSize:    parseInt("SUBLY_BUFFER_SIZE", 10000),
		CacheSize:     parseInt("SUBLY_CACHE_SIZE", 10000),
		CacheTTL:      parseDuration("SUBLY_CACHE_TTL", 30*time.Second),
		PreviewMaxAge: parseDuration("SUBLY_PREVIEW_MAX_AGE", time.Hour),
		Offers:        offers,
		LogLevel:      envOrDefault("SUBLY_LOG_LEVEL", "info"),
		LogPretty:     parseBool("SUBLY_LOG_PRETTY", false),
	}

	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("SUBLY_FLUSH_INTERVAL must be positive")
	}
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("SUBLY_BUFFER_SIZE must be positive")
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("SUBLY_CACHE_SIZE must be positive")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("SUBLY_CACHE_TTL must be positive")
	}
	if cfg.PreviewMaxAge <= 0 {
		return nil, fmt.Errorf("SUBLY_PREVIEW_MAX_AGE must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
