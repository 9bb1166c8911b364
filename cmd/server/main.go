package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/analytics"
	"github.com/scmmishra/subly/internal/cache"
	"github.com/scmmishra/subly/internal/cloak"
	"github.com/scmmishra/subly/internal/config"
	"github.com/scmmishra/subly/internal/geo"
	"github.com/scmmishra/subly/internal/handlers"
	"github.com/scmmishra/subly/internal/kv"
	"github.com/scmmishra/subly/internal/logger"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/presets"
	"github.com/scmmishra/subly/internal/registry"
	"github.com/scmmishra/subly/internal/slug"
	"github.com/scmmishra/subly/internal/web"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	store, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("open store")
	}
	defer store.Close()

	geoReader, err := geo.Open(cfg.GeoIPPath)
	if err != nil {
		log.Warn().Err(err).Msg("geo lookups disabled")
		geoReader, _ = geo.Open("")
	}
	defer geoReader.Close()

	p := presets.Default(cfg.Offers)
	reg := registry.New(models.NewLinkStore(store), p, slug.New(nil, p.Names))

	renderer, err := cloak.NewRenderer(cfg.PreviewMaxAge)
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}

	linkCache := cache.New(cfg.CacheSize, cfg.CacheTTL)
	collector := analytics.NewCollector(reg, geoReader, cfg.BufferSize, cfg.FlushInterval)

	webHandler, err := web.NewHandler(reg, cfg.Domains)
	if err != nil {
		log.Fatal().Err(err).Msg("dashboard")
	}

	router := handlers.NewRouter(handlers.Deps{
		AdminKey:  cfg.AdminKey,
		Domains:   cfg.Domains,
		Links:     &handlers.LinkHandler{Registry: reg, Cache: linkCache},
		Redirect:  &handlers.RedirectHandler{Registry: reg, Cache: linkCache, Renderer: renderer, Collector: collector},
		Dashboard: webHandler.Dashboard,
		QRCode:    webHandler.QRCode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Strs("domains", cfg.Domains).
			Strs("offers", p.OfferIDs()).
			Msg("subly listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	collector.Shutdown()
	log.Info().Msg("goodbye")
}
