// ABOUTME: Entry point for the cold-room analyzer service
// ABOUTME: Provides an HTTP API over the load and evaporator-selection engine

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/refritek/coldroom-analyzer/cache"
	"github.com/refritek/coldroom-analyzer/catalog"
	"github.com/refritek/coldroom-analyzer/config"
	"github.com/refritek/coldroom-analyzer/handlers"
	"github.com/refritek/coldroom-analyzer/logger"
	"github.com/refritek/coldroom-analyzer/middleware"
	"github.com/refritek/coldroom-analyzer/models"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	godotenv.Load()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Cold-Room Analyzer")

	ds, err := catalog.Load(cfg.DatasetPath)
	if err != nil {
		slog.Error("Failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded",
		"path", cfg.DatasetPath,
		"sheets", len(ds.CapacityTables),
		"catalogs", len(ds.Catalogs),
		"thermal", ds.Thermal != nil,
	)

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)

	h := handlers.NewHandler(cfg, c, ds)

	if cfg.DatasetWatch {
		w, err := catalog.NewWatcher(cfg.DatasetPath, func(fresh *models.Dataset) {
			h.SwapDataset(fresh)
			middleware.RecordDatasetReload()
		})
		if err != nil {
			slog.Error("Failed to start dataset watcher", "error", err)
			os.Exit(1)
		}
		go w.Start(context.Background())
		slog.Info("Dataset watcher enabled", "path", cfg.DatasetPath)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		chained := middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Metrics,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.RateLimit(limiter),
		)
		mux.HandleFunc(route.Method+" "+route.Path, chained)
	}
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
