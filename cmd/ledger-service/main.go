package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/cache"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/db"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/ledger"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/refresher"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/retry"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	fmt.Println("=== Fortuna Ledger Service v0 ===")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Printf("❌ Invalid timezone: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Reporting timezone: %s\n", loc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startup := retry.NewRetryPolicy(5, time.Second)

	// Connect to Holocron DB
	holocronDB, err := db.NewHolocronPostgres(cfg.Database.HolocronDSN)
	if err != nil {
		fmt.Printf("❌ Failed to open Holocron: %v\n", err)
		os.Exit(1)
	}
	defer holocronDB.Close()

	if err := startup.Execute(ctx, holocronDB.Ping); err != nil {
		fmt.Printf("❌ Failed to connect to Holocron: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Holocron DB")

	// Connect to Redis for the report cache and update stream
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := startup.Execute(ctx, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	reportCache := cache.NewRedisReportCache(redisClient, cfg.Ledger.CacheTTL)
	fmt.Printf("✓ Report cache TTL: %v\n", reportCache.TTL())
	streamPublisher := publisher.NewStreamPublisher(redisClient, cfg.Ledger.Stream)
	svc := ledger.NewService(loc)

	if cfg.Refresher.Enabled {
		r := refresher.NewRefresher(holocronDB, reportCache, streamPublisher, svc, cfg.Refresher.PollInterval)
		go func() {
			if err := r.Start(ctx); err != nil {
				fmt.Printf("❌ Refresher stopped: %v\n", err)
			}
		}()
		fmt.Printf("✓ Refresher polling every %v, publishing to %s\n", cfg.Refresher.PollInterval, cfg.Ledger.Stream)
	}

	ledgerHandler := handlers.NewLedgerHandler(holocronDB, reportCache, svc)
	oddsHandler := handlers.NewOddsHandler()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", ledgerHandler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/summary", ledgerHandler.GetSummary)
			r.Get("/metrics", ledgerHandler.GetMetrics)
			r.Get("/daily", ledgerHandler.GetDaily)
			r.Get("/categories", ledgerHandler.GetCategories)
			r.Get("/parlays", ledgerHandler.GetParlays)
			r.Post("/preview", ledgerHandler.PreviewReport)
		})

		r.Get("/odds/combine", oddsHandler.CombineOdds)
		r.Get("/odds/convert", oddsHandler.ConvertOdds)
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Ledger service listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/ledger/summary")
		fmt.Println("    GET  /api/v1/ledger/metrics")
		fmt.Println("    GET  /api/v1/ledger/daily")
		fmt.Println("    GET  /api/v1/ledger/categories")
		fmt.Println("    GET  /api/v1/ledger/parlays")
		fmt.Println("    POST /api/v1/ledger/preview")
		fmt.Println("    GET  /api/v1/odds/combine")
		fmt.Println("    GET  /api/v1/odds/convert")

		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
