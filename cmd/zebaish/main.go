// Package main is the entry point for the Zebaish storefront server.
// It loads configuration, connects to services, loads the catalog, sets up
// routing, and serves HTTP until SIGINT or SIGTERM.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"zebaish/internal/admin"
	"zebaish/internal/cache"
	"zebaish/internal/catalog"
	"zebaish/internal/config"
	"zebaish/internal/database"
	"zebaish/internal/handlers"
	"zebaish/internal/metrics"
	"zebaish/internal/middleware"
	"zebaish/internal/persist"
	"zebaish/internal/render"
	"zebaish/internal/router"
	"zebaish/internal/session"
	"zebaish/web"
)

func main() {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"env", cfg.App.Env,
		"addr", cfg.Addr(),
		"backend", cfg.Persist.Backend,
	)

	// Valkey carries sessions, flashes, rate limits and the grid cache
	// whatever the persistence backend.
	rdb, err := cache.ConnectValkey(ctx, cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer rdb.Close()

	backend, closeBackend, err := openBackend(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeBackend()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewStorefront(reg)

	store := catalog.NewStore(catalogSource(cfg), backend)
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.Timeout)
	tier := store.Load(loadCtx)
	cancel()
	m.IncCatalogLoad(string(tier))
	slog.Info("catalog ready", "tier", tier, "products", store.Len())

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	grid := cache.NewGridCache(rdb, 0)
	grid.Invalidate(ctx, "catalog loaded")

	secure := cfg.IsProd()
	site := &handlers.Site{
		Renderer: renderer,
		Catalog:  store,
		Backend:  backend,
		Sessions: session.NewStore(rdb, secure),
		Grid:     grid,
		Metrics:  m,
	}
	r := router.New(router.Deps{
		Sessions:     site.Sessions,
		Shop:         handlers.NewShop(site),
		Admin:        handlers.NewAdmin(site, admin.New(store, middleware.NoticesFromCtx)),
		Metrics:      m,
		Gatherer:     reg,
		Static:       static,
		FormLimiter:  middleware.NewRateLimiter(rdb, "forms", cfg.Limits.FormRequests, cfg.Limits.FormWindow),
		SecureCookie: secure,
		ProductCount: store.Len,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")

		// Give active requests up to 30 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openBackend returns the blob backend chosen by PERSIST_BACKEND and a
// function releasing its resources.
func openBackend(ctx context.Context, cfg *config.Config, rdb *redis.Client) (persist.Backend, func(), error) {
	switch cfg.Persist.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		version, err := database.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		slog.Info("postgres blob backend ready", "schema_version", version)
		return persist.NewPostgres(db), func() { closeDB(db) }, nil
	case config.BackendMemory:
		slog.Warn("using in-memory persistence; catalog edits and carts are lost on restart")
		return persist.NewMemory(), func() {}, nil
	default:
		return persist.NewValkey(rdb), func() {}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Warn("close database", "error", err)
	}
}

// catalogSource picks the remote catalog tier: CATALOG_URL, else
// CATALOG_FILE, else none.
func catalogSource(cfg *config.Config) catalog.Source {
	switch {
	case cfg.Catalog.URL != "":
		return &catalog.HTTPSource{URL: cfg.Catalog.URL, Client: &http.Client{Timeout: cfg.Catalog.Timeout}}
	case cfg.Catalog.File != "":
		return &catalog.FileSource{Path: cfg.Catalog.File}
	}
	return nil
}
