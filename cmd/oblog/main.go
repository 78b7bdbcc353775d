// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/oblog/internal/config"
	"github.com/olegiv/oblog/internal/handler"
	"github.com/olegiv/oblog/internal/logging"
	"github.com/olegiv/oblog/internal/mail"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/store/postgres"
	"github.com/olegiv/oblog/internal/version"
	"github.com/olegiv/oblog/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oblog - a small blog with comments, tags, feeds and search\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SECRET_KEY       CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DB_DRIVER        sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DB_PATH          SQLite database path (default: ./data/oblog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DATABASE_URL     PostgreSQL DSN (required for postgres)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_TIME_ZONE        Site time zone for post dates (default: UTC)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SMTP_HOST        SMTP server for share mails (default: log only)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := seed(ctx, cfg, repo); err != nil {
		return err
	}

	renderer, err := render.New(render.Config{
		TemplatesFS: web.TemplatesFS(),
		Location:    cfg.Location(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	var sender mail.Sender
	if cfg.SMTPEnabled() {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Domain:   cfg.MailDomain,
		})
		slog.Info("share mails go to SMTP", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		sender = mail.NewLogSender(logger)
		slog.Info("no SMTP host configured, share mails are logged")
	}

	blogHandler := handler.NewBlogHandler(
		repo,
		renderer,
		service.NewSearchService(repo, cfg.SearchLanguage),
		service.NewShareService(sender, cfg.MailFrom, logger),
		logger,
	)
	healthHandler := handler.NewHealthHandler(repo, versionInfo.Short(), logger)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.AppendSlash(r))            // Redirect /path to /path/ (301) when only that matches
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(cfg.SecretKey[:config.MinSecretKeyLength]),
		cfg.IsDevelopment(),
		cfg.ServerAddr(),
	)))
	slog.Info("security middleware initialized", "hsts", !cfg.IsDevelopment())

	// Health check endpoints
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	staticMaxAge := 24 * time.Hour
	if cfg.IsDevelopment() {
		staticMaxAge = 0
	}
	staticHandler := middleware.StaticCache(staticMaxAge, versionInfo.Short())(
		http.StripPrefix(handler.RouteStatic+"/", http.FileServer(http.FS(web.StaticFS()))),
	)
	r.Handle(handler.RouteStatic+"/*", staticHandler)

	r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, model.PostListPath(), http.StatusMovedPermanently)
	})
	r.Get(handler.RouteSitemap, blogHandler.Sitemap)
	r.Get(handler.RouteRobots, blogHandler.Robots(cfg.IsDevelopment()))
	r.Mount(model.BlogPrefix, blogHandler.Routes())

	r.NotFound(blogHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStore connects the configured backend and applies its migrations.
// The returned function closes the connection.
func openStore(ctx context.Context, cfg *config.Config) (store.Repository, func(), error) {
	if cfg.UsePostgres() {
		slog.Info("initializing database", "driver", config.DriverPostgres)
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing database: %w", err)
		}

		slog.Info("running database migrations")
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")
		return postgres.New(pool, cfg.Location()), pool.Close, nil
	}

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "driver", config.DriverSQLite, "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}
	return store.New(db).WithLocation(cfg.Location()), closeDB, nil
}

// seed creates the default author and, in demo mode, demo content.
func seed(ctx context.Context, cfg *config.Config, repo store.Repository) error {
	if cfg.DemoMode {
		if err := store.SeedDemo(ctx, repo); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
		return nil
	}
	if cfg.DoSeed {
		if _, err := store.Seed(ctx, repo); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}
	return nil
}
