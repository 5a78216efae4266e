package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lessongenie/web/internal/api"
	"github.com/lessongenie/web/internal/backend"
	"github.com/lessongenie/web/internal/controller"
	"github.com/lessongenie/web/internal/infrastructure/config"
	"github.com/lessongenie/web/internal/metrics"
	"github.com/lessongenie/web/internal/render"
	"github.com/lessongenie/web/internal/service"
	"github.com/lessongenie/web/internal/store"
	"github.com/lessongenie/web/internal/worker"

	_ "github.com/lessongenie/web/docs" // generated swagger docs
)

// purgeInterval is how often expired sessions are removed.
const purgeInterval = 10 * time.Minute

// @title           LessonGenie API
// @version         1.0
// @description     Upload a PDF, pick one of the detected questions and read a step-by-step lesson for it.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	sessions, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open session store", "store", cfg.SessionStore, "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	m := metrics.New()
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, m)
	pool := worker.NewPool[controller.Outcome](cfg.WorkerCount, cfg.WorkerQueue)
	lessons := service.NewLessonService(sessions, controller.New(client), pool, logger, m)

	renderer, err := render.New(cfg.SanitizeHTML, logger)
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}
	handler := api.NewHandler(lessons, renderer, logger, cfg.MaxUploadBytes)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	mux.Handle("GET /metrics", m.Handler())

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go purgeExpired(janitorCtx, sessions, cfg.SessionTTL, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		stopJanitor()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"backend", cfg.BackendURL,
		"session_store", cfg.SessionStore,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}

	// Let queued transitions land before the store closes. Backend calls
	// still running after ShutdownTimeout are cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := lessons.Shutdown(ctx); err != nil {
		logger.Warn("in-flight transitions cancelled", "error", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.SessionStore {
	case config.StoreSQLite:
		return store.NewSQLite(cfg.SessionDB)
	case config.StoreRedis:
		rs := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil
	default:
		return store.NewMemory(), nil
	}
}

func purgeExpired(ctx context.Context, s store.Store, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Purge(ctx, time.Now().Add(-ttl))
			if err != nil {
				logger.Error("failed to purge sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", "count", n)
			}
		}
	}
}
