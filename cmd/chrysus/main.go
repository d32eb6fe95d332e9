package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MGabeD/chrysus/internal/backend"
	"github.com/MGabeD/chrysus/internal/config"
	"github.com/MGabeD/chrysus/internal/session"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	demo := flag.Bool("demo", false, "serve generated data instead of calling the analysis backend")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg),
	}))
	slog.SetDefault(logger)

	var client views.BackendInterface
	if *demo {
		client = newDemoBackend()
		slog.Info("running in demo mode with generated data")
	} else {
		client = backend.NewClient(cfg.Backend)
		slog.Info("using analysis backend", "base_url", cfg.Backend.BackendBase())
	}

	store := session.NewStore()
	metrics := views.NewPrometheusMetrics()
	manager := views.NewManager(context.Background(), store, client, metrics)
	defer manager.Close()

	// Seed the roster before accepting traffic. Failure degrades to an
	// empty roster, same as a mid-session refresh.
	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	manager.RefreshRoster(startupCtx)
	cancel()

	e := newRouter(cfg, store, manager)

	go func() {
		slog.Info("server starting",
			"address", cfg.Server.Address(),
			"environment", cfg.Server.Environment)
		if err := e.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}

	// Let in-flight view fetches commit or discard before exit.
	manager.Wait()

	slog.Info("server stopped")
	return nil
}

func logLevel(cfg *config.Config) slog.Level {
	if cfg.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
