// Command historyd runs the long-lived HTTP query server: the replay
// API, the WebSocket progress hub, and Prometheus metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/watchkeeper/history/internal/api"
	"github.com/watchkeeper/history/internal/auth"
	"github.com/watchkeeper/history/internal/config"
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/metrics"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("historyd starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"log_source_kind", cfg.LogSource.Kind,
		"http_port", cfg.Server.HTTPPort,
		"max_concurrent_replays", cfg.Server.MaxConcurrentReplays,
		"auth_mode", cfg.Server.Auth.Mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := buildSource(cfg.LogSource)
	if err != nil {
		slog.Error("failed to build log source", "err", err)
		os.Exit(1)
	}

	// Registry is static in this deployment mode — a real installation
	// wires Registry to its live monitoring core instead.
	reg := registry.NewStatic()

	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			slog.Info("config hot-reloaded", "auth_mode", updated.Server.Auth.Mode)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	metricsReg := metrics.NewRegistry()

	hub := ws.New(2 * time.Second)
	go hub.Run(ctx)

	var authorizer sink.Authorizer = sink.AllowAll{}

	handler := api.New(src, reg, authorizer, metricsReg, hub, cfg.Server.MaxConcurrentReplays)
	handler.MaxEntriesPerFile = cfg.LogSource.MaxLinesPerLogFile
	if cfg.LogSource.Kind == "http_archive" {
		handler.ArchiveEndpoint = cfg.LogSource.BaseURL
		handler.ArchiveAuth = logsource.Auth{
			Mode:               cfg.LogSource.Auth.Mode,
			Header:             cfg.LogSource.Auth.Header,
			InsecureSkipVerify: cfg.LogSource.Auth.InsecureSkipVerify,
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", handler)
	mux.Handle("/metrics", handler)
	mux.Handle("/ws/progress", hub)

	protected := auth.APIKeyMiddleware(cfg.Server.Auth.Mode, effectiveHeader(cfg.Server.Auth.Header), cfg.Server.Auth.Key(), mux)

	if cfg.Archive.Endpoint != "" {
		shipper := sink.NewShipper(cfg.Archive.Endpoint, cfg.Archive.Key(), 256)
		go shipper.Run(ctx)
		slog.Info("archive shipper enabled", "endpoint", cfg.Archive.Endpoint)
		// The shipper only ships intervals that cmd/historyreplay or a
		// future push-based integration hands it directly; historyd's own
		// HTTP-triggered replays are read-only queries and aren't archived
		// automatically, to avoid re-shipping the same window on every
		// repeated query.
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: protected,
	}

	go func() {
		slog.Info("historyd listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("historyd shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

func effectiveHeader(header string) string {
	if header == "" {
		return "x-api-key"
	}
	return header
}

func buildSource(cfg config.LogSourceConfig) (logsource.Source, error) {
	switch cfg.Kind {
	case "http_archive":
		client, err := logsource.NewHTTPClient(logsource.Auth{
			Mode:               cfg.Auth.Mode,
			Header:             cfg.Auth.Header,
			APIKey:             cfg.Auth.Key(),
			BearerToken:        cfg.Auth.Token(),
			Username:           cfg.Auth.Username,
			Password:           cfg.Auth.Password(),
			CertFile:           cfg.Auth.CertFile,
			KeyFile:            cfg.Auth.KeyFile,
			CAFile:             cfg.Auth.CAFile,
			InsecureSkipVerify: cfg.Auth.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("build http archive client: %w", err)
		}
		return &logsource.HTTPArchive{BaseURL: cfg.BaseURL, Client: client}, nil

	default:
		return &logsource.Local{Dir: cfg.Dir, Glob: cfg.Glob}, nil
	}
}
