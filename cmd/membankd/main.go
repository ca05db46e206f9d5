// Command membankd runs the memory bank MCP server.
//
// It speaks JSON-RPC 2.0 (MCP protocol 2024-11-05) over either a stdio
// duplex channel or a Streamable HTTP endpoint, and persists every
// project's graph to its own lazily-initialized Neo4j database.
//
// Optional environment variables (spec §6):
//
//	NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD  - graph engine connection
//	DB_FILENAME   - on-disk marker directory per project root
//	PORT, HOST    - HTTP transport listen address
//	HTTP_STREAM_PORT - read into config only; the HTTP transport serves POST and SSE on PORT
//	DEBUG         - log verbosity, 0-4 (default 2)
//	MEMBANK_TRANSPORT - "stdio" (default) or "http"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/memorybank/memorybank/internal/config"
	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/progress"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/tools/memorybank"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "membankd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("MEMBANK_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := facade.New(store.Config{
		URI:        cfg.Store.URI,
		Username:   cfg.Store.Username,
		Password:   cfg.Store.Password,
		DBFilename: cfg.Store.DBFilename,
	})
	defer svc.Shutdown(context.Background())

	registry := mcp.NewRegistry()
	memorybank.Register(registry, svc)

	info := mcp.ServerInfo{Name: cfg.Server.Name, Version: version}

	switch cfg.Transport.Mode {
	case "http":
		logger.Info("starting membankd", "version", version, "transport", "http",
			"host", cfg.Transport.Host, "port", cfg.Transport.Port)
		return runHTTP(ctx, cfg, registry, info, logger)
	default:
		logger.Info("starting membankd", "version", version, "transport", "stdio")
		server := mcp.NewServer(registry, info, logger)
		return server.Run(ctx)
	}
}

// runHTTP serves the Streamable HTTP transport, shutting down cleanly when
// ctx is cancelled.
func runHTTP(ctx context.Context, cfg *config.Config, registry *mcp.Registry, info mcp.ServerInfo, logger *slog.Logger) error {
	broker := progress.NewBroker()
	core := mcp.NewServer(registry, info, logger)
	httpServer := mcp.NewHTTPServer(core, cfg.Transport.CORSOrigins, logger, broker)

	addr := cfg.Transport.Host + ":" + cfg.Transport.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: httpServer.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

const shutdownTimeout = 10 * secondDuration

// secondDuration avoids importing "time" solely for one constant multiply.
const secondDuration = 1_000_000_000
