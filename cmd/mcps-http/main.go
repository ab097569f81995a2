// Command mcps-http serves the example MCP server over the streamable HTTP
// transport at /mcp, next to /health and an info page at /.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/listenrightmeow/mcps/catalog"
	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/config"
	"github.com/listenrightmeow/mcps/internal/httpserver"
	"github.com/listenrightmeow/mcps/streaminghttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := applog.NewLogger(applog.Options{Level: cfg.Level()})

	h, err := newHandler(ctx, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "server.start",
		slog.String("transport", "streamable-http"),
		slog.String("environment", cfg.Environment),
		slog.String("version", catalog.Version),
		slog.String("addr", cfg.Addr()),
	)

	return httpserver.Serve(ctx,
		h,
		httpserver.Options{
			Addr:              cfg.Addr(),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ShutdownTimeout:   cfg.ShutdownTimeout,
			Logger:            log,
		},
	)
}

// newHandler assembles the full HTTP surface: the transport at /mcp plus
// the health and info endpoints, all behind request logging.
func newHandler(ctx context.Context, log *slog.Logger) (http.Handler, error) {
	svc, err := catalog.NewServer(catalog.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("build server: %w", err)
	}
	h, err := streaminghttp.New(svc, streaminghttp.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("streaming http handler: %w", err)
	}
	info, err := httpserver.NewInfo(ctx, svc, map[string]string{
		"mcp":    "/mcp",
		"health": "/health",
	})
	if err != nil {
		return nil, fmt.Errorf("server info: %w", err)
	}
	return httpserver.NewHandler(log, info, nil, httpserver.Route{Pattern: "/mcp", Handler: h}), nil
}
