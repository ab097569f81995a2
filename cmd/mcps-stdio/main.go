// Command mcps-stdio serves the example MCP server over stdin/stdout.
//
// Stdout carries the protocol, so every log line goes to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/listenrightmeow/mcps/catalog"
	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/config"
	"github.com/listenrightmeow/mcps/stdio"
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
	log := applog.NewLogger(applog.Options{Level: cfg.Level(), Out: os.Stderr, Err: os.Stderr})

	svc, err := catalog.NewServer(catalog.WithLogger(log))
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	log.InfoContext(ctx, "server.start",
		slog.String("transport", "stdio"),
		slog.String("environment", cfg.Environment),
		slog.String("version", catalog.Version),
	)

	if err := stdio.NewHandler(svc, stdio.WithLogger(log)).Serve(ctx); err != nil {
		log.ErrorContext(ctx, "server.fail", slog.String("err", err.Error()))
		return err
	}
	log.InfoContext(ctx, "server.stop")
	return nil
}
