package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Options configures Serve.
type Options struct {
	// Addr is the listen address, as accepted by net.Listen.
	Addr string
	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration
	// ShutdownTimeout bounds the graceful drain once ctx ends.
	ShutdownTimeout time.Duration
	// Logger receives lifecycle events.
	Logger *slog.Logger
	// OnListen, if set, is called with the bound address before serving.
	OnListen func(addr net.Addr)
}

// Serve listens on opts.Addr and serves handler until ctx ends, then shuts
// the server down gracefully. A clean shutdown returns nil.
func Serve(ctx context.Context, handler http.Handler, opts Options) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Addr, err)
	}
	return ServeListener(ctx, ln, handler, opts)
}

// ServeListener is Serve on an existing listener, which it takes ownership
// of.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// Request contexts end when shutdown starts, so open event streams do not
	// hold the drain until the timeout.
	baseCtx, cancelBase := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelBase()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	if opts.OnListen != nil {
		opts.OnListen(ln.Addr())
	}
	log.InfoContext(ctx, "http.server.start", slog.String("addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.ErrorContext(ctx, "http.server.fail", slog.String("err", err.Error()))
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "http.server.shutdown", slog.Duration("timeout", opts.ShutdownTimeout))
	shutdownCtx := context.Background()
	if opts.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, opts.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		log.ErrorContext(ctx, "http.server.shutdown.fail", slog.String("err", err.Error()))
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	log.InfoContext(ctx, "http.server.stop")
	return nil
}
