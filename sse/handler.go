package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/logctx"
	"github.com/listenrightmeow/mcps/internal/sdkbridge"
	"github.com/listenrightmeow/mcps/mcpservice"
)

var _ http.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for connection tracing.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// Handler is an http.Handler for the SSE transport. GET opens a stream and
// POST delivers a message to an open stream.
type Handler struct {
	log   *slog.Logger
	inner http.Handler
}

// New builds the handler around a single shared SDK server.
func New(svc *mcpservice.Server, opts ...Option) (*Handler, error) {
	h := &Handler{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}

	srv, err := sdkbridge.NewServer(svc, sdkbridge.WithLogger(h.log), sdkbridge.WithTransport("sse"))
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	h.inner = sdk.NewSSEHandler(func(*http.Request) *sdk.Server { return srv }, nil)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := logctx.RequestDataFrom(ctx); !ok {
		ctx = logctx.WithRequestData(ctx, &logctx.RequestData{
			RequestID:  uuid.NewString(),
			Method:     r.Method,
			UserAgent:  r.UserAgent(),
			RemoteAddr: r.RemoteAddr,
			Path:       r.URL.Path,
		})
		r = r.WithContext(ctx)
	}

	switch r.Method {
	case http.MethodGet:
		start := time.Now()
		connID := uuid.NewString()
		h.log.InfoContext(ctx, "sse.connect", slog.String("connection", connID))
		h.inner.ServeHTTP(w, r)
		h.log.InfoContext(ctx, "sse.disconnect",
			slog.String("connection", connID),
			slog.Duration("dur", time.Since(start)),
		)
	case http.MethodPost:
		h.log.Log(ctx, applog.LevelHTTP, "sse.message", slog.String("session", r.URL.Query().Get("sessionid")))
		h.inner.ServeHTTP(w, r)
	default:
		h.inner.ServeHTTP(w, r)
	}
}
