package streaminghttp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/logctx"
	"github.com/listenrightmeow/mcps/internal/sdkbridge"
	"github.com/listenrightmeow/mcps/mcpservice"
)

var (
	_ http.Handler = (*StreamingHTTPHandler)(nil)
)

var jsonMediaType = contenttype.NewMediaType("application/json")

// writeJSONError emits a minimal transport-level JSON body. It does not claim
// JSON-RPC framing. Shape: {"error":"<reason>","details":"<detail>"}.
func writeJSONError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	_ = json.NewEncoder(w).Encode(body)
}

// Option configures the StreamingHTTPHandler.
type Option func(*newConfig)

type newConfig struct {
	logger       *slog.Logger
	jsonResponse bool
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *newConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithJSONResponse controls whether replies are plain JSON bodies (the
// default) or single-event SSE streams.
func WithJSONResponse(enabled bool) Option {
	return func(c *newConfig) { c.jsonResponse = enabled }
}

// StreamingHTTPHandler is an http.Handler for the stateless streamable HTTP
// transport.
type StreamingHTTPHandler struct {
	log   *slog.Logger
	inner http.Handler
}

// New builds the handler. The SDK server behind it is created once and shared
// by every request.
func New(svc *mcpservice.Server, opts ...Option) (*StreamingHTTPHandler, error) {
	cfg := &newConfig{logger: slog.New(slog.DiscardHandler), jsonResponse: true}
	for _, opt := range opts {
		opt(cfg)
	}

	srv, err := sdkbridge.NewServer(svc,
		sdkbridge.WithLogger(cfg.logger),
		sdkbridge.WithTransport("streamable-http"),
	)
	if err != nil {
		return nil, fmt.Errorf("streaminghttp: %w", err)
	}

	inner := sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server { return srv }, &sdk.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: cfg.jsonResponse,
	})

	return &StreamingHTTPHandler{log: cfg.logger, inner: inner}, nil
}

func (h *StreamingHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	start := time.Now()

	h.log.Log(ctx, applog.LevelHTTP, "mcp.request",
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
		slog.String("content_type", r.Header.Get("Content-Type")),
	)

	if r.Method == http.MethodPost && r.Header.Get("Content-Type") != "" {
		ctype, err := contenttype.GetMediaType(r)
		if err != nil || !ctype.Matches(jsonMediaType) {
			h.log.WarnContext(ctx, "content_type.unsupported", slog.String("content_type", r.Header.Get("Content-Type")))
			writeJSONError(w, http.StatusUnsupportedMediaType, "Unsupported content type", "expected application/json")
			return
		}
	}

	tw := &trackingWriter{ResponseWriter: w}
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			h.log.ErrorContext(ctx, "mcp.request.panic",
				slog.String("err", fmt.Sprint(p)),
				slog.Bool("headers_sent", tw.wroteHeader),
			)
			if !tw.wroteHeader {
				writeJSONError(w, http.StatusInternalServerError, "Internal server error", "")
			}
		}
	}()

	h.inner.ServeHTTP(tw, r)
	h.log.DebugContext(ctx, "mcp.request.done", slog.Duration("dur", time.Since(start)))
}

// trackingWriter records whether a response has been started so a recovered
// panic does not write a second status line.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(p)
}

func (t *trackingWriter) Flush() {
	if f, ok := t.ResponseWriter.(http.Flusher); ok {
		t.wroteHeader = true
		f.Flush()
	}
}

func (t *trackingWriter) Unwrap() http.ResponseWriter { return t.ResponseWriter }
