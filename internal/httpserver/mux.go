package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Route mounts a handler on an exact mux pattern.
type Route struct {
	Pattern string
	Handler http.Handler
}

// NewHandler mounts routes next to GET /health and the info endpoint at /,
// and wraps the result in CORS and request logging.
func NewHandler(log *slog.Logger, info Info, now func() time.Time, routes ...Route) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	mux := http.NewServeMux()
	for _, rt := range routes {
		mux.Handle(rt.Pattern, rt.Handler)
	}
	mux.Handle("GET /health", HealthHandler(now))
	mux.Handle("/", InfoHandler(info))
	return LogRequests(log, CORS(mux))
}
