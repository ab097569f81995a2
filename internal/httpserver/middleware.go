package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/logctx"
)

// RequestIDHeader carries the request id back to the caller. An inbound
// value is reused when it parses as a UUID.
const RequestIDHeader = "X-Request-Id"

// statusRecorder captures the response status while staying transparent to
// streaming: Flush and Unwrap reach the underlying writer.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(p)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// LogRequests tags each request with an id, stores request data in the
// context for downstream loggers, and logs the request and its outcome.
func LogRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logctx.WithRequestData(r.Context(), &logctx.RequestData{
			RequestID:  id,
			Method:     r.Method,
			UserAgent:  r.UserAgent(),
			RemoteAddr: r.RemoteAddr,
			Path:       r.URL.Path,
		})
		r = r.WithContext(ctx)

		log.Log(ctx, applog.LevelHTTP, "http.request.start")

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		level := applog.LevelHTTP
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(ctx, level, "http.request.done",
			slog.Int("status", status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
