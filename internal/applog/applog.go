// Package applog renders slog records as JSON-RPC "log" notifications, one
// per line:
//
//	{"jsonrpc":"2.0","method":"log","params":{"message":"...","level":"info","timestamp":"...","context":{...}}}
//
// Records at warn and above go to the error writer; everything else goes to
// the regular output writer.
package applog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/listenrightmeow/mcps/internal/jsonrpc"
	"github.com/listenrightmeow/mcps/internal/logctx"
)

// LevelHTTP sits between debug and info and tags request-tracing records.
const LevelHTTP = slog.Level(-2)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures a Handler.
type Options struct {
	// Level is the minimum level emitted. Defaults to debug.
	Level slog.Leveler
	// Out receives debug, http and info records. Defaults to os.Stdout.
	Out io.Writer
	// Err receives warn and error records. Defaults to os.Stderr.
	Err io.Writer
}

type logParams struct {
	Message   string         `json:"message"`
	Level     string         `json:"level"`
	Timestamp string         `json:"timestamp"`
	Context   map[string]any `json:"context,omitempty"`
}

type groupedAttrs struct {
	groups []string
	attrs  []slog.Attr
}

// Handler is a slog.Handler producing JSON-RPC shaped log lines.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	errOut io.Writer
	mu     *sync.Mutex

	pre    []groupedAttrs
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler builds a Handler from opts.
func NewHandler(opts Options) *Handler {
	h := &Handler{level: opts.Level, out: opts.Out, errOut: opts.Err, mu: &sync.Mutex{}}
	if h.level == nil {
		h.level = slog.LevelDebug
	}
	if h.out == nil {
		h.out = os.Stdout
	}
	if h.errOut == nil {
		h.errOut = os.Stderr
	}
	return h
}

// NewLogger returns a logger writing through a Handler wrapped by
// logctx.Handler, so request data carried in contexts lands in "context".
func NewLogger(opts Options) *slog.Logger {
	return slog.New(logctx.Handler{Handler: NewHandler(opts)})
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ctxMap := make(map[string]any)
	for _, ga := range h.pre {
		addAttrs(ctxMap, ga.groups, ga.attrs)
	}
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	addAttrs(ctxMap, h.groups, attrs)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	params := logParams{
		Message:   r.Message,
		Level:     LevelName(r.Level),
		Timestamp: ts.UTC().Format(timestampLayout),
	}
	if len(ctxMap) > 0 {
		params.Context = ctxMap
	}

	line, err := jsonrpc.NewNotification("log", params).Marshal()
	if err != nil {
		params.Context = map[string]any{"log_error": err.Error()}
		if line, err = jsonrpc.NewNotification("log", params).Marshal(); err != nil {
			return err
		}
	}
	line = append(line, '\n')

	w := h.out
	if r.Level >= slog.LevelWarn {
		w = h.errOut
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = w.Write(line)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	h2.pre = append(h2.pre, groupedAttrs{groups: h.groups, attrs: attrs})
	return h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.pre = append([]groupedAttrs(nil), h.pre...)
	h2.groups = append([]string(nil), h.groups...)
	return &h2
}

func addAttrs(m map[string]any, groups []string, attrs []slog.Attr) {
	if len(attrs) == 0 {
		return
	}
	target := m
	for _, g := range groups {
		sub, ok := target[g].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			target[g] = sub
		}
		target = sub
	}
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			ga := a.Value.Group()
			if a.Key == "" {
				addAttrs(target, nil, ga)
			} else {
				addAttrs(target, []string{a.Key}, ga)
			}
			continue
		}
		target[a.Key] = attrValue(a.Value)
	}
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(timestampLayout)
	default:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Any()
	}
}

// LevelName maps a slog level onto the log line vocabulary:
// debug, http, info, warn, error.
func LevelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	case l >= LevelHTTP:
		return "http"
	default:
		return "debug"
	}
}

// ParseLevel is the inverse of LevelName.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "http":
		return LevelHTTP, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
