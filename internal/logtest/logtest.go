// Package logtest routes slog output into the testing log and records the
// emitted lines so tests can assert on them.
package logtest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/internal/logctx"
)

// Line is one decoded log line.
type Line struct {
	Message   string         `json:"message"`
	Level     string         `json:"level"`
	Timestamp string         `json:"timestamp"`
	Context   map[string]any `json:"context"`
}

// Recorder keeps every line written through the logger returned by New.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

// Lines returns a copy of the lines recorded so far.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines...)
}

// Find returns the first line with the given message.
func (r *Recorder) Find(message string) (Line, bool) {
	for _, l := range r.Lines() {
		if l.Message == message {
			return l, true
		}
	}
	return Line{}, false
}

// bridge is an io.Writer that receives whole lines from applog.Handler and
// forwards them to the testing log.
type bridge struct {
	t   testing.TB
	rec *Recorder
}

func (b *bridge) Write(p []byte) (int, error) {
	line := bytes.TrimSuffix(p, []byte("\n"))
	b.t.Helper()
	b.t.Log(string(line))

	var env struct {
		Params Line `json:"params"`
	}
	if err := json.Unmarshal(line, &env); err == nil {
		b.rec.mu.Lock()
		b.rec.lines = append(b.rec.lines, env.Params)
		b.rec.mu.Unlock()
	}
	return len(p), nil
}

// New returns a debug-level logger in the production line format whose
// output lands in t.Log, along with a Recorder of every line.
func New(t testing.TB) (*slog.Logger, *Recorder) {
	rec := &Recorder{}
	var w io.Writer = &bridge{t: t, rec: rec}
	h := applog.NewHandler(applog.Options{Level: slog.LevelDebug, Out: w, Err: w})
	return slog.New(logctx.Handler{Handler: h}), rec
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
