package mcpservice

import (
	"context"
	"errors"
	"testing"

	"github.com/listenrightmeow/mcps/internal/logtest"
	"github.com/listenrightmeow/mcps/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoVariable(prefix string) ResourceHandler {
	return func(_ context.Context, req *ResourceRequest) (string, error) {
		return prefix + req.Variable, nil
	}
}

func newTestRouter(t *testing.T, defs Definitions) (*ResourceRouter, *logtest.Recorder) {
	t.Helper()
	reg, err := NewRegistry(defs)
	require.NoError(t, err)
	log, rec := logtest.New(t)
	return NewResourceRouter(reg, log), rec
}

func TestRouterStaticBeatsTemplate(t *testing.T) {
	rt, _ := newTestRouter(t, Definitions{
		Templates: []TemplateResource{mustTemplate(t, "greetings://{name}", `^greetings://(.+)$`, echoVariable("tmpl:"))},
		Resources: []StaticResource{{
			Descriptor: mcp.Resource{URI: "greetings://static", MimeType: "text/plain"},
			Handler:    textHandler("static"),
		}},
	})

	text, mime, err := rt.Read(t.Context(), "greetings://static")
	require.NoError(t, err)
	assert.Equal(t, "static", text)
	assert.Equal(t, "text/plain", mime)

	text, _, err = rt.Read(t.Context(), "greetings://Ada")
	require.NoError(t, err)
	assert.Equal(t, "tmpl:Ada", text)
}

func TestRouterFirstTemplateWins(t *testing.T) {
	rt, _ := newTestRouter(t, Definitions{
		Templates: []TemplateResource{
			mustTemplate(t, "any://{x}", `^any://(.+)$`, echoVariable("first:")),
			mustTemplate(t, "any://x/{y}", `^any://x/(.+)$`, echoVariable("second:")),
		},
	})

	text, _, err := rt.Read(t.Context(), "any://x/y")
	require.NoError(t, err)
	assert.Equal(t, "first:x/y", text)
}

func TestRouterNotFound(t *testing.T) {
	rt, rec := newTestRouter(t, Definitions{
		Resources: []StaticResource{{Descriptor: mcp.Resource{URI: "hello://world"}, Handler: textHandler("hi")}},
	})

	for _, uri := range []string{"", "unknown://x", "hello://world/"} {
		_, _, err := rt.Read(t.Context(), uri)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf, uri)
		assert.Equal(t, "resource", nf.Type)
		assert.Equal(t, uri, nf.Name)
		assert.True(t, IsNotFound(err, "resource"))
	}

	line, ok := rec.Find("resource.not_found")
	require.True(t, ok)
	assert.Equal(t, "warn", line.Level)
}

func TestRouterHandlerFailure(t *testing.T) {
	rt, rec := newTestRouter(t, Definitions{
		Resources: []StaticResource{
			{Descriptor: mcp.Resource{URI: "fail://err"}, Handler: func(context.Context, *ResourceRequest) (string, error) {
				return "", errors.New("disk on fire")
			}},
			{Descriptor: mcp.Resource{URI: "fail://panic"}, Handler: func(context.Context, *ResourceRequest) (string, error) {
				panic("kaboom")
			}},
		},
	})

	_, _, err := rt.Read(t.Context(), "fail://err")
	require.ErrorIs(t, err, ErrResourceHandlerFailed)
	assert.NotContains(t, err.Error(), "disk on fire")

	_, _, err = rt.Read(t.Context(), "fail://panic")
	require.ErrorIs(t, err, ErrResourceHandlerFailed)

	var causes []any
	for _, l := range rec.Lines() {
		if l.Message == "resource.handler.fail" {
			causes = append(causes, l.Context["err"])
		}
	}
	assert.Equal(t, []any{"disk on fire", "panic: kaboom"}, causes)
}

func TestRouterLogsEveryRequestAtHTTPLevel(t *testing.T) {
	rt, rec := newTestRouter(t, Definitions{
		Resources: []StaticResource{{Descriptor: mcp.Resource{URI: "hello://world"}, Handler: textHandler("hi")}},
	})

	_, _, _ = rt.Read(t.Context(), "hello://world")
	_, _, _ = rt.Read(t.Context(), "nope://")

	var n int
	for _, l := range rec.Lines() {
		if l.Message != "resource.request" {
			continue
		}
		n++
		assert.Equal(t, "http", l.Level)
		assert.Equal(t, "resources/read", l.Context["method"])
		assert.Equal(t, "router", l.Context["handler"])
	}
	assert.Equal(t, 2, n)
}

func TestNewResourceRouterNilLogger(t *testing.T) {
	reg, err := NewRegistry(Definitions{})
	require.NoError(t, err)
	rt := NewResourceRouter(reg, nil)
	_, _, err = rt.Read(context.Background(), "x://y")
	require.Error(t, err)
}
