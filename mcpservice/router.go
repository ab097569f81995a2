package mcpservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/listenrightmeow/mcps/internal/applog"
	"github.com/listenrightmeow/mcps/mcp"
)

// ResourceRouter maps an inbound URI to the handler that serves it. Exact
// static URIs are consulted first; templates are then tried in registration
// order and the first match wins.
type ResourceRouter struct {
	reg *Registry
	log *slog.Logger
}

// NewResourceRouter builds a router over the registry's resources. A nil
// logger discards output.
func NewResourceRouter(reg *Registry, log *slog.Logger) *ResourceRouter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ResourceRouter{reg: reg, log: log}
}

type route struct {
	name     string
	mimeType string
	handler  ResourceHandler
	req      *ResourceRequest
}

func (rt *ResourceRouter) resolve(uri string) (route, bool) {
	if res, ok := rt.reg.staticResource(uri); ok {
		return route{
			name:     res.Descriptor.Name,
			mimeType: res.Descriptor.MimeType,
			handler:  res.Handler,
			req:      &ResourceRequest{URI: uri},
		}, true
	}
	for _, t := range rt.reg.templates {
		if v, ok := t.Matcher.Match(uri); ok {
			return route{
				name:     t.Descriptor.Name,
				mimeType: t.Descriptor.MimeType,
				handler:  t.Handler,
				req:      &ResourceRequest{URI: uri, Variable: v},
			}, true
		}
	}
	return route{}, false
}

// Read resolves uri and invokes its handler, returning the handler's text and
// the resource's declared MIME type. Unknown URIs yield a NotFoundError.
// Handler failures, panics included, are logged with their cause and
// reported as ErrResourceHandlerFailed.
func (rt *ResourceRouter) Read(ctx context.Context, uri string) (text string, mimeType string, err error) {
	rt.log.Log(ctx, applog.LevelHTTP, "resource.request",
		slog.String("method", string(mcp.ResourcesReadMethod)),
		slog.String("uri", uri),
		slog.String("handler", "router"),
	)

	r, ok := rt.resolve(uri)
	if uri == "" || !ok {
		err := &NotFoundError{Type: "resource", Name: uri}
		rt.log.WarnContext(ctx, "resource.not_found",
			slog.String("handler", "router"),
			slog.String("uri", uri),
			slog.String("err", err.Error()),
		)
		return "", "", err
	}

	rt.log.DebugContext(ctx, "resource.route",
		slog.String("uri", uri),
		slog.String("resource", r.name),
		slog.String("variable", r.req.Variable),
	)

	text, err = invokeResource(ctx, r)
	if err != nil {
		rt.log.WarnContext(ctx, "resource.handler.fail",
			slog.String("handler", "router"),
			slog.String("uri", uri),
			slog.String("err", err.Error()),
		)
		return "", "", ErrResourceHandlerFailed
	}
	return text, r.mimeType, nil
}

func invokeResource(ctx context.Context, r route) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.handler(ctx, r.req)
}
