// Package sdkbridge binds a mcpservice.Server onto the MCP SDK server so that
// every SDK transport dispatches into the same facade.
package sdkbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/listenrightmeow/mcps/internal/logctx"
	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// Option configures NewServer.
type Option func(*bridge)

// WithLogger sets the logger used by the bridge and the SDK server.
func WithLogger(log *slog.Logger) Option {
	return func(b *bridge) {
		if log != nil {
			b.log = log
		}
	}
}

// WithTransport names the transport in session log data.
func WithTransport(name string) Option {
	return func(b *bridge) { b.transport = name }
}

type bridge struct {
	svc       *mcpservice.Server
	log       *slog.Logger
	transport string
}

// NewServer returns an SDK server advertising every capability of svc.
// The registry behind svc is immutable, so the SDK server is built once and
// may be shared across sessions.
func NewServer(svc *mcpservice.Server, opts ...Option) (*sdk.Server, error) {
	if svc == nil {
		return nil, errors.New("sdkbridge: nil service")
	}
	b := &bridge{svc: svc, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(b)
	}

	info := svc.ServerInfo()
	srv := sdk.NewServer(&sdk.Implementation{
		Name:    info.Name,
		Title:   info.Title,
		Version: info.Version,
	}, &sdk.ServerOptions{
		Instructions:       svc.Instructions(),
		Logger:             b.log,
		InitializedHandler: b.initialized,
	})

	ctx := context.Background()

	tools, err := svc.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	for _, t := range tools.Tools {
		schema, err := toSDKSchema(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", t.Name, err)
		}
		srv.AddTool(&sdk.Tool{Name: t.Name, Description: t.Description, InputSchema: schema}, b.callTool)
	}

	resources, err := svc.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	for _, r := range resources.Resources {
		srv.AddResource(&sdk.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MimeType,
		}, b.readResource)
	}

	templates, err := svc.ListResourceTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resource templates: %w", err)
	}
	for _, t := range templates.ResourceTemplates {
		srv.AddResourceTemplate(&sdk.ResourceTemplate{
			URITemplate: t.URITemplate,
			Name:        t.Name,
			Description: t.Description,
			MIMEType:    t.MimeType,
		}, b.readResource)
	}

	prompts, err := svc.ListPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	for _, p := range prompts.Prompts {
		srv.AddPrompt(toSDKPrompt(p), b.getPrompt)
	}

	srv.AddReceivingMiddleware(b.dispatch)

	return srv, nil
}

// dispatch sends reads, tool calls and prompt gets straight to the facade.
// The SDK would otherwise match names and URIs itself first, and its template
// matching only accepts unreserved characters.
func (b *bridge) dispatch(next sdk.MethodHandler) sdk.MethodHandler {
	return func(ctx context.Context, method string, req sdk.Request) (sdk.Result, error) {
		switch method {
		case string(mcp.ResourcesReadMethod):
			if r, ok := req.(*sdk.ReadResourceRequest); ok {
				return b.readResource(ctx, r)
			}
		case string(mcp.ToolsCallMethod):
			if r, ok := req.(*sdk.CallToolRequest); ok {
				return b.callTool(ctx, r)
			}
		case string(mcp.PromptsGetMethod):
			if r, ok := req.(*sdk.GetPromptRequest); ok {
				return b.getPrompt(ctx, r)
			}
		}
		return next(ctx, method, req)
	}
}

func (b *bridge) sessionContext(ctx context.Context, ss *sdk.ServerSession) context.Context {
	var id string
	if ss != nil {
		id = ss.ID()
	}
	return logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: id, Transport: b.transport})
}

func (b *bridge) initialized(ctx context.Context, req *sdk.InitializedRequest) {
	ctx = b.sessionContext(ctx, req.Session)
	b.log.InfoContext(ctx, "session.initialized")
}

func (b *bridge) callTool(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
	ctx = b.sessionContext(ctx, req.Session)
	res, err := b.svc.CallTool(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, err
	}
	return &sdk.CallToolResult{IsError: res.IsError, Content: toSDKContents(res.Content)}, nil
}

func (b *bridge) readResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	ctx = b.sessionContext(ctx, req.Session)
	uri := req.Params.URI
	res, err := b.svc.ReadResource(ctx, uri)
	if err != nil {
		if mcpservice.IsNotFound(err, "resource") {
			return nil, sdk.ResourceNotFoundError(uri)
		}
		return nil, err
	}
	out := &sdk.ReadResourceResult{Contents: make([]*sdk.ResourceContents, 0, len(res.Contents))}
	for _, c := range res.Contents {
		out.Contents = append(out.Contents, &sdk.ResourceContents{URI: c.URI, MIMEType: c.MimeType, Text: c.Text})
	}
	return out, nil
}

func (b *bridge) getPrompt(ctx context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
	ctx = b.sessionContext(ctx, req.Session)
	res, err := b.svc.GetPrompt(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, err
	}
	out := &sdk.GetPromptResult{Description: res.Description}
	if res.System != "" {
		out.Meta = sdk.Meta{"system": res.System}
	}
	for _, m := range res.Messages {
		out.Messages = append(out.Messages, &sdk.PromptMessage{
			Role:    sdk.Role(m.Role),
			Content: toSDKContent(m.Content),
		})
	}
	return out, nil
}

func toSDKPrompt(p mcp.Prompt) *sdk.Prompt {
	out := &sdk.Prompt{Name: p.Name, Description: p.Description}
	for _, a := range p.Arguments {
		out.Arguments = append(out.Arguments, &sdk.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}
	return out
}

func toSDKContent(c mcp.ContentBlock) sdk.Content {
	return &sdk.TextContent{Text: c.Text}
}

func toSDKContents(in []mcp.ContentBlock) []sdk.Content {
	out := make([]sdk.Content, 0, len(in))
	for _, c := range in {
		out = append(out, toSDKContent(c))
	}
	return out
}
