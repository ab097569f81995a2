package mcpservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/listenrightmeow/mcps/internal/logctx"
	"github.com/listenrightmeow/mcps/mcp"
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// Server is the dispatch facade the transports call into. It translates each
// request category into a lookup against the Registry or ResourceRouter and
// shapes the reply. A Server holds no mutable state.
type Server struct {
	info         mcp.ImplementationInfo
	instructions string
	reg          *Registry
	router       *ResourceRouter
	log          *slog.Logger
}

// NewServer builds a Server over reg.
func NewServer(reg *Registry, opts ...ServerOption) *Server {
	s := &Server{
		info: mcp.ImplementationInfo{Name: "mcp-server", Version: "0.0.0"},
		reg:  reg,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = NewResourceRouter(reg, s.log)
	return s
}

// WithServerInfo sets the implementation info advertised during initialize.
func WithServerInfo(info mcp.ImplementationInfo) ServerOption {
	return func(s *Server) { s.info = info }
}

// WithInstructions sets human-readable instructions returned during initialize.
func WithInstructions(instr string) ServerOption {
	return func(s *Server) { s.instructions = instr }
}

// WithLogger sets the logger used for dispatch and routing. If not provided,
// logs are discarded.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// ServerInfo returns the advertised implementation info.
func (s *Server) ServerInfo() mcp.ImplementationInfo { return s.info }

// Instructions returns the configured instructions, possibly empty.
func (s *Server) Instructions() string { return s.instructions }

// ListResources returns every static resource descriptor.
func (s *Server) ListResources(ctx context.Context) (*mcp.ListResourcesResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.ResourcesListMethod)})
	s.log.DebugContext(ctx, "resources.list")
	return &mcp.ListResourcesResult{Resources: s.reg.Resources()}, nil
}

// ListResourceTemplates returns every templated resource descriptor.
func (s *Server) ListResourceTemplates(ctx context.Context) (*mcp.ListResourceTemplatesResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.ResourcesTemplatesListMethod)})
	s.log.DebugContext(ctx, "resources.templates.list")
	return &mcp.ListResourceTemplatesResult{ResourceTemplates: s.reg.ResourceTemplates()}, nil
}

// ReadResource routes uri to its handler and wraps the text in a contents
// envelope whose uri is the requested one.
func (s *Server) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.ResourcesReadMethod), Target: uri})
	text, mimeType, err := s.router.Read(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContents{{URI: uri, MimeType: mimeType, Text: text}},
	}, nil
}

// ListTools returns every tool descriptor.
func (s *Server) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.ToolsListMethod)})
	s.log.DebugContext(ctx, "tools.list")
	return &mcp.ListToolsResult{Tools: s.reg.Tools()}, nil
}

// CallTool invokes the tool registered under name and returns its result
// unchanged.
func (s *Server) CallTool(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.ToolsCallMethod), Target: name})
	h, ok := s.reg.Tool(name)
	if !ok {
		err := &NotFoundError{Type: "tool", Name: name}
		s.log.WarnContext(ctx, "tool.not_found", slog.String("err", err.Error()))
		return nil, err
	}
	res, err := h(ctx, &ToolCall{Name: name, Arguments: args})
	if err != nil {
		s.log.WarnContext(ctx, "tool.call.fail", slog.String("err", err.Error()))
		return nil, err
	}
	if res == nil {
		err := fmt.Errorf("tool %q returned no result", name)
		s.log.ErrorContext(ctx, "tool.call.fail", slog.String("err", err.Error()))
		return nil, err
	}
	s.log.DebugContext(ctx, "tool.call.ok")
	return res, nil
}

// ListPrompts returns every prompt descriptor.
func (s *Server) ListPrompts(ctx context.Context) (*mcp.ListPromptsResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.PromptsListMethod)})
	s.log.DebugContext(ctx, "prompts.list")
	return &mcp.ListPromptsResult{Prompts: s.reg.Prompts()}, nil
}

// GetPrompt materializes the prompt registered under name.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: string(mcp.PromptsGetMethod), Target: name})
	h, ok := s.reg.Prompt(name)
	if !ok {
		err := &NotFoundError{Type: "prompt", Name: name}
		s.log.WarnContext(ctx, "prompt.not_found", slog.String("err", err.Error()))
		return nil, err
	}
	res, err := h(ctx, &PromptRequest{Name: name, Arguments: args})
	if err != nil {
		s.log.WarnContext(ctx, "prompt.get.fail", slog.String("err", err.Error()))
		return nil, err
	}
	if res == nil {
		err := fmt.Errorf("prompt %q returned no result", name)
		s.log.ErrorContext(ctx, "prompt.get.fail", slog.String("err", err.Error()))
		return nil, err
	}
	return res, nil
}
