package mcpservice

import (
	"context"
	"maps"

	"github.com/listenrightmeow/mcps/mcp"
)

// PromptRequest is the server-received representation of a prompt get.
type PromptRequest struct {
	Name      string
	Arguments map[string]string
}

// Arg returns the named argument or "" when absent.
func (r *PromptRequest) Arg(name string) string {
	if r == nil {
		return ""
	}
	return r.Arguments[name]
}

// PromptHandler handles a prompt get request to produce messages.
type PromptHandler func(ctx context.Context, req *PromptRequest) (*mcp.GetPromptResult, error)

// StaticPrompt pairs a prompt descriptor with a handler that can materialize it.
type StaticPrompt struct {
	Descriptor mcp.Prompt
	Handler    PromptHandler
}

// NewPrompt builds a StaticPrompt whose handler only runs once the arguments
// satisfy the descriptor: required arguments are present, enumerated
// arguments hold a declared value, and declared defaults fill absent ones.
func NewPrompt(desc mcp.Prompt, fn PromptHandler) StaticPrompt {
	handler := func(ctx context.Context, req *PromptRequest) (*mcp.GetPromptResult, error) {
		args, err := resolvePromptArguments(desc.Arguments, req.Arguments)
		if err != nil {
			return nil, err
		}
		return fn(ctx, &PromptRequest{Name: req.Name, Arguments: args})
	}
	return StaticPrompt{Descriptor: desc, Handler: handler}
}

func resolvePromptArguments(decl []mcp.PromptArgument, in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(decl))
	maps.Copy(out, in)
	for _, arg := range decl {
		v := out[arg.Name]
		if v == "" {
			if arg.Required {
				return nil, &InvalidParamsError{Field: arg.Name, Reason: "a value is required"}
			}
			if arg.Default != "" {
				out[arg.Name] = arg.Default
			}
			continue
		}
		if len(arg.Enum) > 0 {
			if err := RequireOneOf(arg.Name, v, arg.Enum...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
