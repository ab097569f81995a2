// Package hello provides the hello-world tool.
package hello

import (
	"context"
	"fmt"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// ToolName is the name the tool is registered under.
const ToolName = "hello-world"

// Args are the hello-world tool arguments.
type Args struct {
	Name string `json:"name,omitempty" jsonschema:"description=Name of the person to greet (optional)"`
}

// Tool returns the hello-world tool.
func Tool() mcpservice.StaticTool {
	return mcpservice.NewTool(ToolName, func(_ context.Context, args Args) (*mcp.CallToolResult, error) {
		return mcpservice.TextResult(Message(args.Name)), nil
	}, mcpservice.WithToolDescription("Generate a simple hello world message"))
}

// Message renders the greeting for name, falling back to "World".
func Message(name string) string {
	if name == "" {
		name = "World"
	}
	return fmt.Sprintf("Hello, %s! This is a simple hello world message from the MCP server.", name)
}
