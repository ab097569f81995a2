// Package foobar provides the foobar test tool, which echoes a message
// together with the current time.
package foobar

import (
	"context"
	"fmt"
	"time"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// ToolName is the name the tool is registered under.
const ToolName = "foobar"

// TimeLayout renders timestamps as UTC RFC 3339 with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Args are the foobar tool arguments.
type Args struct {
	Message string `json:"message,omitempty" jsonschema:"description=Optional message to include in the response"`
}

type config struct {
	now func() time.Time
}

// Option configures the foobar tool.
type Option func(*config)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// Tool returns the foobar tool.
func Tool(opts ...Option) mcpservice.StaticTool {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return mcpservice.NewTool(ToolName, func(_ context.Context, args Args) (*mcp.CallToolResult, error) {
		return mcpservice.TextResult(Message(args.Message, cfg.now())), nil
	}, mcpservice.WithToolDescription("A simple test tool that returns a foobar message"))
}

// Message renders the foobar reply; an empty message is shown as "default".
func Message(msg string, at time.Time) string {
	if msg == "" {
		msg = "default"
	}
	return fmt.Sprintf("Foobar response! You sent: \"%s\". Current time: %s", msg, at.UTC().Format(TimeLayout))
}
