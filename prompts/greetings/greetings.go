// Package greetings provides the create-greeting prompt, which asks a model
// to write a greeting in a given style for the current time of day.
package greetings

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/listenrightmeow/mcps/internal/daypart"
	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// PromptName is the name the prompt is registered under.
const PromptName = "create-greeting"

// Greeting styles.
const (
	Casual       = "casual"
	Formal       = "formal"
	Excited      = "excited"
	Professional = "professional"
	Friendly     = "friendly"
)

// Styles lists the accepted styles in declaration order.
var Styles = []string{Casual, Formal, Excited, Professional, Friendly}

// SystemPrompt frames the conversation the prompt starts.
const SystemPrompt = `You are a friendly greeting generator. Your task is to create warm, welcoming, and appropriate greetings based on the time of day and context.

Guidelines:
1. Always be polite and professional
2. Consider the time of day (morning, afternoon, evening)
3. Keep the greeting concise but friendly
4. Personalize when a name is provided
5. Be culturally sensitive and inclusive`

type config struct {
	now func() time.Time
	log *slog.Logger
}

// Option configures the prompt.
type Option func(*config)

// WithClock overrides the time source used to pick the part of day.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used to trace prompt generation.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// Descriptor returns the prompt descriptor with its arguments in declaration
// order.
func Descriptor() mcp.Prompt {
	return mcp.Prompt{
		Name:        PromptName,
		Description: "Generate a customized greeting message",
		Arguments: []mcp.PromptArgument{
			{
				Name:        "name",
				Description: "Name of the person to greet",
				Required:    true,
				Type:        "string",
			},
			{
				Name:        "style",
				Description: "Style of greeting (" + strings.Join(Styles, ", ") + ")",
				Type:        "string",
				Enum:        Styles,
				Default:     Casual,
			},
			{
				Name:        "context",
				Description: "Additional context for the greeting (e.g., 'first meeting', 'returning customer')",
				Type:        "string",
			},
		},
	}
}

// Prompt returns the create-greeting prompt.
func Prompt(opts ...Option) mcpservice.StaticPrompt {
	cfg := config{now: time.Now, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	desc := Descriptor()

	return mcpservice.NewPrompt(desc, func(ctx context.Context, req *mcpservice.PromptRequest) (*mcp.GetPromptResult, error) {
		name, style, extra := req.Arg("name"), req.Arg("style"), req.Arg("context")

		shown := extra
		if shown == "" {
			shown = "not provided"
		}
		cfg.log.DebugContext(ctx, "prompt.greeting.generate",
			slog.String("handler", "greetings"),
			slog.String("name", name),
			slog.String("style", style),
			slog.String("context", shown),
		)

		return &mcp.GetPromptResult{
			System:      SystemPrompt,
			Description: desc.Description,
			Messages: []mcp.PromptMessage{{
				Role:    mcp.RoleUser,
				Content: mcp.TextBlock(UserPrompt(name, style, extra, cfg.now())),
			}},
		}, nil
	})
}

// UserPrompt renders the user message asking for a greeting.
func UserPrompt(name, style, extra string, t time.Time) string {
	if style == "" {
		style = Casual
	}
	var b strings.Builder
	b.WriteString("Generate a " + style + " " + daypart.Of(t).String() + " greeting for someone named " + name + ". ")
	if extra != "" {
		b.WriteString("Context: " + extra + ". ")
	}
	b.WriteString("The greeting should be appropriate for the time of day and match the specified style.")
	return b.String()
}
