// Package catalog assembles the server's tools, resources and prompts into an
// immutable registry and wraps it in a dispatch facade.
package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
	greetprompt "github.com/listenrightmeow/mcps/prompts/greetings"
	greetres "github.com/listenrightmeow/mcps/resources/greetings"
	hellores "github.com/listenrightmeow/mcps/resources/hello"
	"github.com/listenrightmeow/mcps/tools/foobar"
	greettool "github.com/listenrightmeow/mcps/tools/greetings"
	hellotool "github.com/listenrightmeow/mcps/tools/hello"
)

const (
	// Name is the implementation name advertised during initialize.
	Name = "mcps"
	// Title is the human-readable implementation title.
	Title = "MCP example server"
)

// Version is the advertised implementation version. Overridden at link time.
var Version = "0.1.0"

// Instructions are returned to clients during initialize.
const Instructions = "Example server exposing hello-world, foobar and create-greeting tools, " +
	"hello://world and greetings://{name} resources, and a create-greeting prompt."

type config struct {
	log *slog.Logger
	now func() time.Time
}

// Option configures the catalog.
type Option func(*config)

// WithLogger sets the logger handed to the facade and handlers.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source of every time-dependent handler.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// Definitions returns every capability the server registers, in listing
// order.
func Definitions(opts ...Option) (mcpservice.Definitions, error) {
	cfg := newConfig(opts)

	greetings, err := greetres.Template(greetres.WithClock(cfg.now), greetres.WithLogger(cfg.log))
	if err != nil {
		return mcpservice.Definitions{}, fmt.Errorf("greetings resource: %w", err)
	}

	return mcpservice.Definitions{
		Tools: []mcpservice.StaticTool{
			hellotool.Tool(),
			foobar.Tool(foobar.WithClock(cfg.now)),
			greettool.Tool(),
		},
		Prompts: []mcpservice.StaticPrompt{
			greetprompt.Prompt(greetprompt.WithClock(cfg.now), greetprompt.WithLogger(cfg.log)),
		},
		Resources: []mcpservice.StaticResource{
			hellores.Resource(),
		},
		Templates: []mcpservice.TemplateResource{
			greetings,
		},
	}, nil
}

// NewServer builds the registry and returns the facade over it.
func NewServer(opts ...Option) (*mcpservice.Server, error) {
	cfg := newConfig(opts)

	defs, err := Definitions(opts...)
	if err != nil {
		return nil, err
	}
	reg, err := mcpservice.NewRegistry(defs)
	if err != nil {
		return nil, err
	}
	return mcpservice.NewServer(reg,
		mcpservice.WithServerInfo(Info()),
		mcpservice.WithInstructions(Instructions),
		mcpservice.WithLogger(cfg.log),
	), nil
}

// Info is the implementation info advertised by every transport.
func Info() mcp.ImplementationInfo {
	return mcp.ImplementationInfo{Name: Name, Title: Title, Version: Version}
}

func newConfig(opts []Option) config {
	cfg := config{log: slog.New(slog.DiscardHandler), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
