// Package greetings provides the greetings://{name} resource template, which
// greets the named person according to the time of day.
package greetings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenrightmeow/mcps/internal/daypart"
	"github.com/listenrightmeow/mcps/internal/safety"
	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

const (
	// URITemplate is the advertised RFC 6570 template.
	URITemplate = "greetings://{name}"
	// Pattern captures the name from a concrete URI.
	Pattern = `^greetings://(.+)$`
)

type config struct {
	now func() time.Time
	log *slog.Logger
}

// Option configures the greetings resource.
type Option func(*config)

// WithClock overrides the time source used to pick the part of day.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used to report rejected greetings.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// Template returns the greetings://{name} resource template.
func Template(opts ...Option) (mcpservice.TemplateResource, error) {
	cfg := config{now: time.Now, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	matcher, err := mcpservice.NewRegexpMatcher(Pattern)
	if err != nil {
		return mcpservice.TemplateResource{}, err
	}

	desc := mcp.ResourceTemplate{
		URITemplate: URITemplate,
		Name:        "Personal Greeting",
		Description: "A personalized greeting message",
		MimeType:    "text/plain",
	}
	return mcpservice.NewTemplateResource(desc, matcher, func(ctx context.Context, req *mcpservice.ResourceRequest) (string, error) {
		text := Greeting(req.Variable, cfg.now())
		if err := safety.ValidateGreeting(text); err != nil {
			cfg.log.WarnContext(ctx, "greeting.rejected",
				slog.String("uri", req.URI),
				slog.String("err", err.Error()),
			)
			return "", err
		}
		return text, nil
	})
}

// Greeting renders the greeting for name at time t. An empty name is
// addressed as "there".
func Greeting(name string, t time.Time) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Good %s, %s!", daypart.Of(t), name)
}
