// Package greetings provides the create-greeting tool, which renders one of a
// fixed set of messages keyed by message type and tone.
package greetings

import (
	"context"
	"fmt"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// ToolName is the name the tool is registered under.
const ToolName = "create-greeting"

// Message types.
const (
	Greeting = "greeting"
	Farewell = "farewell"
	ThankYou = "thank-you"
)

// Tones.
const (
	Formal  = "formal"
	Casual  = "casual"
	Playful = "playful"
)

// MessageTypes and Tones list the accepted values in declaration order.
var (
	MessageTypes = []string{Greeting, Farewell, ThankYou}
	Tones        = []string{Formal, Casual, Playful}
)

var templates = map[string]map[string]string{
	Greeting: {
		Formal:  "Dear %s, I hope this message finds you well",
		Playful: "Hey hey %s! 🎉 What's shakin'?",
		Casual:  "Hi %s! How are you?",
	},
	Farewell: {
		Formal:  "Best regards, %s. Until we meet again.",
		Playful: "Catch you later, %s! 👋 Stay awesome!",
		Casual:  "Goodbye %s, take care!",
	},
	ThankYou: {
		Formal:  "Dear %s, I sincerely appreciate your assistance.",
		Playful: "You're the absolute best, %s! 🌟 Thanks a million!",
		Casual:  "Thanks so much, %s! Really appreciate it!",
	},
}

// Args are the create-greeting tool arguments.
type Args struct {
	MessageType string `json:"messageType" jsonschema:"enum=greeting,enum=farewell,enum=thank-you,description=Type of message to generate"`
	Recipient   string `json:"recipient" jsonschema:"description=Name of the person to address"`
	Tone        string `json:"tone,omitempty" jsonschema:"enum=formal,enum=casual,enum=playful,default=casual,description=Tone of the message"`
}

// Validate checks required fields and enumerations, filling the default tone.
func (a *Args) Validate() error {
	if err := mcpservice.RequireArg("messageType", a.MessageType); err != nil {
		return err
	}
	if err := mcpservice.RequireArg("recipient", a.Recipient); err != nil {
		return err
	}
	if err := mcpservice.RequireOneOf("messageType", a.MessageType, MessageTypes...); err != nil {
		return err
	}
	if a.Tone == "" {
		a.Tone = Casual
	}
	return mcpservice.RequireOneOf("tone", a.Tone, Tones...)
}

// Tool returns the create-greeting tool.
func Tool() mcpservice.StaticTool {
	return mcpservice.NewTool(ToolName, func(_ context.Context, args Args) (*mcp.CallToolResult, error) {
		text, err := Render(args)
		if err != nil {
			return nil, err
		}
		return mcpservice.TextResult(text), nil
	}, mcpservice.WithToolDescription("Generate a personalized greeting message"))
}

// Render validates args and produces the message text.
func Render(args Args) (string, error) {
	if err := args.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(templates[args.MessageType][args.Tone], args.Recipient), nil
}
